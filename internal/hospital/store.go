// Package hospital implements the relational store for patients, staff,
// medical records, appointments, prescriptions and billing.
package hospital

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Record status values.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Store implements a SQLite store for hospital records.
type Store struct {
	db *sql.DB
}

// New store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	// Enable WAL mode for better concurrent read/write performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "setting WAL mode")
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "running migrations")
	}

	log.Debug().Str("path", dbPath).Msg("hospital database ready")
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			name           TEXT NOT NULL,
			email          TEXT UNIQUE NOT NULL,
			password       TEXT NOT NULL,
			role           TEXT NOT NULL,
			specialization TEXT,
			phone          TEXT,
			address        TEXT,
			date_joined    TEXT,
			status         TEXT DEFAULT 'active'
		);

		CREATE TABLE IF NOT EXISTS patients (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			name              TEXT NOT NULL,
			email             TEXT,
			phone             TEXT,
			address           TEXT,
			date_of_birth     TEXT,
			gender            TEXT,
			blood_group       TEXT,
			registration_date TEXT,
			status            TEXT DEFAULT 'active'
		);

		CREATE TABLE IF NOT EXISTS medical_records (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			patient_id  INTEGER NOT NULL,
			doctor_id   INTEGER NOT NULL,
			diagnosis   TEXT,
			treatment   TEXT,
			notes       TEXT,
			record_date TEXT,
			FOREIGN KEY (patient_id) REFERENCES patients (id),
			FOREIGN KEY (doctor_id) REFERENCES users (id)
		);

		CREATE TABLE IF NOT EXISTS appointments (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			patient_id       INTEGER NOT NULL,
			doctor_id        INTEGER NOT NULL,
			appointment_date TEXT NOT NULL,
			appointment_time TEXT NOT NULL,
			reason           TEXT,
			status           TEXT DEFAULT 'scheduled',
			FOREIGN KEY (patient_id) REFERENCES patients (id),
			FOREIGN KEY (doctor_id) REFERENCES users (id)
		);

		CREATE TABLE IF NOT EXISTS prescriptions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			record_id  INTEGER NOT NULL,
			medication TEXT NOT NULL,
			dosage     TEXT,
			frequency  TEXT,
			duration   TEXT,
			notes      TEXT,
			FOREIGN KEY (record_id) REFERENCES medical_records (id)
		);

		CREATE TABLE IF NOT EXISTS billing (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			patient_id     INTEGER NOT NULL,
			record_id      INTEGER,
			amount         TEXT NOT NULL,
			payment_status TEXT DEFAULT 'pending',
			payment_date   TEXT,
			payment_method TEXT,
			FOREIGN KEY (patient_id) REFERENCES patients (id),
			FOREIGN KEY (record_id) REFERENCES medical_records (id)
		)
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
