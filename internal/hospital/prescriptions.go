package hospital

import (
	"database/sql"

	"github.com/pkg/errors"
)

// Prescription is a medication attached to a medical record.
type Prescription struct {
	ID         int64
	RecordID   int64
	Medication string
	Dosage     string
	Frequency  string
	Duration   string
	Notes      string

	// RecordDate is populated by join queries only.
	RecordDate string
}

// AddPrescription inserts a new prescription and returns its identifier.
func (s *Store) AddPrescription(prescription *Prescription) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO prescriptions (record_id, medication, dosage, frequency, duration, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		prescription.RecordID, prescription.Medication, prescription.Dosage,
		prescription.Frequency, prescription.Duration, prescription.Notes,
	)
	if err != nil {
		return 0, errors.Wrap(err, "inserting prescription")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "reading insert id")
	}
	prescription.ID = id
	return id, nil
}

// RecordPrescriptions returns the prescriptions attached to a medical record.
func (s *Store) RecordPrescriptions(recordID int64) ([]*Prescription, error) {
	rows, err := s.db.Query(`
		SELECT id, record_id, medication,
		       COALESCE(dosage, ''), COALESCE(frequency, ''), COALESCE(duration, ''), COALESCE(notes, '')
		FROM prescriptions WHERE record_id = ?`, recordID)
	if err != nil {
		return nil, errors.Wrap(err, "querying prescriptions")
	}
	defer rows.Close()
	return scanPrescriptions(rows, false)
}

// PatientPrescriptions returns every prescription across a patient's records,
// newest record first.
func (s *Store) PatientPrescriptions(patientID int64) ([]*Prescription, error) {
	rows, err := s.db.Query(`
		SELECT pr.id, pr.record_id, pr.medication,
		       COALESCE(pr.dosage, ''), COALESCE(pr.frequency, ''), COALESCE(pr.duration, ''), COALESCE(pr.notes, ''),
		       COALESCE(r.record_date, '')
		FROM prescriptions pr
		JOIN medical_records r ON pr.record_id = r.id
		WHERE r.patient_id = ?
		ORDER BY r.record_date DESC`, patientID)
	if err != nil {
		return nil, errors.Wrap(err, "querying patient prescriptions")
	}
	defer rows.Close()
	return scanPrescriptions(rows, true)
}

func scanPrescriptions(rows *sql.Rows, withRecordDate bool) ([]*Prescription, error) {
	var prescriptions []*Prescription
	for rows.Next() {
		prescription := &Prescription{}
		dest := []any{
			&prescription.ID, &prescription.RecordID, &prescription.Medication,
			&prescription.Dosage, &prescription.Frequency, &prescription.Duration, &prescription.Notes,
		}
		if withRecordDate {
			dest = append(dest, &prescription.RecordDate)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrap(err, "scanning prescription row")
		}
		prescriptions = append(prescriptions, prescription)
	}
	return prescriptions, errors.Wrap(rows.Err(), "iterating prescription rows")
}
