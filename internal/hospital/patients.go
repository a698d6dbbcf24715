package hospital

import (
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Patient is a registered patient.
type Patient struct {
	ID               int64
	Name             string
	Email            string
	Phone            string
	Address          string
	DateOfBirth      string
	Gender           string
	BloodGroup       string
	RegistrationDate string
	Status           string
}

const patientColumns = `
	id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''),
	COALESCE(date_of_birth, ''), COALESCE(gender, ''), COALESCE(blood_group, ''),
	COALESCE(registration_date, ''), status`

// AddPatient inserts a new patient and returns its identifier.
func (s *Store) AddPatient(patient *Patient) (int64, error) {
	if patient.RegistrationDate == "" {
		patient.RegistrationDate = time.Now().Format("2006-01-02 15:04:05")
	}
	if patient.Status == "" {
		patient.Status = StatusActive
	}
	result, err := s.db.Exec(`
		INSERT INTO patients (name, email, phone, address, date_of_birth, gender, blood_group, registration_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		patient.Name, patient.Email, patient.Phone, patient.Address,
		patient.DateOfBirth, patient.Gender, patient.BloodGroup,
		patient.RegistrationDate, patient.Status,
	)
	if err != nil {
		return 0, errors.Wrap(err, "inserting patient")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "reading insert id")
	}
	patient.ID = id
	return id, nil
}

// GetPatient returns the patient with the given id, or nil if absent.
func (s *Store) GetPatient(id int64) (*Patient, error) {
	row := s.db.QueryRow("SELECT "+patientColumns+" FROM patients WHERE id = ?", id)
	patient, err := scanPatient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying patient")
	}
	return patient, nil
}

// ListPatients returns all active patients.
func (s *Store) ListPatients() ([]*Patient, error) {
	rows, err := s.db.Query("SELECT "+patientColumns+" FROM patients WHERE status = ?", StatusActive)
	if err != nil {
		return nil, errors.Wrap(err, "querying patients")
	}
	defer rows.Close()
	return scanPatients(rows)
}

// SearchPatients matches active patients by name, email or phone.
func (s *Store) SearchPatients(query string) ([]*Patient, error) {
	searchTerm := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT `+patientColumns+` FROM patients
		WHERE (name LIKE ? OR email LIKE ? OR phone LIKE ?)
		AND status = ?`,
		searchTerm, searchTerm, searchTerm, StatusActive,
	)
	if err != nil {
		return nil, errors.Wrap(err, "searching patients")
	}
	defer rows.Close()
	return scanPatients(rows)
}

// UpdatePatient overwrites the fields named in the update mask.
func (s *Store) UpdatePatient(patient *Patient, updateMask []string) error {
	allowed := map[string]any{
		"name":          patient.Name,
		"email":         patient.Email,
		"phone":         patient.Phone,
		"address":       patient.Address,
		"date_of_birth": patient.DateOfBirth,
		"gender":        patient.Gender,
		"blood_group":   patient.BloodGroup,
		"status":        patient.Status,
	}

	var setClauses []string
	var args []any
	for _, field := range updateMask {
		value, ok := allowed[field]
		if !ok {
			return errors.Errorf("unknown patient field (%s)", field)
		}
		setClauses = append(setClauses, field+" = ?")
		args = append(args, value)
	}
	if len(setClauses) == 0 {
		return nil
	}
	args = append(args, patient.ID)

	_, err := s.db.Exec("UPDATE patients SET "+strings.Join(setClauses, ", ")+" WHERE id = ?", args...)
	return errors.Wrap(err, "updating patient")
}

// DeletePatient soft-deletes a patient by marking it inactive.
func (s *Store) DeletePatient(id int64) error {
	_, err := s.db.Exec("UPDATE patients SET status = ? WHERE id = ?", StatusInactive, id)
	return errors.Wrap(err, "deleting patient")
}

func scanPatient(row scannable) (*Patient, error) {
	patient := &Patient{}
	err := row.Scan(
		&patient.ID, &patient.Name, &patient.Email, &patient.Phone, &patient.Address,
		&patient.DateOfBirth, &patient.Gender, &patient.BloodGroup,
		&patient.RegistrationDate, &patient.Status,
	)
	if err != nil {
		return nil, err
	}
	return patient, nil
}

func scanPatients(rows *sql.Rows) ([]*Patient, error) {
	var patients []*Patient
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning patient row")
		}
		patients = append(patients, patient)
	}
	return patients, errors.Wrap(rows.Err(), "iterating patient rows")
}
