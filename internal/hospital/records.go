package hospital

import (
	"time"

	"github.com/pkg/errors"
)

// MedicalRecord is a single visit record written by a doctor.
type MedicalRecord struct {
	ID         int64
	PatientID  int64
	DoctorID   int64
	Diagnosis  string
	Treatment  string
	Notes      string
	RecordDate string

	// DoctorName and PatientName are populated by join queries only.
	DoctorName  string
	PatientName string
}

// AddMedicalRecord inserts a new medical record and returns its identifier.
func (s *Store) AddMedicalRecord(record *MedicalRecord) (int64, error) {
	if record.RecordDate == "" {
		record.RecordDate = time.Now().Format("2006-01-02 15:04:05")
	}
	result, err := s.db.Exec(`
		INSERT INTO medical_records (patient_id, doctor_id, diagnosis, treatment, notes, record_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.PatientID, record.DoctorID, record.Diagnosis, record.Treatment,
		record.Notes, record.RecordDate,
	)
	if err != nil {
		return 0, errors.Wrap(err, "inserting medical record")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "reading insert id")
	}
	record.ID = id
	return id, nil
}

// PatientRecords returns a patient's medical records, newest first, with the
// doctor's name joined in.
func (s *Store) PatientRecords(patientID int64) ([]*MedicalRecord, error) {
	rows, err := s.db.Query(`
		SELECT r.id, r.patient_id, r.doctor_id,
		       COALESCE(r.diagnosis, ''), COALESCE(r.treatment, ''), COALESCE(r.notes, ''),
		       COALESCE(r.record_date, ''), u.name
		FROM medical_records r
		JOIN users u ON r.doctor_id = u.id
		WHERE r.patient_id = ?
		ORDER BY r.record_date DESC`, patientID)
	if err != nil {
		return nil, errors.Wrap(err, "querying patient records")
	}
	defer rows.Close()

	var records []*MedicalRecord
	for rows.Next() {
		record := &MedicalRecord{}
		if err := rows.Scan(
			&record.ID, &record.PatientID, &record.DoctorID,
			&record.Diagnosis, &record.Treatment, &record.Notes,
			&record.RecordDate, &record.DoctorName,
		); err != nil {
			return nil, errors.Wrap(err, "scanning record row")
		}
		records = append(records, record)
	}
	return records, errors.Wrap(rows.Err(), "iterating record rows")
}

// DoctorRecords returns the records authored by a doctor, newest first, with
// the patient's name joined in.
func (s *Store) DoctorRecords(doctorID int64) ([]*MedicalRecord, error) {
	rows, err := s.db.Query(`
		SELECT r.id, r.patient_id, r.doctor_id,
		       COALESCE(r.diagnosis, ''), COALESCE(r.treatment, ''), COALESCE(r.notes, ''),
		       COALESCE(r.record_date, ''), p.name
		FROM medical_records r
		JOIN patients p ON r.patient_id = p.id
		WHERE r.doctor_id = ?
		ORDER BY r.record_date DESC`, doctorID)
	if err != nil {
		return nil, errors.Wrap(err, "querying doctor records")
	}
	defer rows.Close()

	var records []*MedicalRecord
	for rows.Next() {
		record := &MedicalRecord{}
		if err := rows.Scan(
			&record.ID, &record.PatientID, &record.DoctorID,
			&record.Diagnosis, &record.Treatment, &record.Notes,
			&record.RecordDate, &record.PatientName,
		); err != nil {
			return nil, errors.Wrap(err, "scanning record row")
		}
		records = append(records, record)
	}
	return records, errors.Wrap(rows.Err(), "iterating record rows")
}
