package hospital

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Appointment statuses.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a scheduled visit between a patient and a doctor.
type Appointment struct {
	ID        int64
	PatientID int64
	DoctorID  int64
	Date      string
	Time      string
	Reason    string
	Status    string

	// PatientName and DoctorName are populated by join queries only.
	PatientName string
	DoctorName  string
}

// AppointmentFilter narrows ListAppointments. Zero values match everything.
type AppointmentFilter struct {
	PatientID int64
	DoctorID  int64
	Date      string
}

// AddAppointment inserts a new appointment and returns its identifier.
func (s *Store) AddAppointment(appointment *Appointment) (int64, error) {
	if appointment.Status == "" {
		appointment.Status = AppointmentScheduled
	}
	result, err := s.db.Exec(`
		INSERT INTO appointments (patient_id, doctor_id, appointment_date, appointment_time, reason, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		appointment.PatientID, appointment.DoctorID, appointment.Date,
		appointment.Time, appointment.Reason, appointment.Status,
	)
	if err != nil {
		return 0, errors.Wrap(err, "inserting appointment")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "reading insert id")
	}
	appointment.ID = id
	return id, nil
}

// ListAppointments returns appointments matching the filter, soonest first,
// with patient and doctor names joined in.
func (s *Store) ListAppointments(filter AppointmentFilter) ([]*Appointment, error) {
	var conditions []string
	var args []any
	if filter.PatientID != 0 {
		conditions = append(conditions, "a.patient_id = ?")
		args = append(args, filter.PatientID)
	}
	if filter.DoctorID != 0 {
		conditions = append(conditions, "a.doctor_id = ?")
		args = append(args, filter.DoctorID)
	}
	if filter.Date != "" {
		conditions = append(conditions, "a.appointment_date = ?")
		args = append(args, filter.Date)
	}

	query := `
		SELECT a.id, a.patient_id, a.doctor_id, a.appointment_date, a.appointment_time,
		       COALESCE(a.reason, ''), a.status, p.name, u.name
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		JOIN users u ON a.doctor_id = u.id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.appointment_date, a.appointment_time"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying appointments")
	}
	defer rows.Close()

	var appointments []*Appointment
	for rows.Next() {
		appointment := &Appointment{}
		if err := rows.Scan(
			&appointment.ID, &appointment.PatientID, &appointment.DoctorID,
			&appointment.Date, &appointment.Time, &appointment.Reason,
			&appointment.Status, &appointment.PatientName, &appointment.DoctorName,
		); err != nil {
			return nil, errors.Wrap(err, "scanning appointment row")
		}
		appointments = append(appointments, appointment)
	}
	return appointments, errors.Wrap(rows.Err(), "iterating appointment rows")
}

// UpdateAppointmentStatus transitions an appointment to the given status.
func (s *Store) UpdateAppointmentStatus(id int64, status string) error {
	switch status {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
	default:
		return errors.Errorf("unknown appointment status (%s)", status)
	}
	_, err := s.db.Exec("UPDATE appointments SET status = ? WHERE id = ?", status, id)
	return errors.Wrap(err, "updating appointment status")
}

// TodaysAppointments returns up to limit of today's scheduled appointments.
func (s *Store) TodaysAppointments(limit int) ([]*Appointment, error) {
	today := time.Now().Format("2006-01-02")
	rows, err := s.db.Query(`
		SELECT a.id, a.patient_id, a.doctor_id, a.appointment_date, a.appointment_time,
		       COALESCE(a.reason, ''), a.status, p.name, u.name
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		JOIN users u ON a.doctor_id = u.id
		WHERE a.appointment_date = ? AND a.status = ?
		ORDER BY a.appointment_time
		LIMIT ?`, today, AppointmentScheduled, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying today's appointments")
	}
	defer rows.Close()

	var appointments []*Appointment
	for rows.Next() {
		appointment := &Appointment{}
		if err := rows.Scan(
			&appointment.ID, &appointment.PatientID, &appointment.DoctorID,
			&appointment.Date, &appointment.Time, &appointment.Reason,
			&appointment.Status, &appointment.PatientName, &appointment.DoctorName,
		); err != nil {
			return nil, errors.Wrap(err, "scanning appointment row")
		}
		appointments = append(appointments, appointment)
	}
	return appointments, errors.Wrap(rows.Err(), "iterating appointment rows")
}
