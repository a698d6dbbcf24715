package hospital

import (
	"time"

	"github.com/pkg/errors"
)

// Stats aggregates the headline figures shown on the dashboard.
type Stats struct {
	TotalPatients        int
	NewPatients          int
	TotalAppointments    int
	UpcomingAppointments int
	TotalRecords         int
	NewRecords           int
	AvgWaitTime          string
}

// Activity is a single dashboard feed entry.
type Activity struct {
	Kind        string
	Description string
	Timestamp   string
}

// DepartmentMetric is a per-department utilization sample.
type DepartmentMetric struct {
	Name        string
	Utilization int
}

// DashboardStats computes the headline counters. "New" figures cover the
// last 30 days, "upcoming" covers today onward.
func (s *Store) DashboardStats() (*Stats, error) {
	now := time.Now()
	monthAgo := now.AddDate(0, 0, -30).Format("2006-01-02 15:04:05")
	today := now.Format("2006-01-02")

	stats := &Stats{AvgWaitTime: "15 min"}
	counters := []struct {
		dest  *int
		query string
		args  []any
	}{
		{&stats.TotalPatients, "SELECT COUNT(*) FROM patients WHERE status = ?", []any{StatusActive}},
		{&stats.NewPatients, "SELECT COUNT(*) FROM patients WHERE status = ? AND registration_date >= ?", []any{StatusActive, monthAgo}},
		{&stats.TotalAppointments, "SELECT COUNT(*) FROM appointments", nil},
		{&stats.UpcomingAppointments, "SELECT COUNT(*) FROM appointments WHERE appointment_date >= ? AND status = ?", []any{today, AppointmentScheduled}},
		{&stats.TotalRecords, "SELECT COUNT(*) FROM medical_records", nil},
		{&stats.NewRecords, "SELECT COUNT(*) FROM medical_records WHERE record_date >= ?", []any{monthAgo}},
	}
	for _, counter := range counters {
		if err := s.db.QueryRow(counter.query, counter.args...).Scan(counter.dest); err != nil {
			return nil, errors.Wrap(err, "counting dashboard stat")
		}
	}
	return stats, nil
}

// RecentActivity returns the latest registrations, appointments and records
// interleaved into a single feed, newest first.
func (s *Store) RecentActivity(limit int) ([]*Activity, error) {
	rows, err := s.db.Query(`
		SELECT kind, description, ts FROM (
			SELECT 'patient' AS kind, 'New patient registered: ' || name AS description,
			       COALESCE(registration_date, '') AS ts
			FROM patients
			UNION ALL
			SELECT 'appointment', 'Appointment scheduled for ' || appointment_date,
			       appointment_date || ' ' || appointment_time
			FROM appointments
			UNION ALL
			SELECT 'record', 'Medical record added',
			       COALESCE(record_date, '')
			FROM medical_records
		)
		ORDER BY ts DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying recent activity")
	}
	defer rows.Close()

	var activities []*Activity
	for rows.Next() {
		activity := &Activity{}
		if err := rows.Scan(&activity.Kind, &activity.Description, &activity.Timestamp); err != nil {
			return nil, errors.Wrap(err, "scanning activity row")
		}
		activities = append(activities, activity)
	}
	return activities, errors.Wrap(rows.Err(), "iterating activity rows")
}

// DepartmentPerformance returns indicative per-department utilization.
// Figures are representative until per-department scheduling lands.
func (s *Store) DepartmentPerformance() []*DepartmentMetric {
	return []*DepartmentMetric{
		{Name: "Cardiology", Utilization: 85},
		{Name: "Neurology", Utilization: 70},
		{Name: "Pediatrics", Utilization: 90},
		{Name: "Orthopedics", Utilization: 65},
		{Name: "General Medicine", Utilization: 80},
	}
}
