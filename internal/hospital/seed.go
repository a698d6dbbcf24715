package hospital

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Seed populates an empty database with sample staff, patients and their
// associated clinical and billing data. Safe to call repeatedly.
func (s *Store) Seed(hashPassword func(string) string) error {
	var patientCount int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM patients").Scan(&patientCount); err != nil {
		return errors.Wrap(err, "checking for existing data")
	}
	if patientCount > 0 {
		log.Debug().Msg("database already populated, skipping seed")
		return nil
	}

	doctors := []*User{
		{Name: "Dr. Sarah Smith", Email: "sarah.smith@hospital.com", Role: "doctor", Specialization: "Cardiology", Phone: "555-0101"},
		{Name: "Dr. James Wilson", Email: "james.wilson@hospital.com", Role: "doctor", Specialization: "Neurology", Phone: "555-0102"},
		{Name: "Dr. Emily Chen", Email: "emily.chen@hospital.com", Role: "doctor", Specialization: "Pediatrics", Phone: "555-0103"},
	}
	doctorIDs := make([]int64, 0, len(doctors))
	for _, doctor := range doctors {
		doctor.Password = hashPassword("doctor123")
		id, err := s.AddUser(doctor)
		if err != nil {
			return errors.Wrap(err, "seeding doctor")
		}
		doctorIDs = append(doctorIDs, id)
	}

	patients := []*Patient{
		{Name: "John Doe", Email: "john.doe@email.com", Phone: "555-0201", Address: "123 Main St", DateOfBirth: "1985-03-15", Gender: "Male", BloodGroup: "O+"},
		{Name: "Jane Roberts", Email: "jane.roberts@email.com", Phone: "555-0202", Address: "456 Oak Ave", DateOfBirth: "1990-07-22", Gender: "Female", BloodGroup: "A-"},
		{Name: "Michael Brown", Email: "michael.brown@email.com", Phone: "555-0203", Address: "789 Pine Rd", DateOfBirth: "1978-11-08", Gender: "Male", BloodGroup: "B+"},
		{Name: "Priya Patel", Email: "priya.patel@email.com", Phone: "555-0204", Address: "321 Elm St", DateOfBirth: "2001-01-30", Gender: "Female", BloodGroup: "AB+"},
	}
	patientIDs := make([]int64, 0, len(patients))
	for _, patient := range patients {
		id, err := s.AddPatient(patient)
		if err != nil {
			return errors.Wrap(err, "seeding patient")
		}
		patientIDs = append(patientIDs, id)
	}

	records := []*MedicalRecord{
		{PatientID: patientIDs[0], DoctorID: doctorIDs[0], Diagnosis: "Hypertension", Treatment: "Lifestyle changes and medication", Notes: "Follow up in 4 weeks"},
		{PatientID: patientIDs[1], DoctorID: doctorIDs[1], Diagnosis: "Migraine", Treatment: "Prescribed triptans", Notes: "Keep a headache diary"},
		{PatientID: patientIDs[2], DoctorID: doctorIDs[0], Diagnosis: "Type 2 diabetes", Treatment: "Metformin and dietary plan", Notes: "Quarterly HbA1c check"},
	}
	recordIDs := make([]int64, 0, len(records))
	for _, record := range records {
		id, err := s.AddMedicalRecord(record)
		if err != nil {
			return errors.Wrap(err, "seeding medical record")
		}
		recordIDs = append(recordIDs, id)
	}

	prescriptions := []*Prescription{
		{RecordID: recordIDs[0], Medication: "Lisinopril", Dosage: "10mg", Frequency: "Once daily", Duration: "30 days"},
		{RecordID: recordIDs[1], Medication: "Sumatriptan", Dosage: "50mg", Frequency: "As needed", Duration: "PRN", Notes: "Max 2 doses per day"},
		{RecordID: recordIDs[2], Medication: "Metformin", Dosage: "500mg", Frequency: "Twice daily", Duration: "90 days"},
	}
	for _, prescription := range prescriptions {
		if _, err := s.AddPrescription(prescription); err != nil {
			return errors.Wrap(err, "seeding prescription")
		}
	}

	today := time.Now().Format("2006-01-02")
	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	appointments := []*Appointment{
		{PatientID: patientIDs[0], DoctorID: doctorIDs[0], Date: today, Time: "09:30", Reason: "Blood pressure review"},
		{PatientID: patientIDs[1], DoctorID: doctorIDs[1], Date: today, Time: "11:00", Reason: "Migraine follow-up"},
		{PatientID: patientIDs[3], DoctorID: doctorIDs[2], Date: nextWeek, Time: "14:15", Reason: "Annual check-up"},
	}
	for _, appointment := range appointments {
		if _, err := s.AddAppointment(appointment); err != nil {
			return errors.Wrap(err, "seeding appointment")
		}
	}

	bills := []*Bill{
		{PatientID: patientIDs[0], RecordID: recordIDs[0], Amount: decimal.NewFromFloat(150.00)},
		{PatientID: patientIDs[1], RecordID: recordIDs[1], Amount: decimal.NewFromFloat(225.50)},
		{PatientID: patientIDs[2], RecordID: recordIDs[2], Amount: decimal.NewFromFloat(310.75)},
	}
	for _, bill := range bills {
		if _, err := s.AddBill(bill); err != nil {
			return errors.Wrap(err, "seeding bill")
		}
	}

	log.Info().
		Int("doctors", len(doctors)).
		Int("patients", len(patients)).
		Msg("seeded sample data")
	return nil
}
