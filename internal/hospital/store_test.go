package hospital

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "hospital.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func addTestDoctor(t *testing.T, store *Store) int64 {
	t.Helper()
	id, err := store.AddUser(&User{
		Name:           "Dr. Test",
		Email:          "doctor@test.com",
		Password:       "hashed",
		Role:           "doctor",
		Specialization: "Cardiology",
	})
	require.NoError(t, err)
	return id
}

func addTestPatient(t *testing.T, store *Store) int64 {
	t.Helper()
	id, err := store.AddPatient(&Patient{
		Name:  "Test Patient",
		Email: "patient@test.com",
		Phone: "555-1234",
	})
	require.NoError(t, err)
	return id
}

func TestUserLifecycle(t *testing.T) {
	store := newTestStore(t)

	id, err := store.AddUser(&User{Name: "Alice", Email: "alice@test.com", Password: "x", Role: "nurse"})
	require.NoError(t, err)

	user, err := store.GetUser(id)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, StatusActive, user.Status)
	assert.NotEmpty(t, user.DateJoined)

	byEmail, err := store.GetUserByEmail("alice@test.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, id, byEmail.ID)

	user.Phone = "555-9999"
	user.Role = "doctor"
	require.NoError(t, store.UpdateUser(user, []string{"phone", "role"}))
	updated, err := store.GetUser(id)
	require.NoError(t, err)
	assert.Equal(t, "555-9999", updated.Phone)
	assert.Equal(t, "doctor", updated.Role)

	require.NoError(t, store.DeleteUser(id))
	deleted, err := store.GetUser(id)
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, deleted.Status)
}

func TestGetUserMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)
	user, err := store.GetUser(42)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUpdateUserRejectsUnknownField(t *testing.T) {
	store := newTestStore(t)
	id := addTestDoctor(t, store)
	err := store.UpdateUser(&User{ID: id}, []string{"id"})
	assert.Error(t, err)
}

func TestListUsersFiltersByRole(t *testing.T) {
	store := newTestStore(t)
	addTestDoctor(t, store)
	_, err := store.AddUser(&User{Name: "Nurse", Email: "nurse@test.com", Password: "x", Role: "nurse"})
	require.NoError(t, err)

	doctors, err := store.ListUsers("doctor")
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Dr. Test", doctors[0].Name)

	all, err := store.ListUsers("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPatientSearchMatchesNameEmailAndPhone(t *testing.T) {
	store := newTestStore(t)
	addTestPatient(t, store)
	_, err := store.AddPatient(&Patient{Name: "Other Person", Email: "other@test.com", Phone: "555-0000"})
	require.NoError(t, err)

	for _, query := range []string{"Test Pat", "patient@test", "555-1234"} {
		results, err := store.SearchPatients(query)
		require.NoError(t, err)
		require.Len(t, results, 1, "query %q", query)
		assert.Equal(t, "Test Patient", results[0].Name)
	}
}

func TestDeletedPatientExcludedFromListAndSearch(t *testing.T) {
	store := newTestStore(t)
	id := addTestPatient(t, store)
	require.NoError(t, store.DeletePatient(id))

	patients, err := store.ListPatients()
	require.NoError(t, err)
	assert.Empty(t, patients)

	results, err := store.SearchPatients("Test")
	require.NoError(t, err)
	assert.Empty(t, results)

	// Still retrievable directly, marked inactive.
	patient, err := store.GetPatient(id)
	require.NoError(t, err)
	require.NotNil(t, patient)
	assert.Equal(t, StatusInactive, patient.Status)
}

func TestPatientRecordsJoinDoctorName(t *testing.T) {
	store := newTestStore(t)
	doctorID := addTestDoctor(t, store)
	patientID := addTestPatient(t, store)

	_, err := store.AddMedicalRecord(&MedicalRecord{
		PatientID: patientID,
		DoctorID:  doctorID,
		Diagnosis: "Hypertension",
		Treatment: "Medication",
	})
	require.NoError(t, err)

	records, err := store.PatientRecords(patientID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dr. Test", records[0].DoctorName)
	assert.Equal(t, "Hypertension", records[0].Diagnosis)
	assert.NotEmpty(t, records[0].RecordDate)

	byDoctor, err := store.DoctorRecords(doctorID)
	require.NoError(t, err)
	require.Len(t, byDoctor, 1)
	assert.Equal(t, "Test Patient", byDoctor[0].PatientName)
}

func TestAppointmentFilterAndStatus(t *testing.T) {
	store := newTestStore(t)
	doctorID := addTestDoctor(t, store)
	patientID := addTestPatient(t, store)

	today := time.Now().Format("2006-01-02")
	id, err := store.AddAppointment(&Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      today,
		Time:      "10:00",
		Reason:    "Check-up",
	})
	require.NoError(t, err)

	appointments, err := store.ListAppointments(AppointmentFilter{DoctorID: doctorID, Date: today})
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, AppointmentScheduled, appointments[0].Status)
	assert.Equal(t, "Test Patient", appointments[0].PatientName)
	assert.Equal(t, "Dr. Test", appointments[0].DoctorName)

	todays, err := store.TodaysAppointments(5)
	require.NoError(t, err)
	assert.Len(t, todays, 1)

	require.NoError(t, store.UpdateAppointmentStatus(id, AppointmentCompleted))
	todays, err = store.TodaysAppointments(5)
	require.NoError(t, err)
	assert.Empty(t, todays)

	assert.Error(t, store.UpdateAppointmentStatus(id, "bogus"))
}

func TestPrescriptionsAcrossRecords(t *testing.T) {
	store := newTestStore(t)
	doctorID := addTestDoctor(t, store)
	patientID := addTestPatient(t, store)

	recordID, err := store.AddMedicalRecord(&MedicalRecord{PatientID: patientID, DoctorID: doctorID, Diagnosis: "Flu"})
	require.NoError(t, err)
	_, err = store.AddPrescription(&Prescription{RecordID: recordID, Medication: "Oseltamivir", Dosage: "75mg"})
	require.NoError(t, err)

	byRecord, err := store.RecordPrescriptions(recordID)
	require.NoError(t, err)
	require.Len(t, byRecord, 1)
	assert.Equal(t, "Oseltamivir", byRecord[0].Medication)

	byPatient, err := store.PatientPrescriptions(patientID)
	require.NoError(t, err)
	require.Len(t, byPatient, 1)
	assert.NotEmpty(t, byPatient[0].RecordDate)
}

func TestBillingAmountRoundTrip(t *testing.T) {
	store := newTestStore(t)
	patientID := addTestPatient(t, store)

	amount := decimal.RequireFromString("1234.56")
	id, err := store.AddBill(&Bill{PatientID: patientID, Amount: amount})
	require.NoError(t, err)

	bills, err := store.PatientBills(patientID)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.True(t, bills[0].Amount.Equal(amount), bills[0].Amount.String())
	assert.Equal(t, PaymentPending, bills[0].PaymentStatus)
	assert.Empty(t, bills[0].PaymentDate)

	pending, err := store.PendingBills()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Test Patient", pending[0].PatientName)

	require.NoError(t, store.UpdatePayment(id, PaymentPaid, "card"))
	bills, err = store.PatientBills(patientID)
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, bills[0].PaymentStatus)
	assert.NotEmpty(t, bills[0].PaymentDate)

	pending, err = store.PendingBills()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDashboardStats(t *testing.T) {
	store := newTestStore(t)
	doctorID := addTestDoctor(t, store)
	patientID := addTestPatient(t, store)

	_, err := store.AddMedicalRecord(&MedicalRecord{PatientID: patientID, DoctorID: doctorID, Diagnosis: "Flu"})
	require.NoError(t, err)
	_, err = store.AddAppointment(&Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      time.Now().Format("2006-01-02"),
		Time:      "09:00",
	})
	require.NoError(t, err)

	stats, err := store.DashboardStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPatients)
	assert.Equal(t, 1, stats.NewPatients)
	assert.Equal(t, 1, stats.TotalAppointments)
	assert.Equal(t, 1, stats.UpcomingAppointments)
	assert.Equal(t, 1, stats.TotalRecords)
	assert.Equal(t, 1, stats.NewRecords)
	assert.NotEmpty(t, stats.AvgWaitTime)

	activity, err := store.RecentActivity(10)
	require.NoError(t, err)
	assert.Len(t, activity, 3)
}

func TestSeedIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	hash := func(password string) string { return "hashed:" + password }

	require.NoError(t, store.Seed(hash))
	patients, err := store.ListPatients()
	require.NoError(t, err)
	seeded := len(patients)
	require.Greater(t, seeded, 0)

	require.NoError(t, store.Seed(hash))
	patients, err = store.ListPatients()
	require.NoError(t, err)
	assert.Len(t, patients, seeded)
}
