package hospital

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Bill is a charge raised against a patient, optionally tied to a record.
type Bill struct {
	ID            int64
	PatientID     int64
	RecordID      int64
	Amount        decimal.Decimal
	PaymentStatus string
	PaymentDate   string
	PaymentMethod string

	// PatientName is populated by join queries only.
	PatientName string
}

// AddBill inserts a new bill and returns its identifier.
func (s *Store) AddBill(bill *Bill) (int64, error) {
	if bill.PaymentStatus == "" {
		bill.PaymentStatus = PaymentPending
	}
	var recordID any
	if bill.RecordID != 0 {
		recordID = bill.RecordID
	}
	result, err := s.db.Exec(`
		INSERT INTO billing (patient_id, record_id, amount, payment_status, payment_date, payment_method)
		VALUES (?, ?, ?, ?, ?, ?)`,
		bill.PatientID, recordID, bill.Amount.String(),
		bill.PaymentStatus, bill.PaymentDate, bill.PaymentMethod,
	)
	if err != nil {
		return 0, errors.Wrap(err, "inserting bill")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "reading insert id")
	}
	bill.ID = id
	return id, nil
}

// UpdatePayment transitions a bill's payment status. Marking a bill paid
// stamps the payment date.
func (s *Store) UpdatePayment(id int64, status, method string) error {
	paymentDate := ""
	if status == PaymentPaid {
		paymentDate = time.Now().Format("2006-01-02 15:04:05")
	}
	_, err := s.db.Exec(`
		UPDATE billing SET payment_status = ?, payment_method = ?, payment_date = ?
		WHERE id = ?`, status, method, paymentDate, id)
	return errors.Wrap(err, "updating payment")
}

// PatientBills returns a patient's bills, newest first.
func (s *Store) PatientBills(patientID int64) ([]*Bill, error) {
	rows, err := s.db.Query(`
		SELECT id, patient_id, COALESCE(record_id, 0), amount, payment_status,
		       COALESCE(payment_date, ''), COALESCE(payment_method, '')
		FROM billing WHERE patient_id = ?
		ORDER BY id DESC`, patientID)
	if err != nil {
		return nil, errors.Wrap(err, "querying patient bills")
	}
	defer rows.Close()
	return scanBills(rows, false)
}

// PendingBills returns all unpaid bills with the patient's name joined in.
func (s *Store) PendingBills() ([]*Bill, error) {
	rows, err := s.db.Query(`
		SELECT b.id, b.patient_id, COALESCE(b.record_id, 0), b.amount, b.payment_status,
		       COALESCE(b.payment_date, ''), COALESCE(b.payment_method, ''), p.name
		FROM billing b
		JOIN patients p ON b.patient_id = p.id
		WHERE b.payment_status = ?
		ORDER BY b.id DESC`, PaymentPending)
	if err != nil {
		return nil, errors.Wrap(err, "querying pending bills")
	}
	defer rows.Close()
	return scanBills(rows, true)
}

func scanBills(rows *sql.Rows, withPatientName bool) ([]*Bill, error) {
	var bills []*Bill
	for rows.Next() {
		bill := &Bill{}
		var amount string
		dest := []any{
			&bill.ID, &bill.PatientID, &bill.RecordID, &amount,
			&bill.PaymentStatus, &bill.PaymentDate, &bill.PaymentMethod,
		}
		if withPatientName {
			dest = append(dest, &bill.PatientName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrap(err, "scanning bill row")
		}
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing bill amount (%s)", amount)
		}
		bill.Amount = parsed
		bills = append(bills, bill)
	}
	return bills, errors.Wrap(rows.Err(), "iterating bill rows")
}
