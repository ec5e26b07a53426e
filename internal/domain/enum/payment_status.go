package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus represents how much of a billable document has been settled
type PaymentStatus int

const (
	PaymentStatusUnpaid        PaymentStatus = 0
	PaymentStatusPartiallyPaid PaymentStatus = 1
	PaymentStatusPaid          PaymentStatus = 2
)

// PaymentStatusFor derives the status from the two accumulators.
// It is a pure function: Paid iff nothing is left owing, Unpaid iff
// nothing has been paid, PartiallyPaid otherwise.
func PaymentStatusFor(totalCents, paidCents int64) PaymentStatus {
	switch {
	case totalCents-paidCents <= 0:
		return PaymentStatusPaid
	case paidCents > 0:
		return PaymentStatusPartiallyPaid
	default:
		return PaymentStatusUnpaid
	}
}

// ParsePaymentStatus maps a query-string value to a status. The second
// return value is false when the input names no known status.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch s {
	case "Unpaid", "unpaid":
		return PaymentStatusUnpaid, true
	case "Partially Paid", "partially_paid":
		return PaymentStatusPartiallyPaid, true
	case "Paid", "paid":
		return PaymentStatusPaid, true
	default:
		return PaymentStatusUnpaid, false
	}
}

// String renders the status name. Out-of-range values (a corrupted row
// read back through Scan) fall back to Unpaid instead of panicking.
func (s PaymentStatus) String() string {
	switch s {
	case PaymentStatusPartiallyPaid:
		return "Partially Paid"
	case PaymentStatusPaid:
		return "Paid"
	default:
		return "Unpaid"
	}
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "Unpaid":
		*s = PaymentStatusUnpaid
	case "Partially Paid":
		*s = PaymentStatusPartiallyPaid
	case "Paid":
		*s = PaymentStatusPaid
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusUnpaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
