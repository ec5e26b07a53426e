package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentType represents how a customer settles a sale
type PaymentType string

const (
	PaymentTypeCash        PaymentType = "Cash"
	PaymentTypeInstallment PaymentType = "Installment"
)

func (t PaymentType) String() string {
	return string(t)
}

func (t PaymentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *PaymentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = PaymentType(str)
	return nil
}

func (t PaymentType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *PaymentType) Scan(value interface{}) error {
	if value == nil {
		*t = PaymentTypeInstallment
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = PaymentType(v)
	case []byte:
		*t = PaymentType(string(v))
	}
	return nil
}
