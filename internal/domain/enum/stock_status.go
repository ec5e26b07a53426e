package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// StockStatus represents the availability of an inventory item
type StockStatus string

const (
	StockStatusAvailable  StockStatus = "Available"
	StockStatusReserved   StockStatus = "Reserved"
	StockStatusOutOfStock StockStatus = "Out of Stock"
)

func (s StockStatus) String() string {
	return string(s)
}

func (s StockStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *StockStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = StockStatus(str)
	return nil
}

func (s StockStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *StockStatus) Scan(value interface{}) error {
	if value == nil {
		*s = StockStatusAvailable
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = StockStatus(v)
	case []byte:
		*s = StockStatus(string(v))
	}
	return nil
}
