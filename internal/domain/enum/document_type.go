package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DocumentType distinguishes invoices from quotations. Both live in the
// invoices table; a quotation never accepts payments.
type DocumentType int

const (
	DocumentTypeInvoice   DocumentType = 0
	DocumentTypeQuotation DocumentType = 1
)

func (t DocumentType) String() string {
	if t == DocumentTypeQuotation {
		return "Quotation"
	}
	return "Invoice"
}

func (t DocumentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DocumentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = DocumentType(i)
		return nil
	}
	switch str {
	case "Invoice":
		*t = DocumentTypeInvoice
	case "Quotation":
		*t = DocumentTypeQuotation
	}
	return nil
}

func (t DocumentType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *DocumentType) Scan(value interface{}) error {
	if value == nil {
		*t = DocumentTypeInvoice
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = DocumentType(v)
	case int:
		*t = DocumentType(v)
	}
	return nil
}
