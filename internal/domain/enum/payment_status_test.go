package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusFor(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		paid  int64
		want  PaymentStatus
	}{
		{"nothing paid", 100000, 0, PaymentStatusUnpaid},
		{"one cent paid", 100000, 1, PaymentStatusPartiallyPaid},
		{"one cent short", 100000, 99999, PaymentStatusPartiallyPaid},
		{"exactly settled", 100000, 100000, PaymentStatusPaid},
		{"over settled", 100000, 100001, PaymentStatusPaid},
		{"zero total", 0, 0, PaymentStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PaymentStatusFor(tt.total, tt.paid))
		})
	}
}

func TestParsePaymentStatus(t *testing.T) {
	for input, want := range map[string]PaymentStatus{
		"Unpaid":         PaymentStatusUnpaid,
		"unpaid":         PaymentStatusUnpaid,
		"Partially Paid": PaymentStatusPartiallyPaid,
		"partially_paid": PaymentStatusPartiallyPaid,
		"Paid":           PaymentStatusPaid,
		"paid":           PaymentStatusPaid,
	} {
		got, ok := ParsePaymentStatus(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := ParsePaymentStatus("settled")
	assert.False(t, ok)
}

func TestPaymentStatusStringOutOfRange(t *testing.T) {
	// A corrupted column value scanned back from the database must still
	// render instead of panicking.
	assert.Equal(t, "Unpaid", PaymentStatus(7).String())
	assert.Equal(t, "Unpaid", PaymentStatus(-1).String())

	data, err := json.Marshal(PaymentStatus(7))
	assert.NoError(t, err)
	assert.Equal(t, `"Unpaid"`, string(data))
}

func TestDocumentTypeStringOutOfRange(t *testing.T) {
	assert.Equal(t, "Invoice", DocumentType(9).String())
}

func TestPaymentStatusJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(PaymentStatusPartiallyPaid)
	assert.NoError(t, err)
	assert.Equal(t, `"Partially Paid"`, string(data))

	var status PaymentStatus
	assert.NoError(t, json.Unmarshal([]byte(`"Paid"`), &status))
	assert.Equal(t, PaymentStatusPaid, status)
}
