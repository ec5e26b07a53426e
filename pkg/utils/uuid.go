package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateDocumentNo generates a human-readable document code such as
// "INV-20251205-3F2A". The date keeps codes sortable on paper records;
// the random suffix keeps them unique.
func GenerateDocumentNo(prefix string) string {
	return prefix + "-" + time.Now().Format("20060102") + "-" + strings.ToUpper(uuid.New().String()[:4])
}

// GenerateReferenceNo generates a unique reference number
func GenerateReferenceNo(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}
