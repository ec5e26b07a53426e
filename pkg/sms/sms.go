// Package sms sends transactional text messages through a JSON-over-HTTP
// bulk SMS gateway. Delivery is best-effort: there are no receipts, and
// callers treat a failed send as a logged non-event.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Sender sends one SMS to one recipient
type Sender interface {
	Send(ctx context.Context, to, message string) error
}

// Config holds gateway credentials
type Config struct {
	APIURL    string
	APIKey    string
	PartnerID string
	SenderID  string
}

// HTTPSender talks to the SMS gateway over HTTP
type HTTPSender struct {
	config Config
	client *http.Client
}

// NewHTTPSender creates a gateway-backed sender
func NewHTTPSender(config Config) *HTTPSender {
	return &HTTPSender{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewSenderFromConfig returns an HTTP sender when credentials are
// configured and a NullSender otherwise, so callers never need to care.
func NewSenderFromConfig(config Config) Sender {
	if config.APIURL == "" || config.APIKey == "" {
		return NewNullSender()
	}
	return NewHTTPSender(config)
}

type sendRequest struct {
	APIKey    string `json:"apikey"`
	PartnerID string `json:"partnerID"`
	Shortcode string `json:"shortcode"`
	Mobile    string `json:"mobile"`
	Message   string `json:"message"`
}

type sendResponse struct {
	ResponseCode int    `json:"response-code"`
	Description  string `json:"response-description"`
}

// Send posts one message to the gateway
func (s *HTTPSender) Send(ctx context.Context, to, message string) error {
	payload, err := json.Marshal(sendRequest{
		APIKey:    s.config.APIKey,
		PartnerID: s.config.PartnerID,
		Shortcode: s.config.SenderID,
		Mobile:    to,
		Message:   message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.APIURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// Some gateways answer 200 with a non-JSON body; the message
		// was accepted as far as we can tell.
		return nil
	}
	if result.ResponseCode != 0 && result.ResponseCode != 200 {
		return fmt.Errorf("sms gateway rejected message: %s", result.Description)
	}

	return nil
}

// NullSender drops messages, used when no gateway is configured
type NullSender struct{}

// NewNullSender creates a sender that logs and discards
func NewNullSender() *NullSender {
	return &NullSender{}
}

// Send logs the message instead of delivering it
func (s *NullSender) Send(ctx context.Context, to, message string) error {
	log.Printf("SMS gateway not configured, dropping message to %s", to)
	return nil
}
