// Package notify implements the delivery collaborators used by the
// goal-reached trigger.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"weighttrack/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Permission is a fixed delivery permission, usually taken from config.
type Permission bool

// IsAuthorized reports the configured permission.
func (p Permission) IsAuthorized() bool { return bool(p) }

// LogSender writes messages to the log instead of a transport.
type LogSender struct {
	log zerolog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

// Send logs message.
func (s *LogSender) Send(_ context.Context, message, to string) error {
	s.log.Info().Str("to", to).Str("message", message).Msg("notification")
	return nil
}

// WebhookSender posts messages to an SMS gateway as JSON.
type WebhookSender struct {
	url    string
	token  string
	client *http.Client
}

// NewWebhookSender creates a WebhookSender for the gateway at url. token is
// sent as a bearer token when non-empty.
func NewWebhookSender(url, token string) *WebhookSender {
	return &WebhookSender{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts {"to", "message"} to the gateway. A 401 or 403 reply maps to
// domain.ErrNoDeliveryPermission.
func (s *WebhookSender) Send(ctx context.Context, message, to string) error {
	body, err := json.Marshal(map[string]string{"to": to, "message": message})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.ErrNoDeliveryPermission
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("sms gateway: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Instrumented counts deliveries by result.
type Instrumented struct {
	next  domain.Sender
	total *prometheus.CounterVec
}

// NewInstrumented wraps next and registers its counter with reg.
func NewInstrumented(next domain.Sender, reg prometheus.Registerer) (*Instrumented, error) {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weighttrack",
		Subsystem: "notify",
		Name:      "deliveries_total",
		Help:      "Goal notifications handed to the transport, by result.",
	}, []string{"result"})
	if err := reg.Register(total); err != nil {
		return nil, err
	}
	return &Instrumented{next: next, total: total}, nil
}

// Send forwards to the wrapped sender and records the result.
func (s *Instrumented) Send(ctx context.Context, message, to string) error {
	err := s.next.Send(ctx, message, to)
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.total.WithLabelValues(result).Inc()
	return err
}
