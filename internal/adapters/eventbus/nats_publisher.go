package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stoik/phishing-detector/internal/domain"
	"go.uber.org/zap"
)

// NATSPublisher publishes high-risk alerts as JSON on a NATS subject
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	logger  *zap.Logger
}

// NewNATSPublisher connects to NATS, retrying in the background if the server is not up yet
func NewNATSPublisher(natsURL, subject string, logger *zap.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(natsURL,
		nats.Name("phishing-detector"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("NATS publisher ready",
		zap.String("url", natsURL),
		zap.String("subject", subject),
		zap.Bool("connected", conn.IsConnected()))

	return &NATSPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger,
	}, nil
}

// PublishAlert publishes one alert
func (p *NATSPublisher) PublishAlert(ctx context.Context, alert *domain.Alert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish alert: %w", err)
	}

	p.logger.Debug("Published phishing alert",
		zap.String("subject", p.subject),
		zap.String("submission_id", alert.SubmissionID.String()),
		zap.Int("final_score", alert.FinalScore))

	return nil
}

// Close drains and closes the connection
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	p.logger.Info("Disconnected from NATS")
	return nil
}

// IsConnected reports whether the connection is currently up
func (p *NATSPublisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

// NoopPublisher drops alerts; used when alerting is disabled
type NoopPublisher struct{}

// PublishAlert discards the alert
func (NoopPublisher) PublishAlert(ctx context.Context, alert *domain.Alert) error { return nil }

// Close does nothing
func (NoopPublisher) Close() error { return nil }
