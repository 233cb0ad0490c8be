package factory

import (
	"go.uber.org/zap"

	"github.com/stoik/phishing-detector/internal/adapters/eventbus"
	"github.com/stoik/phishing-detector/internal/config"
	"github.com/stoik/phishing-detector/internal/ports"
)

// AlertFactory creates the alert publisher based on configuration
type AlertFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAlertFactory creates a new alert factory
func NewAlertFactory(cfg *config.Config, logger *zap.Logger) *AlertFactory {
	return &AlertFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateAlertPublisher connects to NATS when alerts are enabled
func (f *AlertFactory) CreateAlertPublisher() (ports.AlertPublisher, error) {
	alertsCfg := f.cfg.GetAlerts()
	if !alertsCfg.Enabled {
		f.logger.Info("Alert publishing disabled")
		return eventbus.NoopPublisher{}, nil
	}

	publisher, err := eventbus.NewNATSPublisher(alertsCfg.NATSURL, alertsCfg.Subject, f.logger)
	if err != nil {
		return nil, err
	}
	if !publisher.IsConnected() {
		// Alerts published before the connection comes up are buffered by the client
		f.logger.Warn("NATS not reachable yet, retrying in the background",
			zap.String("url", alertsCfg.NATSURL))
	}
	return publisher, nil
}
