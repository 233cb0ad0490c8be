package ports

import (
	"context"

	"github.com/stoik/phishing-detector/internal/domain"
)

// AlertPublisher notifies downstream consumers about high-risk analyses
type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert *domain.Alert) error
	Close() error
}
