package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stoik/phishing-detector/internal/ports"
)

var (
	_ ports.AlertPublisher = (*NATSPublisher)(nil)
	_ ports.AlertPublisher = NoopPublisher{}
)

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.PublishAlert(context.Background(), &domain.Alert{FinalScore: 100}))
	assert.NoError(t, p.Close())
}

func TestNATSPublisher_CloseWithoutConnection(t *testing.T) {
	p := &NATSPublisher{}
	assert.NoError(t, p.Close())
	assert.False(t, p.IsConnected())
}
