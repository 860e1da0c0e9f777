package rabbitmq_producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublisherConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     PublisherConfig
		wantErr bool
	}{
		{"default exchange", PublisherConfig{}, false},
		{"declared topic", PublisherConfig{ExchangeName: "listing_events", ExchangeType: "topic", DeclareExchangeIfMissing: true}, false},
		{"existing exchange", PublisherConfig{ExchangeName: "listing_events"}, false},
		{"declare without name", PublisherConfig{ExchangeType: "topic", DeclareExchangeIfMissing: true}, true},
		{"declare without type", PublisherConfig{ExchangeName: "listing_events", DeclareExchangeIfMissing: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewPublisherRequiresManager(t *testing.T) {
	_, err := NewPublisher(PublisherConfig{}, nil)
	assert.Error(t, err)
}
