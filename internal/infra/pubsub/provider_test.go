package pubsub

import (
	"context"
	"testing"

	"authsvc/config"
	"authsvc/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newPublisherParams(t *testing.T, ps *config.PubSubConfig) PublisherParams {
	t.Helper()

	return PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: &config.Config{PubSub: ps},
		Logger: newTestLogger(),
	}
}

func TestNewEventPublisher_Noop(t *testing.T) {
	for _, ps := range []*config.PubSubConfig{nil, {}} {
		publisher, err := NewEventPublisher(newPublisherParams(t, ps))
		require.NoError(t, err)

		assert.NoError(t, publisher.PublishAuthEvent(context.Background(), &service.AuthEvent{
			Type:   service.EventUserRegistered,
			UserID: "user-1",
		}))
		assert.NoError(t, publisher.Close())
	}
}

func TestNewEventPublisher_LocalRequiresEndpoint(t *testing.T) {
	_, err := NewEventPublisher(newPublisherParams(t, &config.PubSubConfig{Provider: "local"}))
	assert.Error(t, err)
}

func TestNewEventPublisher_Local(t *testing.T) {
	publisher, err := NewEventPublisher(newPublisherParams(t, &config.PubSubConfig{
		Provider:      "local",
		LocalEndpoint: "http://localhost:9000/events",
	}))
	require.NoError(t, err)
	assert.NotNil(t, publisher)
}

func TestNewEventPublisher_GoogleRequiresProjectAndTopic(t *testing.T) {
	_, err := NewEventPublisher(newPublisherParams(t, &config.PubSubConfig{Provider: "google"}))
	assert.Error(t, err)

	_, err = NewEventPublisher(newPublisherParams(t, &config.PubSubConfig{
		Provider:  "google",
		ProjectID: "proj",
	}))
	assert.Error(t, err)
}

func TestNewEventPublisher_UnknownProvider(t *testing.T) {
	_, err := NewEventPublisher(newPublisherParams(t, &config.PubSubConfig{Provider: "kafka"}))
	assert.Error(t, err)
}
