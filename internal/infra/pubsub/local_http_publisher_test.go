package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"authsvc/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalHTTPPublisher_PublishAuthEvent(t *testing.T) {
	var received PubSubPushMessage
	var requestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, newTestLogger())
	defer publisher.Close()

	event := &service.AuthEvent{
		RequestID: "req-42",
		Type:      service.EventUserRegistered,
		UserID:    "user-1",
		Username:  "alice",
	}
	require.NoError(t, publisher.PublishAuthEvent(context.Background(), event))

	assert.Equal(t, "req-42", requestID)
	assert.Equal(t, service.EventUserRegistered, received.Message.Attributes["type"])
	assert.Equal(t, "user-1", received.Message.Attributes["user_id"])
	assert.Equal(t, "req-42", received.Message.Attributes["request_id"])
	assert.NotEmpty(t, received.Message.MessageID)
	assert.NotEmpty(t, received.Message.PublishTime)

	// Payload round-trips through the base64 data field.
	raw, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded service.AuthEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, *event, decoded)
}

func TestLocalHTTPPublisher_SubscriberFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, newTestLogger())
	defer publisher.Close()

	err := publisher.PublishAuthEvent(context.Background(), &service.AuthEvent{
		Type:   service.EventUserLoggedIn,
		UserID: "user-1",
	})
	assert.Error(t, err)
}

func TestLocalHTTPPublisher_UnreachableEndpoint(t *testing.T) {
	publisher := NewLocalHTTPPublisher("http://127.0.0.1:1/events", newTestLogger())
	defer publisher.Close()

	err := publisher.PublishAuthEvent(context.Background(), &service.AuthEvent{
		Type:   service.EventUserLoggedIn,
		UserID: "user-1",
	})
	assert.Error(t, err)
}
