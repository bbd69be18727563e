package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck-api/internal/events"
)

func TestSubscribeStreamsChangeEvents(t *testing.T) {
	t.Parallel()

	broker := events.NewChangeBroker(testLogger())
	handler := NewEventsHandler(broker, testLogger())

	server := httptest.NewServer(http.HandlerFunc(handler.Subscribe))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	// The stream opens with a comment line before any events.
	opening, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(opening, ":"))

	// The opening comment is written after the subscription registers, so
	// this publish cannot be missed.
	broker.Publish(events.NewChangeEvent(events.OpInsert, uuid.New()))

	var eventLine, dataLine string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "event:") {
			eventLine = line
			continue
		}
		if strings.HasPrefix(line, "data:") {
			dataLine = line
			break
		}
	}

	assert.Equal(t, "event: change", eventLine)

	var event events.ChangeEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(dataLine, "data: ")), &event))
	assert.Equal(t, events.OpInsert, event.Op)
	assert.NotEqual(t, uuid.Nil, event.FlashcardID)
}

func TestSubscribeEndsOnDisconnect(t *testing.T) {
	t.Parallel()

	broker := events.NewChangeBroker(testLogger())
	handler := NewEventsHandler(broker, testLogger())

	server := httptest.NewServer(http.HandlerFunc(handler.Subscribe))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	cancel()

	// Publishing after the disconnect must not block or panic, whether or
	// not the handler has finished unsubscribing yet.
	done := make(chan struct{})
	go func() {
		defer close(done)
		broker.Publish(events.NewChangeEvent(events.OpDelete, uuid.New()))
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked after subscriber disconnect")
	}
}
