// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package stream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(videoURL, chatURL string) *Client {
	return NewClient(Config{
		APIKey:         "test-key",
		APISecret:      "test-secret",
		VideoBaseURL:   videoURL,
		ChatBaseURL:    chatURL,
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	})
}

func TestClientAuthHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "jwt", r.Header.Get("Stream-Auth-Type"))
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)
	err := client.EndCall(context.Background(), "default", "call-1")
	require.NoError(t, err)
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)
	err := client.EndCall(context.Background(), "default", "call-1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":16,"message":"call not found"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)
	err := client.EndCall(context.Background(), "default", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "call not found")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientDoesNotRetryCancelledContext(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := newTestClient(server.URL, server.URL)
	err := client.EndCall(ctx, "default", "call-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), calls.Load())
}

// trackedBody counts Close calls on a response body.
type trackedBody struct {
	io.ReadCloser
	closed *atomic.Int32
}

func (b *trackedBody) Close() error {
	b.closed.Add(1)
	return b.ReadCloser.Close()
}

type bodyTrackingTransport struct {
	opened atomic.Int32
	closed atomic.Int32
}

func (t *bodyTrackingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := http.DefaultTransport.RoundTrip(req)
	if resp != nil {
		t.opened.Add(1)
		resp.Body = &trackedBody{ReadCloser: resp.Body, closed: &t.closed}
	}
	return resp, err
}

func TestClientClosesSupersededResponses(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)
	transport := &bodyTrackingTransport{}
	client.httpClient.Transport = transport

	require.NoError(t, client.EndCall(context.Background(), "default", "call-1"))
	assert.Equal(t, int32(2), transport.opened.Load())
	assert.Equal(t, int32(2), transport.closed.Load())
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		err        error
		expected   bool
	}{
		{
			name:       "500 server error should retry",
			statusCode: 500,
			expected:   true,
		},
		{
			name:       "429 rate limit should retry",
			statusCode: 429,
			expected:   true,
		},
		{
			name:       "404 not found should not retry",
			statusCode: 404,
			expected:   false,
		},
		{
			name:       "200 success should not retry",
			statusCode: 200,
			expected:   false,
		},
		{
			name:     "network error should retry",
			err:      errors.New("connection refused"),
			expected: true,
		},
		{
			name:     "context cancellation should not retry",
			err:      context.Canceled,
			expected: false,
		},
		{
			name:     "wrapped deadline exceeded should not retry",
			err:      &url.Error{Op: "Post", URL: "https://video.stream-io-api.com", Err: context.DeadlineExceeded},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shouldRetry(tt.statusCode, tt.err))
		})
	}
}

func TestEndCallPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)
	require.NoError(t, client.EndCall(context.Background(), "default", "meeting-1"))
	assert.Equal(t, "/video/call/default/meeting-1/mark_ended", gotPath)
}

func TestRecentMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/channels/messaging/chan-1/query", r.URL.Path)

		var request struct {
			Messages struct {
				Limit int `json:"limit"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, 5, request.Messages.Limit)

		_, _ = w.Write([]byte(`{
			"messages": [
				{"id": "m1", "text": "hello", "created_at": "2026-01-02T10:00:00Z", "user": {"id": "user-1"}},
				{"id": "m2", "text": "hi there", "created_at": "2026-01-02T10:00:05Z", "user": {"id": "agent-1"}},
				{"id": "m3", "text": "no timestamp", "user": {"id": "user-2"}}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)
	messages, err := client.RecentMessages(context.Background(), "messaging", "chan-1", 5)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "hello", messages[0].Text)
	assert.Equal(t, "user-1", messages[0].UserID)
	assert.Equal(t, "agent-1", messages[1].UserID)
	require.NotNil(t, messages[0].CreatedAt)
	assert.Equal(t, time.Date(2026, time.January, 2, 10, 0, 0, 0, time.UTC), messages[0].CreatedAt.UTC())
	assert.Nil(t, messages[2].CreatedAt)
}
