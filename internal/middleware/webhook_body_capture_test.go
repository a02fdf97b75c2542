// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookBodyCaptureMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		body          string
		expectCapture bool
	}{
		{
			name:          "captures webhook request body",
			path:          "/api/webhook",
			body:          `{"type": "call.session_started"}`,
			expectCapture: true,
		},
		{
			name:          "does not capture other paths",
			path:          "/livez",
			body:          `{}`,
			expectCapture: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedBody []byte
			var captured bool
			var downstreamBody []byte

			handler := WebhookBodyCaptureMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedBody, captured = GetRawBodyFromContext(r.Context())
				var err error
				downstreamBody, err = io.ReadAll(r.Body)
				require.NoError(t, err)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectCapture, captured)
			if tt.expectCapture {
				assert.Equal(t, tt.body, string(capturedBody))
			}
			// The body must remain readable downstream either way
			assert.Equal(t, tt.body, string(downstreamBody))
		})
	}
}
