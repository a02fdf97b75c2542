// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package stream

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signBody(secret string, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifyWebhook(t *testing.T) {
	validator := NewWebhookValidator("test-secret")
	body := []byte(`{"type":"call.session_started"}`)

	tests := []struct {
		name      string
		body      []byte
		signature string
		want      bool
	}{
		{
			name:      "valid signature",
			body:      body,
			signature: signBody("test-secret", body),
			want:      true,
		},
		{
			name:      "wrong secret",
			body:      body,
			signature: signBody("other-secret", body),
			want:      false,
		},
		{
			name:      "tampered body",
			body:      []byte(`{"type":"call.session_ended"}`),
			signature: signBody("test-secret", body),
			want:      false,
		},
		{
			name:      "empty signature",
			body:      body,
			signature: "",
			want:      false,
		},
		{
			name:      "garbage signature",
			body:      body,
			signature: "not-a-hex-digest",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.VerifyWebhook(tt.body, tt.signature))
		})
	}
}

func TestVerifyWebhookNoSecret(t *testing.T) {
	validator := NewWebhookValidator("")
	body := []byte(`{}`)
	assert.False(t, validator.VerifyWebhook(body, signBody("", body)))
}
