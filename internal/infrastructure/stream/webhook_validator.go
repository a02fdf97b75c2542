// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package stream

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
)

// WebhookValidator verifies Stream webhook signatures. The signature is the
// hex-encoded HMAC-SHA256 of the raw request body keyed with the API secret.
type WebhookValidator struct {
	apiSecret string
}

// Ensure WebhookValidator implements the verifier contract
var _ domain.WebhookVerifier = (*WebhookValidator)(nil)

// NewWebhookValidator creates a new Stream webhook validator
func NewWebhookValidator(apiSecret string) *WebhookValidator {
	return &WebhookValidator{
		apiSecret: apiSecret,
	}
}

// VerifyWebhook reports whether the signature matches the raw request body.
func (v *WebhookValidator) VerifyWebhook(body []byte, signature string) bool {
	if v.apiSecret == "" || signature == "" {
		return false
	}

	h := hmac.New(sha256.New, []byte(v.apiSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
