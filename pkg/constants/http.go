// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

// Package constants holds shared HTTP header names and context keys.
package constants

// Constants for the HTTP request headers
const (
	// RequestIDHeader is the header name for the request ID
	RequestIDHeader string = "X-REQUEST-ID"

	// SignatureHeader carries the call provider's webhook signature
	SignatureHeader string = "x-signature"

	// APIKeyHeader carries the call provider's API key on webhook deliveries
	APIKeyHeader string = "x-api-key"
)

// contextRequestID is the type for the request ID context key
type contextRequestID string

// RequestIDContextID is the context ID for the request ID
const RequestIDContextID contextRequestID = "X-REQUEST-ID"
