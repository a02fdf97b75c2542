// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

// Package service contains the business logic of the meeting intelligence
// service: webhook event processing, the meeting lifecycle state machine, the
// post-meeting processing pipeline, and the post-meeting chat responder.
package service

// Service is an interface for the services to determine if they are ready to
// serve requests.
type Service interface {
	ServiceReady() bool
}
