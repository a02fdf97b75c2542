// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package models

import "time"

// Agent is an LLM persona that joins meetings on behalf of a user. Agents are
// created through the CRUD API and are read-only from the webhook and
// pipeline paths.
type Agent struct {
	UID          string     `json:"uid"`
	UserUID      string     `json:"user_uid"`
	Name         string     `json:"name"`
	Instructions string     `json:"instructions"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
