// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package models

import "time"

// User is an account holder. Users own meetings and agents and receive the
// post-meeting email digest.
type User struct {
	UID       string     `json:"uid"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
