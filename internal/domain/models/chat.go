// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package models

import "time"

// ChannelMessage is a message read back from a chat channel's history.
type ChannelMessage struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Text      string     `json:"text"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// OutboundChannelMessage is a message posted into a channel on behalf of a
// chat user.
type OutboundChannelMessage struct {
	ID   string      `json:"id,omitempty"`
	Text string      `json:"text"`
	User ChannelUser `json:"user"`
}

// ChannelUser is a chat identity at the provider. The agent is upserted as a
// channel user before it posts so its display name and avatar stay
// consistent.
type ChannelUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}
