// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

// Package models contains the domain entities for the meeting intelligence
// service: meetings, agents, users, transcripts, and the webhook event shapes
// delivered by the call provider.
package models

import (
	"time"
)

// MeetingStatus is the lifecycle status of a meeting.
type MeetingStatus string

const (
	MeetingStatusUpcoming   MeetingStatus = "upcoming"
	MeetingStatusActive     MeetingStatus = "active"
	MeetingStatusProcessing MeetingStatus = "processing"
	MeetingStatusCompleted  MeetingStatus = "completed"
	MeetingStatusCancelled  MeetingStatus = "cancelled"
)

// Meeting is the key-value store representation of a meeting. The meeting UID
// doubles as the call and chat channel identifier at the provider.
type Meeting struct {
	UID           string        `json:"uid"`
	Name          string        `json:"name"`
	AgentUID      string        `json:"agent_uid"`
	UserUID       string        `json:"user_uid"`
	Status        MeetingStatus `json:"status"`
	StartedAt     *time.Time    `json:"started_at,omitempty"`
	EndedAt       *time.Time    `json:"ended_at,omitempty"`
	TranscriptURL string        `json:"transcript_url,omitempty"`
	RecordingURL  string        `json:"recording_url,omitempty"`
	Summary       string        `json:"summary,omitempty"`
	CreatedAt     *time.Time    `json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty"`
}

// Start transitions the meeting into the active status. The caller is
// responsible for checking the upcoming-status precondition.
func (m *Meeting) Start(now time.Time) {
	m.Status = MeetingStatusActive
	m.StartedAt = &now
	m.UpdatedAt = &now
}

// EndSession transitions the meeting into the processing status.
func (m *Meeting) EndSession(now time.Time) {
	m.Status = MeetingStatusProcessing
	m.EndedAt = &now
	m.UpdatedAt = &now
}

// CompleteWithRecording marks the meeting completed and records the recording
// location.
func (m *Meeting) CompleteWithRecording(url string, now time.Time) {
	m.RecordingURL = url
	m.Status = MeetingStatusCompleted
	m.UpdatedAt = &now
}
