// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TranscriptItem is one speech segment from the provider's newline-delimited
// JSON transcript. Items are derived per pipeline run and never persisted
// individually; only the aggregate summary is stored on the meeting.
type TranscriptItem struct {
	SpeakerID string `json:"speaker_id"`
	Type      string `json:"type,omitempty"`
	Text      string `json:"text"`
	StartTS   int64  `json:"start_ts"`
	StopTS    int64  `json:"stop_ts,omitempty"`
}

// EnrichedTranscriptItem is a transcript item annotated with the resolved
// speaker identity.
type EnrichedTranscriptItem struct {
	TranscriptItem
	User SpeakerInfo `json:"user"`
}

// SpeakerInfo carries the display name resolved for a speaker id.
type SpeakerInfo struct {
	Name string `json:"name"`
}

// UnknownSpeakerName is the placeholder used when a speaker id resolves to
// neither a user nor an agent.
const UnknownSpeakerName = "Unknown"

// ParseTranscriptJSONL parses a newline-delimited JSON transcript payload,
// one record per speech segment. Blank lines are skipped; any malformed line
// fails the parse.
func ParseTranscriptJSONL(payload string) ([]TranscriptItem, error) {
	var items []TranscriptItem
	for i, line := range strings.Split(payload, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var item TranscriptItem
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			return nil, fmt.Errorf("malformed transcript line %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}
