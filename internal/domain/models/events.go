// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Webhook event types delivered by the call provider.
const (
	EventTypeCallSessionStarted         = "call.session_started"
	EventTypeCallSessionParticipantLeft = "call.session_participant_left"
	EventTypeCallSessionEnded           = "call.session_ended"
	EventTypeCallTranscriptionReady     = "call.transcription_ready"
	EventTypeCallRecordingReady         = "call.recording_ready"
	EventTypeMessageNew                 = "message.new"
)

// NATS subjects and queue groups used by the service.
const (
	// MeetingProcessingSubject carries post-meeting pipeline jobs emitted by
	// the transcription_ready handler.
	MeetingProcessingSubject = "convogenius.meetings.processing"

	// MeetingProcessingQueue is the queue group for pipeline consumers so the
	// job is delivered to a single instance.
	MeetingProcessingQueue = "meeting-intelligence-service"
)

// MeetingProcessingMessage is the pipeline job payload published on
// [MeetingProcessingSubject].
type MeetingProcessingMessage struct {
	MeetingUID    string `json:"meeting_uid"`
	TranscriptURL string `json:"transcript_url"`
}

// WebhookEnvelope is the minimal shape shared by all provider events, used to
// pick the concrete event type before decoding the full payload.
type WebhookEnvelope struct {
	Type string `json:"type"`
}

// CallCustomData is the application-defined metadata attached to a call when
// it is created. The meeting UID travels here for events that carry the full
// call object.
type CallCustomData struct {
	MeetingUID string `json:"meetingId"`
}

// CallObject is the call resource embedded in session lifecycle events.
type CallObject struct {
	CID    string         `json:"cid,omitempty"`
	Custom CallCustomData `json:"custom"`
}

// CallSessionStartedEvent is delivered when the first participant joins a
// call session.
type CallSessionStartedEvent struct {
	Type string     `json:"type"`
	Call CallObject `json:"call"`
}

// CallSessionParticipantLeftEvent is delivered when a participant leaves.
// Unlike the session lifecycle events it only carries the composite call CID.
type CallSessionParticipantLeftEvent struct {
	Type    string `json:"type"`
	CallCID string `json:"call_cid"`
}

// CallSessionEndedEvent is delivered when a call session ends.
type CallSessionEndedEvent struct {
	Type string     `json:"type"`
	Call CallObject `json:"call"`
}

// CallTranscriptionReadyEvent is delivered once the provider has finished
// transcribing a recorded session.
type CallTranscriptionReadyEvent struct {
	Type              string `json:"type"`
	CallCID           string `json:"call_cid"`
	CallTranscription struct {
		URL string `json:"url"`
	} `json:"call_transcription"`
}

// CallRecordingReadyEvent is delivered once the session recording is
// available for download.
type CallRecordingReadyEvent struct {
	Type          string `json:"type"`
	CallCID       string `json:"call_cid"`
	CallRecording struct {
		URL string `json:"url"`
	} `json:"call_recording"`
}

// MessageNewEvent is delivered when a new message is posted in a chat
// channel. The channel id is the meeting UID.
type MessageNewEvent struct {
	Type string `json:"type"`
	User *struct {
		ID string `json:"id"`
	} `json:"user,omitempty"`
	ChannelID string `json:"channel_id"`
	Message *struct {
		Text string `json:"text"`
	} `json:"message,omitempty"`
}

// MeetingUIDFromCallCID extracts the meeting UID from a composite call CID of
// the form "type:meetingId". The format is owned by the call provider, so
// malformed input is reported rather than sliced blindly.
func MeetingUIDFromCallCID(callCID string) (string, error) {
	callType, meetingUID, found := strings.Cut(callCID, ":")
	if !found || callType == "" || meetingUID == "" {
		return "", fmt.Errorf("malformed call cid %q: expected \"type:meetingId\"", callCID)
	}
	return meetingUID, nil
}

// DecodeEvent decodes the parsed webhook payload into the typed event struct
// for the envelope's declared type. A nil result with a nil error means the
// event type is not one the service models.
func DecodeEvent(eventType string, payload map[string]any) (any, error) {
	var event any
	switch eventType {
	case EventTypeCallSessionStarted:
		event = &CallSessionStartedEvent{}
	case EventTypeCallSessionParticipantLeft:
		event = &CallSessionParticipantLeftEvent{}
	case EventTypeCallSessionEnded:
		event = &CallSessionEndedEvent{}
	case EventTypeCallTranscriptionReady:
		event = &CallTranscriptionReadyEvent{}
	case EventTypeCallRecordingReady:
		event = &CallRecordingReadyEvent{}
	case EventTypeMessageNew:
		event = &MessageNewEvent{}
	default:
		return nil, nil
	}

	config := &mapstructure.DecoderConfig{
		TagName: "json",
		Result:  event,
	}
	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create event decoder: %w", err)
	}
	if err := decoder.Decode(payload); err != nil {
		return nil, fmt.Errorf("failed to decode %s event: %w", eventType, err)
	}
	return event, nil
}
