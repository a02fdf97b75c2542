// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTranscriptJSONL(t *testing.T) {
	t.Run("parses one item per line", func(t *testing.T) {
		payload := `{"speaker_id":"u1","text":"hello","start_ts":0}
{"speaker_id":"a1","text":"hi there","start_ts":1200}
{"speaker_id":"u1","text":"let's begin","start_ts":2400}`

		items, err := ParseTranscriptJSONL(payload)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "u1", items[0].SpeakerID)
		assert.Equal(t, "hi there", items[1].Text)
		assert.Equal(t, int64(2400), items[2].StartTS)
	})

	t.Run("skips blank lines", func(t *testing.T) {
		payload := "\n{\"speaker_id\":\"u1\",\"text\":\"hello\",\"start_ts\":0}\n\n"
		items, err := ParseTranscriptJSONL(payload)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("empty payload yields no items", func(t *testing.T) {
		items, err := ParseTranscriptJSONL("")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("malformed line fails with line number", func(t *testing.T) {
		payload := `{"speaker_id":"u1","text":"hello","start_ts":0}
not json`
		_, err := ParseTranscriptJSONL(payload)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})
}
