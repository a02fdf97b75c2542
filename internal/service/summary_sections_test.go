// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleSummary = `## Meeting Overview
The team reviewed the Q3 launch plan.

## Action Items & Next Steps
- **Action:** Draft the launch announcement
- **Action:** Confirm budget with finance

Some trailing prose that is not a bullet.

## Important Discussion Points
- **Topic:** Launch timing
- **Topic:** Support rota

## Meeting Metrics
- **Duration:** 45 minutes
`

func TestExtractActionItems(t *testing.T) {
	items := ExtractActionItems(sampleSummary)
	assert.Equal(t, []string{
		"**Action:** Draft the launch announcement",
		"**Action:** Confirm budget with finance",
	}, items)
}

func TestExtractKeyPoints(t *testing.T) {
	points := ExtractKeyPoints(sampleSummary)
	assert.Equal(t, []string{
		"**Topic:** Launch timing",
		"**Topic:** Support rota",
	}, points)
}

func TestExtractSectionBullets(t *testing.T) {
	tests := []struct {
		name     string
		summary  string
		heading  string
		expected []string
	}{
		{
			name:     "absent section yields empty list",
			summary:  "## Meeting Overview\nNothing else.",
			heading:  actionItemsHeading,
			expected: []string{},
		},
		{
			name:     "empty summary",
			summary:  "",
			heading:  keyPointsHeading,
			expected: []string{},
		},
		{
			name:     "heading match is case insensitive",
			summary:  "## action items & next steps\n- follow up with legal",
			heading:  actionItemsHeading,
			expected: []string{"follow up with legal"},
		},
		{
			name:     "section with no bullets",
			summary:  "## Action Items & Next Steps\nNo concrete actions were agreed.",
			heading:  actionItemsHeading,
			expected: []string{},
		},
		{
			name:     "bullets stop at the next heading",
			summary:  "## Action Items & Next Steps\n- first\n## Meeting Metrics\n- not an action",
			heading:  actionItemsHeading,
			expected: []string{"first"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractSectionBullets(tt.summary, tt.heading))
		})
	}
}
