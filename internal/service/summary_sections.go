// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package service

import "strings"

// Markdown section headings the summarizer is instructed to emit. The email
// digest lifts its highlight lists from these sections.
const (
	actionItemsHeading = "Action Items & Next Steps"
	keyPointsHeading   = "Important Discussion Points"
)

// ExtractActionItems returns the bullet lines under the action items section
// of a generated summary. A summary without that section yields an empty
// list.
func ExtractActionItems(summary string) []string {
	return extractSectionBullets(summary, actionItemsHeading)
}

// ExtractKeyPoints returns the bullet lines under the discussion points
// section of a generated summary.
func ExtractKeyPoints(summary string) []string {
	return extractSectionBullets(summary, keyPointsHeading)
}

// extractSectionBullets collects the top-level bullet lines between the named
// "## " heading and the next one. Bullet markers and surrounding whitespace
// are stripped; the bullet text itself is kept verbatim, markdown included.
func extractSectionBullets(summary, heading string) []string {
	bullets := []string{}

	inSection := false
	for _, line := range strings.Split(summary, "\n") {
		trimmed := strings.TrimSpace(line)

		if after, ok := strings.CutPrefix(trimmed, "## "); ok {
			inSection = strings.EqualFold(strings.TrimSpace(after), heading)
			continue
		}
		if !inSection {
			continue
		}

		if bullet, ok := strings.CutPrefix(trimmed, "- "); ok {
			if bullet = strings.TrimSpace(bullet); bullet != "" {
				bullets = append(bullets, bullet)
			}
		}
	}

	return bullets
}
