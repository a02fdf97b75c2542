// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringPtr(t *testing.T) {
	p := StringPtr("meeting")
	assert.NotNil(t, p)
	assert.Equal(t, "meeting", *p)
}

func TestStringValue(t *testing.T) {
	assert.Equal(t, "", StringValue(nil))
	assert.Equal(t, "agent", StringValue(StringPtr("agent")))
}

func TestTimePtr(t *testing.T) {
	now := time.Now()
	p := TimePtr(now)
	assert.NotNil(t, p)
	assert.Equal(t, now, *p)
}

func TestTimeValue(t *testing.T) {
	assert.True(t, TimeValue(nil).IsZero())
	now := time.Now()
	assert.Equal(t, now, TimeValue(&now))
}
