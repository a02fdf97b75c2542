// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealtimeBridgeConnect(t *testing.T) {
	var paths []string
	var bodies []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	bridge := NewRealtimeBridge(newTestClient(server.URL, server.URL), "openai-key")

	session, err := bridge.Connect(context.Background(), "meeting-1", "agent-1")
	require.NoError(t, err)
	require.NoError(t, session.UpdateInstructions(context.Background(), "Take notes and be brief."))

	require.Len(t, paths, 2)
	assert.Equal(t, "/video/call/default/meeting-1/openai/connect", paths[0])
	assert.Equal(t, "/video/call/default/meeting-1/openai/session", paths[1])

	assert.Equal(t, "agent-1", bodies[0]["agent_user_id"])
	assert.Equal(t, "openai-key", bodies[0]["openai_api_key"])
	sessionBody := bodies[1]["session"].(map[string]any)
	assert.Equal(t, "Take notes and be brief.", sessionBody["instructions"])
}

func TestRealtimeBridgeConnectError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code":17,"message":"not allowed"}`))
	}))
	defer server.Close()

	bridge := NewRealtimeBridge(newTestClient(server.URL, server.URL), "openai-key")
	_, err := bridge.Connect(context.Background(), "meeting-1", "agent-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}
