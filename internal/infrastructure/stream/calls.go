// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package stream

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/logging"
)

// Ensure Client implements the call provider contract
var _ domain.CallProvider = (*Client)(nil)

// EndCall forces session teardown for the given call.
func (c *Client) EndCall(ctx context.Context, callType, callID string) error {
	ctx = logging.AppendCtx(ctx, slog.String("stream_operation", "end_call"))

	path := "/video/call/" + url.PathEscape(callType) + "/" + url.PathEscape(callID) + "/mark_ended"
	resp, err := c.doRequest(ctx, http.MethodPost, c.config.VideoBaseURL, path, nil)
	if err != nil {
		slog.ErrorContext(ctx, "failed to end call", logging.ErrKey, err, "call_id", callID)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		err := parseErrorResponse(body)
		slog.ErrorContext(ctx, "Stream API returned error ending call",
			logging.ErrKey, err, "status", resp.StatusCode, "call_id", callID)
		return err
	}

	slog.InfoContext(ctx, "ended call", "call_type", callType, "call_id", callID)
	return nil
}
