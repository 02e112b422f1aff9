// Package console is a client for the game server console binary, which the
// toolkit shells out to for the two judgements it cannot make itself:
// whether a bare name is a legal competitor name, and how a transcript
// serializes after a parse round trip.
//
// Calls are synchronous and one-at-a-time. A failed call never corrupts
// store state; callers decide whether a failure is a classification
// ("invalid", "failed") or a reason to stop.
package console

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Client invokes the console binary at Binary.
type Client struct {
	Binary string
}

// New creates a client for the console binary at path.
func New(path string) *Client {
	return &Client{Binary: path}
}

// CheckName asks the console whether name is a legal competitor name.
// Exit 0 means legal. A nonzero exit or an unreachable binary both mean
// "invalid" - never an error: the auditor treats an oracle it cannot reach
// the same as an oracle that says no.
func (c *Client) CheckName(ctx context.Context, name string) bool {
	cmd := exec.CommandContext(ctx, c.Binary, "check-user-name", name)
	return cmd.Run() == nil
}

// RoundTrip feeds the transcript through the console's parse/re-serialize
// mode and returns the serialized output. A nonzero exit or spawn failure
// is returned as an error for the caller to classify.
func (c *Client) RoundTrip(ctx context.Context, pgn string) (string, error) {
	return c.pipe(ctx, pgn, "bpgn")
}

// StripTimestamps feeds the transcript through the console's
// timestamp-stripping mode and returns the cleaned transcript.
func (c *Client) StripTimestamps(ctx context.Context, pgn string) (string, error) {
	return c.pipe(ctx, pgn, "bpgn", "--remove-timestamps")
}

func (c *Client) pipe(ctx context.Context, input string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.Binary, args...)
	cmd.Stdin = strings.NewReader(input)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("console %s: %w", strings.Join(args, " "), err)
	}
	return out.String(), nil
}
