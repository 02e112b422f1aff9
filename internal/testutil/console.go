package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// StubConsole writes an executable shell script standing in for the game
// console binary and returns its path. The script receives the console
// subcommand arguments exactly as the real binary would.
func StubConsole(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "console")
	body := "#!/bin/sh\n" + script + "\n"
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub console: %v", err)
	}
	return path
}

// EchoConsole returns a stub console that accepts every name and echoes
// transcripts back unchanged, i.e. a serializer for which every round trip
// is stable.
func EchoConsole(t *testing.T) string {
	t.Helper()
	return StubConsole(t, `case "$1" in
check-user-name) exit 0 ;;
bpgn) cat ;;
*) exit 2 ;;
esac`)
}
