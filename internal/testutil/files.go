package testutil

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/psetgo/internal/ctxlog"
	"github.com/stretchr/testify/require"
)

// WriteFiles creates a temporary directory, writes every file of the map into
// it (keys are slash-separated relative paths) and returns the directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// WriteFile writes a single file into a fresh temporary directory and
// returns its full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	root := WriteFiles(t, map[string]string{name: content})
	return filepath.Join(root, filepath.FromSlash(name))
}

// Context returns a context carrying a debug-level text logger that writes
// into the returned buffer. Set PSETGO_TEST_LOGS=true to echo the output.
func Context(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if os.Getenv("PSETGO_TEST_LOGS") == "true" {
		t.Cleanup(func() {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		})
	}
	return ctxlog.WithLogger(context.Background(), logger), buf
}
