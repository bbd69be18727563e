package api

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck-api/internal/events"
	"github.com/flashdeck/flashdeck-api/internal/platform/filestore"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStore builds a file-backed store in a test temp dir. publisher may
// be nil.
func newTestStore(t *testing.T, publisher events.Publisher) store.FlashcardStore {
	t.Helper()

	s, err := filestore.NewFlashcardStore(filepath.Join(t.TempDir(), "library.json"), publisher, testLogger())
	require.NoError(t, err)
	return s
}
