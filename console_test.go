package sitedesk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestConsole(t *testing.T, opts ConsoleOptions) *Console {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	if opts.Decode == nil {
		opts.Decode = newGatedDecoder().decode
	}
	if opts.Logger == nil {
		opts.Logger = &recordingLogger{}
	}
	if opts.ChapterTypes == nil {
		opts.ChapterTypes = []string{"local", "regional", "international"}
	}
	return NewConsole(setupTestStore(t), opts)
}

// stage ingests files into form's pipeline and waits for the decodes.
func stage(t *testing.T, c *Console, form PhotoForm, files ...FileSource) []Rejection {
	t.Helper()
	pipe, ok := c.Pipeline(form)
	require.True(t, ok)
	b, err := pipe.Ingest(context.Background(), ModeSelect, files)
	require.NoError(t, err)
	return waitBatch(t, b)
}
