package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/sitedesk"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestImportFromStdin(t *testing.T) {
	db := filepath.Join(t.TempDir(), "test.db")
	in := `[{"timestamp": 1700000000000, "amount": "1,500", "category": "nsm"}]`

	out, err := runCLI(t, in, "import", "donations", "-", "--db", db, "--key-prefix", "nsm_")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 records into nsm_donations")

	store, err := sitedesk.NewStore(db)
	require.NoError(t, err)
	defer store.Close()
	raw, ok, err := store.Read("nsm_donations")
	require.NoError(t, err)
	require.True(t, ok)
	var recs []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &recs))
	assert.Len(t, recs, 1)
}

func TestImportRejectsInvalidRecords(t *testing.T) {
	db := filepath.Join(t.TempDir(), "test.db")
	_, err := runCLI(t, `[{"name": "no timestamp"}]`, "import", "user_logins", "-", "--db", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp is required")
}

func TestImportUnknownCollection(t *testing.T) {
	_, err := runCLI(t, `[]`, "import", "updates", "-", "--db", filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown collection")
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "sitedesk dev\n", out)
}
