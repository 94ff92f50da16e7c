package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/sitedesk"
)

func TestBackupsListAndDiscard(t *testing.T) {
	db := filepath.Join(t.TempDir(), "test.db")
	store, err := sitedesk.NewStore(db)
	require.NoError(t, err)
	require.NoError(t, store.Write(sitedesk.KeyUpdates, `[{"id": `))
	coll := sitedesk.NewCollection[json.RawMessage](store, sitedesk.KeyUpdates, nil)
	require.NoError(t, coll.Append(json.RawMessage(`{"id": "1"}`)))
	require.NoError(t, store.Close())

	backup := sitedesk.KeyUpdates + sitedesk.BackupSuffix
	out, err := runCLI(t, "", "backups", "--db", db, "--key-prefix", "")
	require.NoError(t, err)
	assert.Equal(t, backup+"\n", out)

	_, err = runCLI(t, "", "backups", "--db", db, "--key-prefix", "", "--discard", sitedesk.KeyUpdates)
	assert.ErrorIs(t, err, sitedesk.ErrNotFound)

	out, err = runCLI(t, "", "backups", "--db", db, "--key-prefix", "", "--discard", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "discarded "+backup)

	out, err = runCLI(t, "", "backups", "--db", db, "--key-prefix", "")
	require.NoError(t, err)
	assert.Equal(t, "no backups\n", out)
}
