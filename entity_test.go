package sitedesk

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.warns)
}

func TestCollectionAbsentKey(t *testing.T) {
	c := NewCollection[Update](setupTestStore(t), KeyUpdates, nil)

	res, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, Absent, res.Status)
	assert.Empty(t, res.Records)

	got, err := c.Get()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollectionAppendKeepsOrder(t *testing.T) {
	c := NewCollection[Update](setupTestStore(t), KeyUpdates, nil)
	for i := 1; i <= 3; i++ {
		require.NoError(t, c.Append(Update{ID: fmt.Sprint(i), Title: fmt.Sprintf("u%d", i)}))
	}

	got, err := c.Get()
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, u := range got {
		assert.Equal(t, fmt.Sprint(i+1), u.ID)
	}
}

func TestCollectionReplaceAllIsIdempotent(t *testing.T) {
	s := setupTestStore(t)
	c := NewCollection[PhotoItem](s, KeyMiddleBoxPhotos, nil)
	photos := []PhotoItem{{ID: "1-0", Name: "Middle Box Photo 1"}, {ID: "1-1", Name: "Middle Box Photo 2"}}

	require.NoError(t, c.ReplaceAll(photos))
	first, _, _ := s.Read(c.Key())
	require.NoError(t, c.ReplaceAll(photos))
	second, _, _ := s.Read(c.Key())
	assert.Equal(t, first, second)

	require.NoError(t, c.ReplaceAll(photos[:1]))
	got, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, photos[:1], got)

	require.NoError(t, c.ReplaceAll(nil))
	raw, _, _ := s.Read(c.Key())
	assert.Equal(t, "[]", raw)
}

func TestCollectionRemoveKeepsComplementInOrder(t *testing.T) {
	c := NewCollection[Update](setupTestStore(t), KeyUpdates, nil)
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, c.Append(Update{ID: id}))
	}

	n, err := c.Remove(func(u Update) bool { return u.ID == "b" || u.ID == "d" })
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := c.Get()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	n, err = c.Remove(func(u Update) bool { return u.ID == "zzz" })
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCollectionCorruptDegradesToEmpty(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Write(KeyUpdates, `{not json`))
	logger := &recordingLogger{}
	c := NewCollection[Update](s, KeyUpdates, logger)

	res, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, Corrupt, res.Status)
	assert.Equal(t, `{not json`, res.Raw)
	assert.Error(t, res.Err)

	got, err := c.Get()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, logger.count())
}

func TestCollectionAppendPreservesCorruptText(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Write(KeyGallerySets, `[{"id": 1`))
	c := NewCollection[PhotoSet](s, KeyGallerySets, &recordingLogger{})

	require.NoError(t, c.Append(PhotoSet{ID: "10", Year: 2020}))

	backup, ok, err := s.Read(KeyGallerySets + ".corrupt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id": 1`, backup)

	got, err := c.Get()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "10", got[0].ID)
}

func TestBackupsListAndDiscard(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Write("nsm_"+KeyUpdates, `{broken`))
	require.NoError(t, s.Write(KeyGallerySets, `{broken`))
	for _, key := range []string{"nsm_" + KeyUpdates, KeyGallerySets} {
		c := NewCollection[json.RawMessage](s, key, &recordingLogger{})
		require.NoError(t, c.Append(json.RawMessage(`{}`)))
	}

	got, err := Backups(s, "nsm_")
	require.NoError(t, err)
	assert.Equal(t, []string{"nsm_" + KeyUpdates + BackupSuffix}, got)

	err = DiscardBackup(s, "nsm_", "nsm_"+KeyUpdates)
	assert.ErrorIs(t, err, ErrNotFound)
	_, ok, _ := s.Read("nsm_" + KeyUpdates)
	assert.True(t, ok)

	require.NoError(t, DiscardBackup(s, "nsm_", "nsm_"+KeyUpdates+BackupSuffix))
	got, err = Backups(s, "nsm_")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Backups(s, "")
	require.NoError(t, err)
	assert.Equal(t, []string{KeyGallerySets + BackupSuffix}, got)
}

func TestCollectionConcurrentAppends(t *testing.T) {
	c := NewCollection[Update](setupTestStore(t), KeyUpdates, nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, c.Append(Update{ID: fmt.Sprint(i)}))
		}(i)
	}
	wg.Wait()

	got, err := c.Get()
	require.NoError(t, err)
	assert.Len(t, got, 20)
}

func TestTextValue(t *testing.T) {
	s := setupTestStore(t)
	v := TextValue{store: s, key: KeyHeroTitle}

	got, err := v.Get()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, v.Set(`Welcome "home"`))
	got, err = v.Get()
	require.NoError(t, err)
	assert.Equal(t, `Welcome "home"`, got)

	require.NoError(t, s.Write(KeyHeroTitle, `42`))
	got, err = v.Get()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadStatusString(t *testing.T) {
	assert.Equal(t, "absent", Absent.String())
	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "corrupt", Corrupt.String())
}
