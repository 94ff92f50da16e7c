package sitedesk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSubmit(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})
	stage(t, c, FormEvent, img("stage.jpg"), img("crowd.jpg"))

	set, notice, err := c.PhotoSets[FormEvent].Submit(PhotoSetInput{EventName: "Founders Day", EventDate: "2024-03-10"})
	require.NoError(t, err)
	assert.Equal(t, success("Event photos uploaded successfully!"), notice)
	assert.Equal(t, "Founders Day", set.EventName)
	assert.Equal(t, "2024-03-10", set.EventDate)
	assert.Zero(t, set.Year)
	require.Len(t, set.Photos, 2)
	assert.Equal(t, "Event Photo 1", set.Photos[0].Name)
	assert.Equal(t, "Event Photo 2", set.Photos[1].Name)
	assert.Equal(t, testNow.UnixMilli(), set.Photos[0].UploadedAt)

	sets, err := c.PhotoSets[FormEvent].List()
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, set.ID, sets[0].ID)

	pipe, _ := c.Pipeline(FormEvent)
	assert.Empty(t, pipe.Items())

	st, _ := c.Stats.Snapshot()
	assert.Equal(t, 1, st.Events)
}

func TestSubmitKeepsFilesStillDecoding(t *testing.T) {
	dec := newGatedDecoder()
	gate := dec.hold("late.jpg")
	c := newTestConsole(t, ConsoleOptions{Decode: dec.decode})
	stage(t, c, FormGallery, img("early.jpg"))

	pipe, _ := c.Pipeline(FormGallery)
	b, err := pipe.Ingest(context.Background(), ModeDrop, []FileSource{img("late.jpg")})
	require.NoError(t, err)

	set, _, err := c.PhotoSets[FormGallery].Submit(PhotoSetInput{Year: 2022})
	require.NoError(t, err)
	require.Len(t, set.Photos, 1)
	assert.Contains(t, set.Photos[0].URL, "early.jpg")

	close(gate)
	waitBatch(t, b)
	items := pipe.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "late.jpg", items[0].Name)
	assert.False(t, items[0].Pending)
}

func TestEventSubmitValidation(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})
	mgr := c.PhotoSets[FormEvent]

	_, _, err := mgr.Submit(PhotoSetInput{EventName: "Founders Day", EventDate: "2024-03-10"})
	assert.ErrorIs(t, err, ErrNoPhotos)

	stage(t, c, FormEvent, img("a.jpg"))
	_, _, err = mgr.Submit(PhotoSetInput{EventName: " ", EventDate: "2024-03-10"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "event-name", verr.Field)

	_, _, err = mgr.Submit(PhotoSetInput{EventName: "Founders Day", EventDate: "10/03/2024"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "event-date", verr.Field)

	// failed submits keep the preview list for another try
	pipe, _ := c.Pipeline(FormEvent)
	assert.Equal(t, 1, pipe.Count())
	sets, err := mgr.List()
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestGallerySubmitSkipsNonImages(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})
	rejected := stage(t, c, FormGallery,
		img("1.jpg"), img("2.jpg"), MemoryFile{FileName: "readme.txt", Type: "text/plain"}, img("3.jpg"))
	assert.Len(t, rejected, 1)

	set, _, err := c.PhotoSets[FormGallery].Submit(PhotoSetInput{Year: 2020})
	require.NoError(t, err)
	assert.Equal(t, 2020, set.Year)
	assert.Len(t, set.Photos, 3)

	st, _ := c.Stats.Snapshot()
	assert.Equal(t, 3, st.GalleryPhotos)
}

func TestYearValidation(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})
	stage(t, c, FormReunion, img("a.jpg"))
	mgr := c.PhotoSets[FormReunion]

	for _, year := range []int{0, 1992, 2025} {
		_, _, err := mgr.Submit(PhotoSetInput{Year: year})
		assert.True(t, IsUserError(err), "year %d", year)
	}
	_, _, err := mgr.Submit(PhotoSetInput{Year: 1993})
	assert.NoError(t, err)
}

func TestChapterSubmit(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})
	mgr := c.PhotoSets[FormChapter]
	stage(t, c, FormChapter, img("a.jpg"))

	_, _, err := mgr.Submit(PhotoSetInput{Year: 2024})
	assert.True(t, IsUserError(err))
	_, _, err = mgr.Submit(PhotoSetInput{ChapterType: "galactic", Year: 2024})
	assert.True(t, IsUserError(err))

	set, notice, err := mgr.Submit(PhotoSetInput{ChapterType: "regional", Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, "regional", set.ChapterType)
	assert.Equal(t, "Chapter photos uploaded successfully!", notice.Message)
	assert.Equal(t, "Chapter Photo 1", set.Photos[0].Name)
}

func TestPhotoSetDelete(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})
	mgr := c.PhotoSets[FormGallery]
	stage(t, c, FormGallery, img("a.jpg"), img("b.jpg"))
	set, _, err := mgr.Submit(PhotoSetInput{Year: 2021})
	require.NoError(t, err)

	_, err = mgr.Delete(set.ID, false)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	sets, _ := mgr.List()
	assert.Len(t, sets, 1)

	notice, err := mgr.Delete(set.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "Gallery photos deleted successfully!", notice.Message)
	sets, _ = mgr.List()
	assert.Empty(t, sets)

	_, err = mgr.Delete(set.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)

	st, _ := c.Stats.Snapshot()
	assert.Zero(t, st.GalleryPhotos)
}

func TestPhotoSetListNewestFirst(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})
	mgr := c.PhotoSets[FormGallery]
	for _, year := range []int{2001, 2002, 2003} {
		stage(t, c, FormGallery, img("a.jpg"))
		_, _, err := mgr.Submit(PhotoSetInput{Year: year})
		require.NoError(t, err)
	}
	sets, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, sets, 3)
	assert.Equal(t, 2003, sets[0].Year)
	assert.Equal(t, 2001, sets[2].Year)
}

func TestHomepageSaveReplaces(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})
	mgr := c.Homepage[FormMiddleBox]

	stage(t, c, FormMiddleBox, img("a.jpg"), img("b.jpg"))
	photos, notice, err := mgr.Save()
	require.NoError(t, err)
	assert.Len(t, photos, 2)
	assert.Equal(t, "Homepage middle box photos updated successfully!", notice.Message)

	stage(t, c, FormMiddleBox, img("c.jpg"))
	_, _, err = mgr.Save()
	require.NoError(t, err)

	got, err := mgr.Photos()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Middle Box Photo 1", got[0].Name)
	assert.Contains(t, got[0].URL, "c.jpg")

	_, _, err = mgr.Save()
	assert.ErrorIs(t, err, ErrNoPhotos)
	got, _ = mgr.Photos()
	assert.Len(t, got, 1)
}

func TestUpdateAddListDelete(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})
	m := c.Updates

	_, _, err := m.Add(UpdateInput{Title: "  "})
	assert.True(t, IsUserError(err))
	_, _, err = m.Add(UpdateInput{Title: "Bad date", Date: "June 1"})
	assert.True(t, IsUserError(err))

	first, notice, err := m.Add(UpdateInput{Title: "Reunion announced", Content: "Save the date"})
	require.NoError(t, err)
	assert.Equal(t, "Update added successfully!", notice.Message)
	assert.Equal(t, "2024-06-15", first.Date)
	second, _, err := m.Add(UpdateInput{Title: "Scholarships", Date: "2024-05-01"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Greater(t, second.CreatedAt, first.CreatedAt)

	list, err := m.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	_, err = m.Delete(first.ID, false)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	_, err = m.Delete(first.ID, true)
	require.NoError(t, err)
	_, err = m.Delete(first.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)

	st, _ := c.Stats.Snapshot()
	assert.Equal(t, 1, st.Updates)
}

func TestKeyPrefix(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{KeyPrefix: "nsm_"})
	_, _, err := c.Updates.Add(UpdateInput{Title: "Hello"})
	require.NoError(t, err)

	_, ok, err := c.Store.Read("nsm_updates")
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, _ = c.Store.Read("updates")
	assert.False(t, ok)
}

func TestYearOptions(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	years := YearOptions(now, FirstYear)
	require.Len(t, years, 2024-1993+1)
	assert.Equal(t, 2024, years[0])
	assert.Equal(t, 1993, years[len(years)-1])
	for i := 1; i < len(years); i++ {
		assert.Equal(t, years[i-1]-1, years[i])
	}
	assert.Nil(t, YearOptions(now, 2030))

	c := newTestConsole(t, ConsoleOptions{FirstYear: 2020})
	assert.Equal(t, []int{2024, 2023, 2022, 2021, 2020}, c.YearOptions())
}

func TestParsePhotoForm(t *testing.T) {
	f, ok := ParsePhotoForm(" Gallery ")
	assert.True(t, ok)
	assert.Equal(t, FormGallery, f)
	_, ok = ParsePhotoForm("blog")
	assert.False(t, ok)
	assert.True(t, FormHomeGallery.IsHomepage())
	assert.False(t, FormReunion.IsHomepage())
}

func TestCopyManager(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})

	_, err := c.Copy.SaveHome("", " ")
	assert.True(t, IsUserError(err))

	_, err = c.Copy.SaveHome("Welcome alumni", "Once a student, always family")
	require.NoError(t, err)
	_, err = c.Copy.SaveHome("", "New quote")
	require.NoError(t, err)
	title, quote, err := c.Copy.Home()
	require.NoError(t, err)
	assert.Equal(t, "Welcome alumni", title)
	assert.Equal(t, "New quote", quote)

	_, err = c.Copy.SaveAbout("", "x")
	assert.True(t, IsUserError(err))
	notice, err := c.Copy.SaveAbout("Our History", "Founded in 1993.")
	require.NoError(t, err)
	assert.Equal(t, "About page content updated successfully!", notice.Message)
	got, err := c.Copy.About("our-history")
	require.NoError(t, err)
	assert.Equal(t, "Founded in 1993.", got)
	_, ok, _ := c.Store.Read("about_our-history")
	assert.True(t, ok)
}
