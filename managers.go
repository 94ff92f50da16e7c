package sitedesk

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PhotoForm identifies one of the console's photo upload forms.
type PhotoForm string

const (
	FormEvent       PhotoForm = "event"
	FormGallery     PhotoForm = "gallery"
	FormChapter     PhotoForm = "chapter"
	FormReunion     PhotoForm = "reunion"
	FormMiddleBox   PhotoForm = "middle-box"
	FormHomeGallery PhotoForm = "homepage-gallery"
)

type formDef struct {
	key      string
	label    string // photo name prefix
	saved    string // success notice
	deleted  string
	homepage bool
}

var photoForms = map[PhotoForm]formDef{
	FormEvent:       {key: KeyEventSets, label: "Event Photo", saved: "Event photos uploaded successfully!", deleted: "Event photos deleted successfully!"},
	FormGallery:     {key: KeyGallerySets, label: "Gallery Photo", saved: "Gallery photos uploaded successfully!", deleted: "Gallery photos deleted successfully!"},
	FormChapter:     {key: KeyChapterSets, label: "Chapter Photo", saved: "Chapter photos uploaded successfully!", deleted: "Chapter photos deleted successfully!"},
	FormReunion:     {key: KeyReunionSets, label: "Reunion Photo", saved: "Reunion photos uploaded successfully!", deleted: "Reunion photos deleted successfully!"},
	FormMiddleBox:   {key: KeyMiddleBoxPhotos, label: "Middle Box Photo", saved: "Homepage middle box photos updated successfully!", homepage: true},
	FormHomeGallery: {key: KeyHomeGalleryPhoto, label: "Homepage Gallery Photo", saved: "Homepage gallery photos updated successfully!", homepage: true},
}

// PhotoForms lists every photo form in dashboard order.
var PhotoForms = []PhotoForm{FormEvent, FormGallery, FormChapter, FormReunion, FormMiddleBox, FormHomeGallery}

// ParsePhotoForm maps a route tag to its form.
func ParsePhotoForm(s string) (PhotoForm, bool) {
	f := PhotoForm(strings.ToLower(strings.TrimSpace(s)))
	_, ok := photoForms[f]
	return f, ok
}

// IsHomepage reports whether the form saves a replace-in-place homepage collection.
func (f PhotoForm) IsHomepage() bool { return photoForms[f].homepage }

// FirstYear is the earliest year offered by the year selectors.
const FirstYear = 1993

// YearOptions returns the selectable years from now's year down to first,
// inclusive, in descending order.
func YearOptions(now time.Time, first int) []int {
	current := now.Year()
	if current < first {
		return nil
	}
	years := make([]int, 0, current-first+1)
	for y := current; y >= first; y-- {
		years = append(years, y)
	}
	return years
}

const dateLayout = "2006-01-02"

// UpdateInput is the announcement form.
type UpdateInput struct {
	Title   string
	Content string
	Date    string
}

// UpdateManager adds, lists and deletes announcements.
type UpdateManager struct {
	coll    *Collection[Update]
	ids     *IDSource
	now     func() time.Time
	changed func()
}

// Add validates in and appends it as a new Update.
func (m *UpdateManager) Add(in UpdateInput) (Update, Notice, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Update{}, Notice{}, invalid("title", "title is required")
	}
	now := m.now()
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = now.Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return Update{}, Notice{}, invalid("date", "invalid date format, use YYYY-MM-DD")
	}
	ms := m.ids.Next(now)
	u := Update{
		ID:        formatID(ms),
		Title:     title,
		Content:   in.Content,
		Date:      date,
		CreatedAt: ms,
	}
	if err := m.coll.Append(u); err != nil {
		return Update{}, Notice{}, err
	}
	m.changed()
	return u, success("Update added successfully!"), nil
}

// List returns every Update, newest first.
func (m *UpdateManager) List() ([]Update, error) {
	updates, err := m.coll.Get()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(updates, func(i, j int) bool {
		return updates[i].CreatedAt > updates[j].CreatedAt
	})
	return updates, nil
}

// Delete removes the Update with id. Nothing changes unless confirmed is true.
func (m *UpdateManager) Delete(id string, confirmed bool) (Notice, error) {
	if !confirmed {
		return Notice{}, ErrNotConfirmed
	}
	n, err := m.coll.Remove(func(u Update) bool { return u.ID == id })
	if err != nil {
		return Notice{}, err
	}
	if n == 0 {
		return Notice{}, ErrNotFound
	}
	m.changed()
	return success("Update deleted successfully!"), nil
}

// PhotoSetInput carries the kind-specific fields of a photo set form. Only
// the fields relevant to the form are read.
type PhotoSetInput struct {
	EventName   string
	EventDate   string
	ChapterType string
	Year        int
}

// PhotoSetManager commits a pipeline into an append-only collection of photo sets.
type PhotoSetManager struct {
	form         PhotoForm
	coll         *Collection[PhotoSet]
	pipe         *Pipeline
	ids          *IDSource
	now          func() time.Time
	firstYear    int
	chapterTypes []string
	changed      func()
}

// Form returns the form this manager serves.
func (m *PhotoSetManager) Form() PhotoForm { return m.form }

func (m *PhotoSetManager) describe(in PhotoSetInput, now time.Time) (PhotoSet, error) {
	var set PhotoSet
	switch m.form {
	case FormEvent:
		set.EventName = strings.TrimSpace(in.EventName)
		if set.EventName == "" {
			return set, invalid("event-name", "event name is required")
		}
		set.EventDate = strings.TrimSpace(in.EventDate)
		if _, err := time.Parse(dateLayout, set.EventDate); err != nil {
			return set, invalid("event-date", "invalid date format, use YYYY-MM-DD")
		}
		return set, nil
	case FormChapter:
		set.ChapterType = strings.TrimSpace(in.ChapterType)
		if set.ChapterType == "" {
			return set, invalid("chapter-type", "chapter type is required")
		}
		if len(m.chapterTypes) > 0 && !contains(m.chapterTypes, set.ChapterType) {
			return set, invalid("chapter-type", fmt.Sprintf("unknown chapter type %q", set.ChapterType))
		}
	}
	if in.Year < m.firstYear || in.Year > now.Year() {
		return set, invalid("year", fmt.Sprintf("year must be between %d and %d", m.firstYear, now.Year()))
	}
	set.Year = in.Year
	return set, nil
}

// Submit validates the form fields, commits the preview list and appends the
// resulting set. On any failure the stored collection and the preview list
// are left untouched.
func (m *PhotoSetManager) Submit(in PhotoSetInput) (PhotoSet, Notice, error) {
	now := m.now()
	set, err := m.describe(in, now)
	if err != nil {
		return PhotoSet{}, Notice{}, err
	}
	photos, committed, err := m.pipe.Commit(now)
	if err != nil {
		return PhotoSet{}, Notice{}, err
	}
	ms := m.ids.Next(now)
	set.ID = formatID(ms)
	set.Photos = photos
	set.CreatedAt = ms
	if err := m.coll.Append(set); err != nil {
		return PhotoSet{}, Notice{}, err
	}
	m.pipe.Release(committed)
	m.changed()
	return set, success(photoForms[m.form].saved), nil
}

// List returns the stored sets, newest first.
func (m *PhotoSetManager) List() ([]PhotoSet, error) {
	sets, err := m.coll.Get()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].CreatedAt > sets[j].CreatedAt
	})
	return sets, nil
}

// Delete removes a whole set, photos included. Nothing changes unless
// confirmed is true.
func (m *PhotoSetManager) Delete(id string, confirmed bool) (Notice, error) {
	if !confirmed {
		return Notice{}, ErrNotConfirmed
	}
	n, err := m.coll.Remove(func(s PhotoSet) bool { return s.ID == id })
	if err != nil {
		return Notice{}, err
	}
	if n == 0 {
		return Notice{}, ErrNotFound
	}
	m.changed()
	return success(photoForms[m.form].deleted), nil
}

// HomepageManager saves a homepage photo slot. Every save replaces the slot's
// previous photos entirely.
type HomepageManager struct {
	form    PhotoForm
	coll    *Collection[PhotoItem]
	pipe    *Pipeline
	now     func() time.Time
	changed func()
}

// Save commits the preview list and replaces the stored photos with it.
func (m *HomepageManager) Save() ([]PhotoItem, Notice, error) {
	photos, committed, err := m.pipe.Commit(m.now())
	if err != nil {
		return nil, Notice{}, err
	}
	if err := m.coll.ReplaceAll(photos); err != nil {
		return nil, Notice{}, err
	}
	m.pipe.Release(committed)
	m.changed()
	return photos, success(photoForms[m.form].saved), nil
}

// Photos returns the stored photos of the slot in order.
func (m *HomepageManager) Photos() ([]PhotoItem, error) {
	return m.coll.Get()
}

// CopyManager edits the text blocks of the home and about pages.
type CopyManager struct {
	store  *Store
	prefix string
}

func (m *CopyManager) value(key string) TextValue {
	return TextValue{store: m.store, key: m.prefix + key}
}

// SaveHome stores the hero title and quote. Empty fields keep their stored value.
func (m *CopyManager) SaveHome(title, quote string) (Notice, error) {
	title, quote = strings.TrimSpace(title), strings.TrimSpace(quote)
	if title == "" && quote == "" {
		return Notice{}, invalid("hero-title", "enter a title or a quote")
	}
	if title != "" {
		if err := m.value(KeyHeroTitle).Set(title); err != nil {
			return Notice{}, err
		}
	}
	if quote != "" {
		if err := m.value(KeyHeroQuote).Set(quote); err != nil {
			return Notice{}, err
		}
	}
	return success("Home page content updated successfully!"), nil
}

// Home returns the stored hero title and quote.
func (m *CopyManager) Home() (title, quote string, err error) {
	if title, err = m.value(KeyHeroTitle).Get(); err != nil {
		return "", "", err
	}
	quote, err = m.value(KeyHeroQuote).Get()
	return title, quote, err
}

// SaveAbout stores content for an about-page section.
func (m *CopyManager) SaveAbout(section, content string) (Notice, error) {
	slug := Slugify(section)
	if slug == "" {
		return Notice{}, invalid("about-section", "section is required")
	}
	if err := m.value(keyAboutPrefix + slug).Set(content); err != nil {
		return Notice{}, err
	}
	return success("About page content updated successfully!"), nil
}

// About returns the stored content of an about-page section.
func (m *CopyManager) About(section string) (string, error) {
	return m.value(keyAboutPrefix + Slugify(section)).Get()
}

func contains(vals []string, v string) bool {
	for _, s := range vals {
		if s == v {
			return true
		}
	}
	return false
}
