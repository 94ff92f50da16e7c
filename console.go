package sitedesk

import (
	"encoding/json"
	"time"

	"github.com/labstack/gommon/log"
)

// ConsoleOptions tunes a Console. Zero values select the defaults.
type ConsoleOptions struct {
	KeyPrefix    string           // prepended to every store key
	Now          func() time.Time // clock, time.Now by default
	Decode       DecodeFunc       // image decoder, DecodeImage by default
	Logger       Logger
	FirstYear    int      // earliest selectable year, FirstYear by default
	ChapterTypes []string // allowed chapter types; empty accepts any
	Format       *Formatter
}

// Console is the application context: the store, its collections, the photo
// pipelines and the managers built on them. Handlers reach everything
// through it.
type Console struct {
	Store     *Store
	Updates   *UpdateManager
	PhotoSets map[PhotoForm]*PhotoSetManager
	Homepage  map[PhotoForm]*HomepageManager
	Copy      *CopyManager
	Stats     *StatsCache
	Activity  *Activity

	now          func() time.Time
	firstYear    int
	chapterTypes []string
	pipelines    map[PhotoForm]*Pipeline
}

// NewConsole wires every component over s.
func NewConsole(s *Store, opts ConsoleOptions) *Console {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New("sitedesk")
	}
	if opts.FirstYear == 0 {
		opts.FirstYear = FirstYear
	}
	if opts.Format == nil {
		f, _ := NewFormatter("en-IN", "₹", time.UTC)
		opts.Format = &f
	}
	key := func(k string) string { return opts.KeyPrefix + k }
	ids := &IDSource{}
	raw := func(k string) *Collection[json.RawMessage] {
		return NewCollection[json.RawMessage](s, key(k), opts.Logger)
	}

	c := &Console{
		Store:        s,
		PhotoSets:    make(map[PhotoForm]*PhotoSetManager),
		Homepage:     make(map[PhotoForm]*HomepageManager),
		Copy:         &CopyManager{store: s, prefix: opts.KeyPrefix},
		now:          opts.Now,
		firstYear:    opts.FirstYear,
		chapterTypes: opts.ChapterTypes,
		pipelines:    make(map[PhotoForm]*Pipeline),
	}
	changed := func() { _ = c.Stats.Refresh() }

	updates := NewCollection[Update](s, key(KeyUpdates), opts.Logger)
	c.Updates = &UpdateManager{coll: updates, ids: ids, now: opts.Now, changed: changed}

	sets := make(map[PhotoForm]*Collection[PhotoSet])
	for _, form := range PhotoForms {
		def := photoForms[form]
		pipe := NewPipeline(def.label, opts.Decode, ids)
		c.pipelines[form] = pipe
		if def.homepage {
			c.Homepage[form] = &HomepageManager{
				form:    form,
				coll:    NewCollection[PhotoItem](s, key(def.key), opts.Logger),
				pipe:    pipe,
				now:     opts.Now,
				changed: changed,
			}
			continue
		}
		sets[form] = NewCollection[PhotoSet](s, key(def.key), opts.Logger)
		c.PhotoSets[form] = &PhotoSetManager{
			form:         form,
			coll:         sets[form],
			pipe:         pipe,
			ids:          ids,
			now:          opts.Now,
			firstYear:    opts.FirstYear,
			chapterTypes: opts.ChapterTypes,
			changed:      changed,
		}
	}

	c.Stats = NewStatsCache(&Aggregator{
		updates:   updates,
		events:    sets[FormEvent],
		gallery:   sets[FormGallery],
		reunion:   sets[FormReunion],
		users:     raw(KeyUsers),
		donations: raw(KeyDonations),
	}, opts.Logger)

	c.Activity = &Activity{
		logins:    raw(KeyUserLogins),
		users:     raw(KeyUsers),
		donations: raw(KeyDonations),
		format:    *opts.Format,
		log:       opts.Logger,
	}
	_ = c.Stats.Refresh()
	return c
}

// Pipeline returns the preview pipeline of form.
func (c *Console) Pipeline(form PhotoForm) (*Pipeline, bool) {
	p, ok := c.pipelines[form]
	return p, ok
}

// YearOptions returns the years offered by the year selectors today.
func (c *Console) YearOptions() []int {
	return YearOptions(c.now(), c.firstYear)
}

// ChapterTypes returns the configured chapter categories.
func (c *Console) ChapterTypes() []string {
	return c.chapterTypes
}
