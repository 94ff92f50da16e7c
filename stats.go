package sitedesk

import "encoding/json"

// Stats are the dashboard counters.
type Stats struct {
	Updates       int // announcements
	Events        int // event photo sets
	GalleryPhotos int // photos across gallery sets
	ReunionPhotos int // photos across reunion sets
	Users         int // registrations, raw count
	Donations     int // donations, raw count
}

// Aggregator recomputes Stats from the stored collections.
type Aggregator struct {
	updates   *Collection[Update]
	events    *Collection[PhotoSet]
	gallery   *Collection[PhotoSet]
	reunion   *Collection[PhotoSet]
	users     *Collection[json.RawMessage]
	donations *Collection[json.RawMessage]
}

// Aggregate reads every counted collection once.
func (a *Aggregator) Aggregate() (Stats, error) {
	var st Stats
	updates, err := a.updates.Get()
	if err != nil {
		return Stats{}, err
	}
	st.Updates = len(updates)

	events, err := a.events.Get()
	if err != nil {
		return Stats{}, err
	}
	st.Events = len(events)

	if st.GalleryPhotos, err = photoCount(a.gallery); err != nil {
		return Stats{}, err
	}
	if st.ReunionPhotos, err = photoCount(a.reunion); err != nil {
		return Stats{}, err
	}

	users, err := a.users.Get()
	if err != nil {
		return Stats{}, err
	}
	st.Users = len(users)

	donations, err := a.donations.Get()
	if err != nil {
		return Stats{}, err
	}
	st.Donations = len(donations)
	return st, nil
}

// photoCount sums the photo sequence lengths of every set in c.
func photoCount(c *Collection[PhotoSet]) (int, error) {
	sets, err := c.Get()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, s := range sets {
		total += len(s.Photos)
	}
	return total, nil
}
