package views

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/eringen/sitedesk"
)

// Fragments carry an id matching their slot on the dashboard; the console
// script swaps every id'd element of a response into place.

// Notice renders a banner. The script moves it into the notice area.
func Notice(n sitedesk.Notice) templ.Component {
	return component(func(h *html) {
		class := "notice rounded border px-4 py-3 text-sm border-emerald-600 bg-emerald-50 text-emerald-900"
		if n.Kind == sitedesk.NoticeError {
			class = "notice rounded border px-4 py-3 text-sm border-red-600 bg-red-50 text-red-900"
		}
		h.raw(`<div data-notice role="status" class="`, class, `">`)
		h.text(n.Message)
		h.raw(`</div>`)
	})
}

// Stats renders the counter cards.
func Stats(st sitedesk.Stats) templ.Component {
	cards := []struct {
		label string
		value int
	}{
		{"Updates", st.Updates},
		{"Events", st.Events},
		{"Gallery photos", st.GalleryPhotos},
		{"Reunion photos", st.ReunionPhotos},
		{"Registered users", st.Users},
		{"Donations", st.Donations},
	}
	return component(func(h *html) {
		h.raw(`<section id="stats" class="grid grid-cols-2 md:grid-cols-6 gap-3">`)
		for _, c := range cards {
			h.raw(`<div class="rounded border border-ink p-3"><p class="text-[11px] uppercase tracking-[0.12em]">`)
			h.text(c.label)
			h.raw(`</p><p class="text-2xl font-semibold">`, itoa(c.value), `</p></div>`)
		}
		h.raw(`</section>`)
	})
}

// Updates renders the announcement list, newest first.
func Updates(updates []sitedesk.Update, csrfToken string) templ.Component {
	return component(func(h *html) {
		h.raw(`<ul id="updates" class="divide-y">`)
		if len(updates) == 0 {
			h.raw(`<li class="py-3 text-sm text-stone-500">No updates yet</li>`)
		}
		for _, u := range updates {
			h.raw(`<li class="py-3 flex justify-between gap-4"><div><p class="font-semibold">`)
			h.text(u.Title)
			h.raw(`</p><p class="text-xs text-stone-500">`)
			h.text(u.Date)
			h.raw(`</p><p class="text-sm">`)
			h.text(u.Content)
			h.raw(`</p></div>`)
			deleteButton(h, sitedesk.BuildURL("/admin", "updates", u.ID), "Delete this update?", csrfToken)
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
	})
}

func deleteButton(h *html, url, prompt, csrfToken string) {
	h.raw(`<button type="button" class="text-sm text-red-700 hover:underline" data-delete="`, esc(url),
		`" data-confirm="`, esc(prompt), `" data-csrf="`, esc(csrfToken), `">Delete</button>`)
}

// Preview renders the preview list and counter of one photo form.
func Preview(v sitedesk.FormView, csrfToken string) templ.Component {
	return component(func(h *html) {
		h.raw(`<div id="preview-`, esc(string(v.Form)), `">`)
		h.raw(`<p class="text-sm font-semibold" data-count>`)
		h.text(v.CountLabel)
		h.raw(`</p><ul class="grid grid-cols-3 md:grid-cols-6 gap-2">`)
		for _, it := range v.Items {
			h.raw(`<li class="relative rounded border p-1">`)
			if it.Pending {
				h.raw(`<div class="h-24 flex items-center justify-center text-xs">Processing…</div>`)
			} else {
				src := it.Thumbnail
				if src == "" {
					src = it.URL
				}
				h.raw(`<img class="h-24 w-full object-cover" src="`, esc(src), `" alt="`, esc(it.Name), `">`)
			}
			h.raw(`<button type="button" class="absolute top-1 right-1 rounded bg-white px-1 text-xs" title="Remove" data-delete="`,
				esc(sitedesk.BuildURL("/admin", "photos", string(v.Form), "files", it.ID)),
				`" data-csrf="`, esc(csrfToken), `">&times;</button></li>`)
		}
		h.raw(`</ul>`)
		if len(v.Rejected) > 0 {
			h.raw(`<ul class="mt-2 text-xs text-red-800">`)
			for _, r := range v.Rejected {
				h.raw(`<li>`)
				h.text(r.Name + ": " + r.Reason)
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</div>`)
	})
}

func setTitle(form sitedesk.PhotoForm, s sitedesk.PhotoSet) string {
	switch form {
	case sitedesk.FormEvent:
		return s.EventName + " (" + s.EventDate + ")"
	case sitedesk.FormChapter:
		return fmt.Sprintf("%s %d", s.ChapterType, s.Year)
	}
	return itoa(s.Year)
}

// PhotoSets renders the stored sets of an append-only photo form.
func PhotoSets(form sitedesk.PhotoForm, sets []sitedesk.PhotoSet, csrfToken string) templ.Component {
	return component(func(h *html) {
		h.raw(`<div id="sets-`, esc(string(form)), `" class="space-y-3">`)
		if len(sets) == 0 {
			h.raw(`<p class="text-sm text-stone-500">No photos uploaded yet</p>`)
		}
		for _, s := range sets {
			h.raw(`<div class="rounded border p-2"><div class="flex justify-between"><p class="font-semibold">`)
			h.text(setTitle(form, s))
			h.raw(` <span class="text-xs text-stone-500">`)
			h.text(fmt.Sprintf("%d photos", len(s.Photos)))
			h.raw(`</span></p>`)
			deleteButton(h, sitedesk.BuildURL("/admin", "photos", string(form), "sets", s.ID), "Delete this set and all its photos?", csrfToken)
			h.raw(`</div>`)
			photoGrid(h, s.Photos)
			h.raw(`</div>`)
		}
		h.raw(`</div>`)
	})
}

// HomepagePhotos renders the current photos of a homepage slot.
func HomepagePhotos(form sitedesk.PhotoForm, photos []sitedesk.PhotoItem) templ.Component {
	return component(func(h *html) {
		h.raw(`<div id="sets-`, esc(string(form)), `">`)
		if len(photos) == 0 {
			h.raw(`<p class="text-sm text-stone-500">No photos set</p>`)
		}
		photoGrid(h, photos)
		h.raw(`</div>`)
	})
}

func photoGrid(h *html, photos []sitedesk.PhotoItem) {
	h.raw(`<ul class="grid grid-cols-4 md:grid-cols-8 gap-1">`)
	for _, p := range photos {
		h.raw(`<li><img class="h-16 w-full object-cover" loading="lazy" src="`, esc(p.URL), `" alt="`, esc(p.Name), `"></li>`)
	}
	h.raw(`</ul>`)
}

// ActivityTable renders a read-only activity listing. Donations get the
// category toggles, with filter marked active.
func ActivityTable(name string, t sitedesk.Table, filter sitedesk.DonationFilter) templ.Component {
	return component(func(h *html) {
		h.raw(`<div id="activity-`, esc(name), `">`)
		if name == "donations" {
			h.raw(`<nav class="mb-2 flex gap-2">`)
			for _, f := range sitedesk.DonationFilters {
				h.raw(`<button type="button" class="`, filterClass(f == filter), `" data-load="/admin/activity/donations/?filter=`,
					esc(string(f)), `">`)
				h.text(filterLabel(f))
				h.raw(`</button>`)
			}
			h.raw(`</nav>`)
		}
		h.raw(`<table class="w-full text-sm"><thead><tr>`)
		for _, col := range t.Columns {
			h.raw(`<th class="text-left">`)
			h.text(col)
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		if t.Empty != nil {
			h.raw(`<tr><td class="py-6 text-center" colspan="`, itoa(len(t.Columns)), `"><p class="font-semibold">`)
			h.text(t.Empty.Title)
			h.raw(`</p><p class="text-xs text-stone-500">`)
			h.text(t.Empty.Hint)
			h.raw(`</p></td></tr>`)
		}
		for _, row := range t.Rows {
			h.raw(`<tr>`)
			for _, c := range row {
				h.raw(`<td>`)
				if c.Badge != "" {
					h.raw(`<span class="badge badge-`, esc(c.Badge), `">`)
					h.text(c.Text)
					h.raw(`</span>`)
				} else {
					h.text(c.Text)
				}
				h.raw(`</td>`)
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table>`)
		if t.Skipped > 0 {
			h.raw(`<p class="mt-1 text-xs text-stone-500">`)
			h.text(fmt.Sprintf("%d malformed records hidden", t.Skipped))
			h.raw(`</p>`)
		}
		h.raw(`</div>`)
	})
}

func filterLabel(f sitedesk.DonationFilter) string {
	switch f {
	case sitedesk.FilterNSM:
		return "NSM Student/Alumni"
	case sitedesk.FilterGeneral:
		return "General Public"
	}
	return "All"
}

func filterClass(active bool) string {
	base := "rounded border border-ink px-2.5 py-1 text-[11px] font-semibold uppercase tracking-[0.12em]"
	if active {
		base += " bg-ink text-white"
	}
	return base
}
