package views

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/sitedesk"
)

var formTitles = map[sitedesk.PhotoForm]string{
	sitedesk.FormEvent:       "Event photos",
	sitedesk.FormGallery:     "Gallery",
	sitedesk.FormChapter:     "Chapters",
	sitedesk.FormReunion:     "Reunions",
	sitedesk.FormMiddleBox:   "Homepage middle box",
	sitedesk.FormHomeGallery: "Homepage gallery",
}

func page(h *html, title, csrfToken string, body func()) {
	h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
		`<meta name="viewport" content="width=device-width, initial-scale=1">`,
		`<meta name="robots" content="noindex">`,
		`<meta name="csrf-token" content="`, esc(csrfToken), `"><title>`)
	h.text(title)
	h.raw(`</title></head><body class="bg-stone-50 text-ink"><main class="mx-auto max-w-6xl p-6 space-y-8">`)
	body()
	h.raw(`</main><script>`, consoleScript, `</script></body></html>`)
}

func hiddenCSRF(h *html, csrfToken string) {
	h.raw(`<input type="hidden" name="_csrf" value="`, esc(csrfToken), `">`)
}

// AdminLogin renders the password form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return component(func(h *html) {
		page(h, "Admin login", csrfToken, func() {
			h.raw(`<form method="post" action="/admin/login/" class="mx-auto max-w-sm space-y-3">`)
			hiddenCSRF(h, csrfToken)
			h.raw(`<h1 class="text-xl font-semibold">Admin login</h1>`)
			if showError {
				h.raw(`<p class="text-sm text-red-700">Invalid password</p>`)
			}
			h.raw(`<input type="password" name="password" required autofocus class="w-full rounded border px-3 py-2">`,
				`<button type="submit" class="rounded bg-ink px-4 py-2 text-white">Log in</button></form>`)
		})
	})
}

// Dashboard renders the full console page.
func Dashboard(d sitedesk.DashboardData, csrfToken string) templ.Component {
	return component(func(h *html) {
		page(h, d.SiteName+" admin", csrfToken, func() {
			h.raw(`<header class="flex items-center justify-between"><h1 class="text-2xl font-semibold">`)
			h.text(d.SiteName)
			h.raw(`</h1><form method="post" action="/admin/logout/">`)
			hiddenCSRF(h, csrfToken)
			h.raw(`<button type="submit" class="text-sm hover:underline">Log out</button></form></header>`)
			h.raw(`<div id="notices" class="space-y-2" aria-live="polite"></div>`)
			renderInto(h, Stats(d.Stats))

			updatesSection(h, d, csrfToken)
			for _, v := range d.Forms {
				photoSection(h, d, v, csrfToken)
			}
			contentSection(h, d, csrfToken)
			for _, name := range []string{"registrations", "donations", "logins"} {
				h.raw(`<section class="space-y-2"><h2 class="text-lg font-semibold">`)
				h.text(strings.ToUpper(name[:1]) + name[1:])
				h.raw(`</h2><div id="activity-`, name, `" data-autoload="/admin/activity/`, name, `/">Loading…</div></section>`)
			}
		})
	})
}

// renderInto emits a component inline, recording its error on h.
func renderInto(h *html, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func updatesSection(h *html, d sitedesk.DashboardData, csrfToken string) {
	h.raw(`<section class="space-y-3"><h2 class="text-lg font-semibold">Updates</h2>`,
		`<form method="post" action="/admin/updates/" data-fragment data-reset class="grid gap-2">`)
	hiddenCSRF(h, csrfToken)
	h.raw(`<input name="title" placeholder="Title" required class="rounded border px-3 py-2">`,
		`<textarea name="content" rows="3" placeholder="Content" class="rounded border px-3 py-2"></textarea>`,
		`<input type="date" name="date" class="rounded border px-3 py-2">`,
		`<button type="submit" class="justify-self-start rounded bg-ink px-4 py-2 text-white">Add update</button></form>`)
	renderInto(h, Updates(d.Updates, csrfToken))
	h.raw(`</section>`)
}

func photoSection(h *html, d sitedesk.DashboardData, v sitedesk.FormView, csrfToken string) {
	form := string(v.Form)
	base := sitedesk.BuildURL("/admin", "photos", form)
	files := sitedesk.BuildURL("/admin", "photos", form, "files")

	h.raw(`<section class="space-y-3"><h2 class="text-lg font-semibold">`)
	h.text(formTitles[v.Form])
	h.raw(`</h2><form method="post" action="`, esc(base), `" data-fragment class="grid gap-2">`)
	hiddenCSRF(h, csrfToken)

	switch v.Form {
	case sitedesk.FormEvent:
		h.raw(`<input name="event-name" placeholder="Event name" required class="rounded border px-3 py-2">`,
			`<input type="date" name="event-date" required class="rounded border px-3 py-2">`)
	case sitedesk.FormChapter:
		h.raw(`<select name="chapter-type" required class="rounded border px-3 py-2"><option value="">Chapter type</option>`)
		for _, ct := range d.ChapterTypes {
			h.raw(`<option value="`, esc(ct), `">`)
			h.text(ct)
			h.raw(`</option>`)
		}
		h.raw(`</select>`)
	}
	if !v.Form.IsHomepage() && v.Form != sitedesk.FormEvent {
		h.raw(`<select name="year" required class="rounded border px-3 py-2"><option value="">Year</option>`)
		for _, y := range d.Years {
			h.raw(`<option value="`, itoa(y), `">`, itoa(y), `</option>`)
		}
		h.raw(`</select>`)
	}

	h.raw(`<label data-upload="`, esc(files), `" data-csrf="`, esc(csrfToken),
		`" class="block rounded border border-dashed p-6 text-center text-sm">Drop photos here or choose files`,
		`<input type="file" accept="image/*" multiple class="sr-only" data-upload="`, esc(files),
		`" data-csrf="`, esc(csrfToken), `"></label>`)
	renderInto(h, Preview(v, csrfToken))

	label := "Upload photos"
	if v.Form.IsHomepage() {
		label = "Save photos"
	}
	h.raw(`<button type="submit" class="justify-self-start rounded bg-ink px-4 py-2 text-white">`, label, `</button></form>`)
	h.raw(`<div id="sets-`, esc(form), `" data-autoload="`, esc(sitedesk.BuildURL(base, "sets")), `"></div></section>`)
}

func contentSection(h *html, d sitedesk.DashboardData, csrfToken string) {
	h.raw(`<section class="space-y-3"><h2 class="text-lg font-semibold">Page content</h2>`,
		`<form method="post" action="/admin/content/home/" data-fragment class="grid gap-2">`)
	hiddenCSRF(h, csrfToken)
	h.raw(`<input name="hero-title" placeholder="Hero title" value="`, esc(d.HeroTitle), `" class="rounded border px-3 py-2">`,
		`<textarea name="hero-quote" rows="2" placeholder="Hero quote" class="rounded border px-3 py-2">`)
	h.text(d.HeroQuote)
	h.raw(`</textarea><button type="submit" class="justify-self-start rounded bg-ink px-4 py-2 text-white">Save home page</button></form>`,
		`<form method="post" action="/admin/content/about/" data-fragment class="grid gap-2">`)
	hiddenCSRF(h, csrfToken)
	h.raw(`<input name="about-section" placeholder="Section (e.g. history)" required class="rounded border px-3 py-2">`,
		`<textarea name="about-content" rows="4" placeholder="Content" class="rounded border px-3 py-2"></textarea>`,
		`<button type="submit" class="justify-self-start rounded bg-ink px-4 py-2 text-white">Save about section</button></form></section>`)
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return component(func(h *html) {
		page(h, "Not found", "", func() {
			h.raw(`<h1 class="text-xl font-semibold">Page not found</h1><p><a href="/admin/" class="underline">Back to the console</a></p>`)
		})
	})
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return component(func(h *html) {
		page(h, "Error", "", func() {
			h.raw(`<h1 class="text-xl font-semibold">Something went wrong</h1><p>Please try again.</p>`)
		})
	})
}
