// Package views holds the default templ components of the console.
package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/sitedesk"
)

// Default returns the console's built-in components.
func Default() sitedesk.ViewFuncs {
	return sitedesk.ViewFuncs{
		AdminLogin:     AdminLogin,
		Dashboard:      Dashboard,
		Notice:         Notice,
		Stats:          Stats,
		Updates:        Updates,
		Preview:        Preview,
		PhotoSets:      PhotoSets,
		HomepagePhotos: HomepagePhotos,
		ActivityTable:  ActivityTable,
		NotFound:       NotFound,
		ServerError:    ServerError,
	}
}

// html accumulates the first write error so components can emit markup
// without checking every call.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *html) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

func esc(s string) string { return templ.EscapeString(s) }

func itoa(n int) string { return strconv.Itoa(n) }
