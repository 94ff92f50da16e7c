package sitedesk

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

func (a *App) photoForm(c echo.Context) (PhotoForm, *Pipeline, error) {
	form, ok := ParsePhotoForm(c.Param("form"))
	if !ok {
		return "", nil, echo.NewHTTPError(http.StatusNotFound, "unknown photo form")
	}
	pipe, _ := a.Console.Pipeline(form)
	return form, pipe, nil
}

func (a *App) formView(form PhotoForm, rejected []Rejection) FormView {
	pipe, _ := a.Console.Pipeline(form)
	return FormView{
		Form:       form,
		Items:      pipe.Items(),
		CountLabel: pipe.CountLabel(),
		Rejected:   rejected,
	}
}

func (a *App) noticeComponents(notices []Notice) []templ.Component {
	var cmps []templ.Component
	for _, n := range notices {
		cmps = append(cmps, a.Views.Notice(n))
	}
	return cmps
}

func parseInputMode(s string) InputMode {
	if InputMode(strings.ToLower(strings.TrimSpace(s))) == ModeDrop {
		return ModeDrop
	}
	return ModeSelect
}

// handlePhotoFiles receives one file selection or drop, waits for every
// decode of the batch, and answers with the refreshed preview list.
func (a *App) handlePhotoFiles(c echo.Context) error {
	form, pipe, err := a.photoForm(c)
	if err != nil {
		return err
	}
	mf, err := c.MultipartForm()
	if err != nil {
		return a.renderFailure(c, ErrNoFiles)
	}
	ctx := c.Request().Context()
	files := mf.File["photos"]
	batch, err := pipe.Ingest(ctx, parseInputMode(c.FormValue("mode")), FromMultipart(files))
	if err != nil {
		if !IsUserError(err) {
			return err
		}
		var rejected []Rejection
		if batch != nil {
			rejected = batch.Rejected()
		}
		return RenderStatus(c, http.StatusUnprocessableEntity,
			a.Views.Notice(failure(noticeText(err))),
			a.Views.Preview(a.formView(form, rejected), CsrfToken(c)))
	}
	rejected, err := batch.Wait(ctx)
	if err != nil {
		return err
	}
	var notices []Notice
	if len(rejected) > 0 {
		notices = append(notices, failure(fmt.Sprintf("%d of %d files were not added", len(rejected), len(files))))
	}
	cmps := append(a.noticeComponents(notices), a.Views.Preview(a.formView(form, rejected), CsrfToken(c)))
	return Render(c, cmps...)
}

func (a *App) handlePhotoFileRemove(c echo.Context) error {
	form, pipe, err := a.photoForm(c)
	if err != nil {
		return err
	}
	if !pipe.Remove(c.Param("id")) {
		return a.renderFailure(c, ErrNotFound)
	}
	return Render(c, a.Views.Preview(a.formView(form, nil), CsrfToken(c)))
}

func (a *App) handlePhotoSubmit(c echo.Context) error {
	form, _, err := a.photoForm(c)
	if err != nil {
		return err
	}
	var notice Notice
	if form.IsHomepage() {
		var photos []PhotoItem
		photos, notice, err = a.Console.Homepage[form].Save()
		if err != nil {
			return a.renderFailure(c, err)
		}
		return Render(c,
			a.Views.Notice(notice),
			a.Views.Preview(a.formView(form, nil), CsrfToken(c)),
			a.Views.HomepagePhotos(form, photos))
	}

	in := PhotoSetInput{
		EventName:   c.FormValue("event-name"),
		EventDate:   c.FormValue("event-date"),
		ChapterType: c.FormValue("chapter-type"),
	}
	if form != FormEvent {
		year, err := strconv.Atoi(strings.TrimSpace(c.FormValue("year")))
		if err != nil {
			return a.renderFailure(c, invalid("year", "year is required"))
		}
		in.Year = year
	}
	mgr := a.Console.PhotoSets[form]
	if _, notice, err = mgr.Submit(in); err != nil {
		return a.renderFailure(c, err)
	}
	sets, err := mgr.List()
	if err != nil {
		return err
	}
	stats, _ := a.Console.Stats.Snapshot()
	return Render(c,
		a.Views.Notice(notice),
		a.Views.Preview(a.formView(form, nil), CsrfToken(c)),
		a.Views.PhotoSets(form, sets, CsrfToken(c)),
		a.Views.Stats(stats))
}

func (a *App) handlePhotoSetList(c echo.Context) error {
	form, _, err := a.photoForm(c)
	if err != nil {
		return err
	}
	if form.IsHomepage() {
		photos, err := a.Console.Homepage[form].Photos()
		if err != nil {
			return err
		}
		return Render(c, a.Views.HomepagePhotos(form, photos))
	}
	sets, err := a.Console.PhotoSets[form].List()
	if err != nil {
		return err
	}
	return Render(c, a.Views.PhotoSets(form, sets, CsrfToken(c)))
}

func (a *App) handlePhotoSetDelete(c echo.Context) error {
	form, _, err := a.photoForm(c)
	if err != nil {
		return err
	}
	if form.IsHomepage() {
		return echo.NewHTTPError(http.StatusMethodNotAllowed, "homepage photos are replaced, not deleted")
	}
	mgr := a.Console.PhotoSets[form]
	notice, err := mgr.Delete(c.Param("id"), isConfirmed(c.QueryParam("confirm")))
	if err != nil {
		return a.renderFailure(c, err)
	}
	sets, err := mgr.List()
	if err != nil {
		return err
	}
	stats, _ := a.Console.Stats.Snapshot()
	return Render(c,
		a.Views.Notice(notice),
		a.Views.PhotoSets(form, sets, CsrfToken(c)),
		a.Views.Stats(stats))
}
