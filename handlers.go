package sitedesk

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// renderFailure answers a failed console action. Operator mistakes become an
// error notice; anything else goes to the HTTP error handler.
func (a *App) renderFailure(c echo.Context, err error) error {
	if !IsUserError(err) {
		return err
	}
	code := http.StatusUnprocessableEntity
	if errors.Is(err, ErrNotFound) {
		code = http.StatusNotFound
	}
	return RenderStatus(c, code, a.Views.Notice(failure(noticeText(err))))
}

func noticeText(err error) string {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, ErrNoFiles):
		return "Please select at least one file"
	case errors.Is(err, ErrNoImages):
		return "Please select image files only"
	case errors.Is(err, ErrNoPhotos):
		return "Please upload at least one photo"
	case errors.Is(err, ErrNotConfirmed):
		return "Deletion must be confirmed"
	case errors.Is(err, ErrNotFound):
		return "Record not found"
	}
	return err.Error()
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound && a.Views.NotFound != nil {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		if a.Views.ServerError != nil {
			_ = RenderStatus(c, code, a.Views.ServerError())
			return
		}
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
