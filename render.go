package sitedesk

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes templ components as an HTTP 200 HTML response.
func Render(c echo.Context, cmps ...templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmps...)
}

// RenderStatus writes templ components, in order, with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmps ...templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	for _, cmp := range cmps {
		if err := cmp.Render(c.Request().Context(), c.Response().Writer); err != nil {
			return err
		}
	}
	return nil
}
