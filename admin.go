package sitedesk

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !a.IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	data, err := a.dashboardData()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Dashboard(data, CsrfToken(c)))
}

func (a *App) dashboardData() (DashboardData, error) {
	con := a.Console
	updates, err := con.Updates.List()
	if err != nil {
		return DashboardData{}, err
	}
	title, quote, err := con.Copy.Home()
	if err != nil {
		return DashboardData{}, err
	}
	stats, _ := con.Stats.Snapshot()
	data := DashboardData{
		SiteName:     a.Config.Name,
		Stats:        stats,
		Updates:      updates,
		Years:        con.YearOptions(),
		ChapterTypes: con.ChapterTypes(),
		HeroTitle:    title,
		HeroQuote:    quote,
	}
	for _, form := range PhotoForms {
		data.Forms = append(data.Forms, a.formView(form, nil))
	}
	return data, nil
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		a.loginLimiter.Reset(ip)
		if err := a.setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleStats(c echo.Context) error {
	stats, _ := a.Console.Stats.Snapshot()
	return Render(c, a.Views.Stats(stats))
}

func (a *App) handleUpdateList(c echo.Context) error {
	return a.renderUpdates(c)
}

func (a *App) handleUpdateAdd(c echo.Context) error {
	_, notice, err := a.Console.Updates.Add(UpdateInput{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
		Date:    c.FormValue("date"),
	})
	if err != nil {
		return a.renderFailure(c, err)
	}
	return a.renderUpdates(c, notice)
}

func (a *App) handleUpdateDelete(c echo.Context) error {
	notice, err := a.Console.Updates.Delete(c.Param("id"), isConfirmed(c.QueryParam("confirm")))
	if err != nil {
		return a.renderFailure(c, err)
	}
	return a.renderUpdates(c, notice)
}

func (a *App) renderUpdates(c echo.Context, notices ...Notice) error {
	updates, err := a.Console.Updates.List()
	if err != nil {
		return err
	}
	cmps := a.noticeComponents(notices)
	stats, _ := a.Console.Stats.Snapshot()
	cmps = append(cmps, a.Views.Updates(updates, CsrfToken(c)), a.Views.Stats(stats))
	return Render(c, cmps...)
}

func (a *App) handleHomeContent(c echo.Context) error {
	notice, err := a.Console.Copy.SaveHome(c.FormValue("hero-title"), c.FormValue("hero-quote"))
	if err != nil {
		return a.renderFailure(c, err)
	}
	return Render(c, a.Views.Notice(notice))
}

func (a *App) handleAboutContent(c echo.Context) error {
	notice, err := a.Console.Copy.SaveAbout(c.FormValue("about-section"), c.FormValue("about-content"))
	if err != nil {
		return a.renderFailure(c, err)
	}
	return Render(c, a.Views.Notice(notice))
}
