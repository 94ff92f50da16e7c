package sitedesk

import "github.com/labstack/echo/v4"

func (a *App) handleLogins(c echo.Context) error {
	t, err := a.Console.Activity.Logins()
	if err != nil {
		return err
	}
	return Render(c, a.Views.ActivityTable("logins", t, ""))
}

func (a *App) handleRegistrations(c echo.Context) error {
	t, err := a.Console.Activity.Registrations()
	if err != nil {
		return err
	}
	return Render(c, a.Views.ActivityTable("registrations", t, ""))
}

// handleDonations re-filters and re-sorts on every toggle click.
func (a *App) handleDonations(c echo.Context) error {
	filter := ParseDonationFilter(c.QueryParam("filter"))
	t, err := a.Console.Activity.Donations(filter)
	if err != nil {
		return err
	}
	return Render(c, a.Views.ActivityTable("donations", t, filter))
}
