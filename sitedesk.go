// Package sitedesk is the content-management console of a community
// association site. It persists announcements, photo sets and homepage media
// as JSON collections in a SQLite key-value store, ingests photo uploads
// through a concurrent decode pipeline, and projects the externally written
// registration, donation and login logs into read-only tables.
//
// Users provide their own templ components via the ViewFuncs struct, and
// sitedesk handles the handler logic, middleware, and persistence.
package sitedesk

import (
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// FormView is the state of one photo form: its preview list and counter.
type FormView struct {
	Form       PhotoForm
	Items      []PreviewItem
	CountLabel string
	Rejected   []Rejection
}

// DashboardData is everything the dashboard page shows.
type DashboardData struct {
	SiteName     string
	Stats        Stats
	Updates      []Update
	Forms        []FormView
	Years        []int
	ChapterTypes []string
	HeroTitle    string
	HeroQuote    string
}

// ViewFuncs holds the templ components the handlers render.
type ViewFuncs struct {
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	Dashboard      func(data DashboardData, csrfToken string) templ.Component
	Notice         func(n Notice) templ.Component
	Stats          func(st Stats) templ.Component
	Updates        func(updates []Update, csrfToken string) templ.Component
	Preview        func(v FormView, csrfToken string) templ.Component
	PhotoSets      func(form PhotoForm, sets []PhotoSet, csrfToken string) templ.Component
	HomepagePhotos func(form PhotoForm, photos []PhotoItem) templ.Component
	ActivityTable  func(name string, t Table, filter DonationFilter) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the console server. It wires together the store, the console
// components, handlers, middleware, and user-provided templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Console *Console
	Views   ViewFuncs

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	decode       DecodeFunc
	now          func() time.Time
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the store, builds the console, and registers middleware and
// routes. Start calls it; tests may call it directly and drive a.Echo.
func (a *App) Init() error {
	if err := a.Config.validate(); err != nil {
		return err
	}

	loc, err := time.LoadLocation(a.Config.Timezone)
	if err != nil {
		return fmt.Errorf("sitedesk: timezone: %w", err)
	}
	format, err := NewFormatter(a.Config.Locale, a.Config.CurrencySymbol, loc)
	if err != nil {
		return fmt.Errorf("sitedesk: %w", err)
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("sitedesk: init store: %w", err)
	}
	a.Store = store

	a.Console = NewConsole(store, ConsoleOptions{
		KeyPrefix:    a.Config.KeyPrefix,
		Now:          a.now,
		Decode:       a.decode,
		Logger:       a.Echo.Logger,
		FirstYear:    a.Config.FirstYear,
		ChapterTypes: a.Config.ChapterTypes,
		Format:       &format,
	})

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and starts the server.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/feed.xml", a.handleFeed)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)

	g := e.Group("/admin", a.requireAdmin)
	g.GET("/stats/", a.handleStats)

	g.GET("/updates/", a.handleUpdateList)
	g.POST("/updates/", a.handleUpdateAdd)
	g.DELETE("/updates/:id/", a.handleUpdateDelete)

	g.POST("/photos/:form/files/", a.handlePhotoFiles)
	g.DELETE("/photos/:form/files/:id/", a.handlePhotoFileRemove)
	g.POST("/photos/:form/", a.handlePhotoSubmit)
	g.GET("/photos/:form/sets/", a.handlePhotoSetList)
	g.DELETE("/photos/:form/sets/:id/", a.handlePhotoSetDelete)

	g.POST("/content/home/", a.handleHomeContent)
	g.POST("/content/about/", a.handleAboutContent)

	g.GET("/activity/logins/", a.handleLogins)
	g.GET("/activity/registrations/", a.handleRegistrations)
	g.GET("/activity/donations/", a.handleDonations)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
