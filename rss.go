package sitedesk

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// buildFeed turns announcements, newest first, into an RSS document.
func (a *App) buildFeed(updates []Update) rssXML {
	base := a.Config.URL
	items := make([]rssItem, 0, len(updates))
	for _, u := range updates {
		pubDate := ""
		if t, err := time.Parse(dateLayout, u.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		link := BuildURL(base, "updates", u.ID)
		items = append(items, rssItem{
			Title:       u.Title,
			Link:        link,
			Description: u.Content,
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	return rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Name + " announcements",
			Items:       items,
		},
	}
}

func (a *App) handleFeed(c echo.Context) error {
	updates, err := a.Console.Updates.List()
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(a.buildFeed(updates))
}
