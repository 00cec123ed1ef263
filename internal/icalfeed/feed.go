// Package icalfeed renders the catalog as an iCalendar (RFC 5545) feed.
package icalfeed

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/cimillas/eventfinder/internal/domain"
)

const defaultProductID = "-//eventfinder//events feed//EN"

type Options struct {
	ProductID string
	Name      string
	// BaseURL prefixes detail links, e.g. https://events.example.com.
	BaseURL string
	// Stamp is written as DTSTAMP on every VEVENT.
	Stamp time.Time
}

// Render returns one VEVENT per event, in input order.
func Render(events []domain.Event, opts Options) string {
	if opts.ProductID == "" {
		opts.ProductID = defaultProductID
	}
	if opts.Stamp.IsZero() {
		opts.Stamp = time.Now()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(opts.ProductID)
	if opts.Name != "" {
		cal.SetName(opts.Name)
		cal.SetXWRCalName(opts.Name)
	}

	for _, e := range events {
		ve := cal.AddEvent(e.ID + "@eventfinder")
		ve.SetDtStampTime(opts.Stamp.UTC())
		ve.SetStartAt(e.StartsAt.UTC())
		if e.EndsAt != nil {
			ve.SetEndAt(e.EndsAt.UTC())
		}
		ve.SetSummary(e.Title)
		if loc := location(e); loc != "" {
			ve.SetLocation(loc)
		}
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Category != "" {
			ve.SetProperty(ical.ComponentPropertyCategories, e.Category)
		}
		if e.Organizer.Email != "" {
			ve.SetOrganizer("mailto:"+e.Organizer.Email, ical.WithCN(e.Organizer.Name))
		}
		if opts.BaseURL != "" {
			ve.SetURL(opts.BaseURL + "/events/" + e.ID)
		}
	}
	return cal.Serialize()
}

func location(e domain.Event) string {
	switch {
	case e.Location != "" && e.City != "":
		return e.Location + ", " + e.City
	case e.Location != "":
		return e.Location
	default:
		return e.City
	}
}
