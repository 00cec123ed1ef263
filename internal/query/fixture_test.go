package query

import (
	"time"

	"github.com/cimillas/eventfinder/internal/domain"
)

var sast = time.FixedZone("SAST", 2*60*60)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.March, day, hour, minute, 0, 0, sast)
}

// fixtureEvents is a literal 20-event listing. Wednesday 2025-03-05 is the reference "now".
func fixtureEvents() []domain.Event {
	return []domain.Event{
		{ID: "1", Title: "Jazz on the Rooftop", ShortDescription: "Sunset jazz with city views.", StartsAt: at(8, 18, 0), Location: "Rooftop Bar", City: "Cape Town", Category: "Music", Price: "R80"},
		{ID: "2", Title: "Symphony Night", ShortDescription: "The philharmonic plays Dvorak.", StartsAt: at(6, 19, 0), Location: "City Hall", City: "Cape Town", Category: "Music", Price: "R150"},
		{ID: "3", Title: "Open Mic Sunday", ShortDescription: "Local songwriters share new work.", StartsAt: at(9, 12, 0), Location: "The Waiting Room", City: "Cape Town", Category: "Music", Price: domain.FreePrice},
		{ID: "4", Title: "Kwaito Classics", ShortDescription: "A night of nineties hits.", StartsAt: at(5, 20, 0), Location: "Kitchener's", City: "Johannesburg", Category: "Music", Price: "R50"},
		{ID: "5", Title: "Dev Meetup", ShortDescription: "Lightning talks on Go.", StartsAt: at(5, 9, 0), Location: "Workshop17", City: "Cape Town", Category: "Technology", Price: "R20"},
		{ID: "6", Title: "Acoustic Friday", ShortDescription: "Unplugged sets from three bands.", StartsAt: at(7, 23, 0), Location: "Café Roux", City: "cape town", Category: "Music", Price: "R100"},
		{ID: "7", Title: "Secret Gig", ShortDescription: "Lineup announced on the night.", StartsAt: at(10, 18, 0), Location: "TBA", City: "Cape Town", Category: "Music"},
		{ID: "8", Title: "Mystery Orchestra", ShortDescription: "Pricing to be confirmed.", StartsAt: at(11, 18, 0), Location: "Artscape", City: "Cape Town", Category: "Music", Price: "TBA"},
		{ID: "9", Title: "Sculpture Walk", ShortDescription: "Guided tour of the beachfront sculptures.", StartsAt: at(12, 10, 0), Location: "Golden Mile", City: "Durban", Category: "Art", Price: "R200"},
		{ID: "10", Title: "Bay Harbour Market", ShortDescription: "Crafts, food and live music.", StartsAt: at(8, 8, 0), Location: "Hout Bay Harbour", City: "Cape Town", Category: "Food Market", Price: domain.FreePrice},
		{ID: "11", Title: "Durban Beach Concert", ShortDescription: "Free concert on the sand.", StartsAt: at(15, 17, 0), Location: "North Beach", City: "Durban", Category: "Music", Price: domain.FreePrice},
		{ID: "12", Title: "Midnight Surf Session", ShortDescription: "Night surfing under floodlights.", StartsAt: time.Date(2025, time.March, 8, 23, 30, 0, 0, time.UTC), Location: "Surfers Corner", City: "Durban", Category: "Sports", Price: "R120"},
		{ID: "13", Title: "Founders Breakfast", ShortDescription: "Networking for startup founders.", StartsAt: at(4, 7, 30), Location: "Menlyn Maine", City: "Pretoria", Category: "Business", Price: "R150"},
		{ID: "14", Title: "Blues Brothers Tribute", ShortDescription: "Costumes encouraged.", StartsAt: at(20, 20, 0), Location: "Baxter Theatre", City: "Cape Town", Category: "Music", Price: "R100.01"},
		{ID: "15", Title: "Winelands Market", ShortDescription: "Cheese, wine and bread.", StartsAt: at(22, 13, 0), Location: "Spier", City: "Stellenbosch", Category: "Food Market", Price: "R180"},
		{ID: "16", Title: "Township Jazz Sessions", ShortDescription: "Live jazz in Gugulethu.", StartsAt: at(16, 15, 0), Location: "Kaya FM Lounge", City: "Cape Town", Category: "Music", Price: "R 99.99"},
		{ID: "17", Title: "Stand-up Showcase", ShortDescription: "Five comics, one mic.", StartsAt: at(9, 20, 0), Location: "Cape Town Comedy Club", City: "Cape Town", Category: "Comedy", Price: "R90"},
		{ID: "18", Title: "AI Summit", ShortDescription: "Applied machine learning in Africa.", StartsAt: time.Date(2025, time.April, 2, 9, 0, 0, 0, sast), Location: "Sandton Convention Centre", City: "Johannesburg", Category: "Technology", Price: "R1500"},
		{ID: "19", Title: "Gallery First Thursday", ShortDescription: "Open studios across the CBD.", StartsAt: at(1, 10, 0), Location: "Bree Street", City: "Cape Town", Category: "Art", Price: domain.FreePrice},
		{ID: "20", Title: "Marimba Afternoon", ShortDescription: "Marimba bands in the park.", StartsAt: at(2, 14, 0), Location: "Union Buildings Gardens", City: "Pretoria", Category: "Music", Price: "R60"},
	}
}

// referenceNow is Wednesday 2025-03-05, midday in Cape Town.
var referenceNow = at(5, 12, 0)

func ids(events []domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func ptr(v float64) *float64 { return &v }
