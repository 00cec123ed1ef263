package http

import (
	"log/slog"
	"net/http"
)

// Discovery is the full read surface over the catalog.
type Discovery interface {
	EventReader
	FacetLister
	CalendarReader
}

// Deps wires services into the router. EventCreator and Registrar stay nil
// without a remote store; their endpoints then answer 503.
type Deps struct {
	Discovery    Discovery
	Catalog      CatalogStatus
	Refresh      RefreshStatus
	EventCreator EventCreator
	Registrar    Registrar
	Reminders    Reminders
	Recommender  Recommender
	Notifier     Notifier
	Feed         FeedOptions
	CORSOrigins  []string
	Logger       *slog.Logger
}

// NewRouter builds the API handler including CORS and request logging.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/health", HandleHealth(d.Catalog, d.Refresh))
	mux.Handle("/events", HandleEvents(d.Discovery, d.EventCreator))
	mux.Handle("/events/", HandleEventResource(d.Discovery, d.Registrar))
	mux.Handle("/categories", HandleCategories(d.Discovery))
	mux.Handle("/cities", HandleCities(d.Discovery))
	mux.Handle("/calendar", HandleCalendarDay(d.Discovery))
	mux.Handle("/calendar/days", HandleCalendarDays(d.Discovery))
	mux.Handle("/calendar.ics", HandleCalendarFeed(d.Discovery, d.Feed))
	mux.Handle("/users/", HandleUserResource(d.Discovery, d.Registrar, d.Reminders))
	mux.Handle("/recommendations", HandleRecommendations(d.Recommender, d.Discovery.Location()))
	mux.Handle("/notifications", HandleNotifications(d.Notifier))
	mux.Handle("/", NotFoundHandler())

	return RequestLogger(CORS(d.CORSOrigins, mux), d.Logger)
}

// NotFoundHandler returns the JSON 404 envelope for unknown routes.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "no route for "+r.Method+" "+r.URL.Path)
	})
}
