package http

import (
	"net/http"
	"testing"
)

func TestHandleFacets(t *testing.T) {
	t.Parallel()

	svc, _ := newTestDiscovery(t)

	var cats facetResponse
	decodeBody(t, serve(HandleCategories(svc), http.MethodGet, "/categories", ""), &cats)
	if !sameIDs(cats.Values, []string{"Music", "Food & Drink", "Technology"}) {
		t.Fatalf("unexpected categories %v", cats.Values)
	}

	var cities facetResponse
	decodeBody(t, serve(HandleCities(svc), http.MethodGet, "/cities", ""), &cities)
	if !sameIDs(cities.Values, []string{"Cape Town", "Johannesburg"}) {
		t.Fatalf("unexpected cities %v", cities.Values)
	}

	expectError(t, serve(HandleCities(svc), http.MethodPost, "/cities", ""), http.StatusMethodNotAllowed, codeMethodNotAllowed)
}
