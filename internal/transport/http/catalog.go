package http

import "net/http"

// FacetLister lists the distinct filter values present in the catalog.
type FacetLister interface {
	Categories() []string
	Cities() []string
}

type facetResponse struct {
	Values []string `json:"values"`
}

// HandleCategories serves GET /categories.
func HandleCategories(svc FacetLister) http.HandlerFunc {
	return handleFacet(svc.Categories)
}

// HandleCities serves GET /cities.
func HandleCities(svc FacetLister) http.HandlerFunc {
	return handleFacet(svc.Cities)
}

func handleFacet(list func() []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		writeJSON(w, http.StatusOK, facetResponse{Values: list()})
	}
}
