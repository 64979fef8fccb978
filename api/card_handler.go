package api

import (
	"net/http"

	"tv-alert-relay/alert"
	"tv-alert-relay/card"
)

// handleCardImage renders the shareable trade card PNG. Cards are
// deterministic for a given query string, so clients may cache them.
func (s *Server) handleCardImage(w http.ResponseWriter, r *http.Request) {
	direction := alert.Long
	if d, ok := alert.ParseDirectionValue(r.URL.Query().Get("direction")); ok {
		direction = d
	}

	params := card.Params{
		Symbol:    r.URL.Query().Get("symbol"),
		Direction: direction,
		Entry:     getDecimalParam(r, "entry"),
		Price:     getDecimalParam(r, "price"),
		Time:      r.URL.Query().Get("time"),
		Capital:   getDecimalParam(r, "capital"),
	}

	img, err := s.renderer.Render(params)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "card rendering failed", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}
