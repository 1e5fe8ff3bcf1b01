package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/touchline/internal/domain/model"
)

var errMissingOpponent = errors.New("missing opponent")

// PredictDependencies defines the interface for outcome estimates.
type PredictDependencies interface {
	Predict(ctx context.Context, opponent string, venue model.Venue) (model.OutcomeEstimate, error)
}

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps PredictDependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps PredictDependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// HandleGet handles GET /predict?opponent=Nice&venue=home.
func (h *PredictHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	opponent := strings.TrimSpace(q.Get("opponent"))
	if opponent == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errMissingOpponent))
		return
	}
	est, err := h.deps.Predict(r.Context(), opponent, model.ParseVenue(q.Get("venue")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, est)
}
