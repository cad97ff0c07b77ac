package serve

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zero-day-ai/huntgen"
	"github.com/zero-day-ai/huntgen/dialect"
	"github.com/zero-day-ai/huntgen/library"
)

// api holds the handler dependencies.
type api struct {
	gen    *huntgen.Generator
	store  library.Store
	logger *slog.Logger
}

func (a *api) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("POST /api/generate", a.handleGenerate)
	mux.HandleFunc("GET /api/techniques", a.handleTechniques)
	mux.HandleFunc("GET /api/metrics", a.handleMetrics)
	mux.HandleFunc("POST /api/library", a.handleSaveQuery)
	mux.HandleFunc("GET /api/library", a.handleListQueries)
	mux.HandleFunc("GET /api/library/{id}", a.handleGetQuery)
	mux.HandleFunc("DELETE /api/library/{id}", a.handleDeleteQuery)
	return mux
}

// errorResponse is the JSON body for all failure responses.
type errorResponse struct {
	Error string `json:"error"`
}

func (a *api) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Warn("failed to encode response", "error", err)
	}
}

func (a *api) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, errorResponse{Error: msg})
}

func (a *api) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// generateRequest is the POST /api/generate body.
type generateRequest struct {
	Description  string `json:"description"`
	QueryType    string `json:"query_type"`
	IncludeMitre bool   `json:"include_mitre"`
}

func (a *api) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := dialect.Parse(req.QueryType)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := a.gen.Generate(r.Context(), req.Description, d,
		huntgen.GenerateOptions{IncludeMitre: req.IncludeMitre})
	if err != nil {
		switch {
		case errors.Is(err, huntgen.ErrInvalidInput):
			a.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, huntgen.ErrGenerationFailed):
			a.writeError(w, http.StatusBadGateway, err.Error())
		default:
			a.logger.Error("generation failed", "error", err)
			a.writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	a.writeJSON(w, http.StatusOK, result)
}

func (a *api) handleTechniques(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.gen.Mapper().Catalog().Techniques())
}

func (a *api) handleMetrics(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.gen.Metrics().Summary())
}

func (a *api) handleSaveQuery(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		a.writeError(w, http.StatusServiceUnavailable, "query library is not configured")
		return
	}

	var q library.SavedQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := q.Validate(); err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.store.Save(r.Context(), &q); err != nil {
		a.logger.Error("failed to save query", "error", err)
		a.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(w, http.StatusCreated, q)
}

func (a *api) handleListQueries(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		a.writeError(w, http.StatusServiceUnavailable, "query library is not configured")
		return
	}

	var (
		queries []*library.SavedQuery
		err     error
	)
	if tag := r.URL.Query().Get("tag"); tag != "" {
		queries, err = a.store.ListByTag(r.Context(), tag)
	} else {
		queries, err = a.store.List(r.Context())
	}
	if err != nil {
		a.logger.Error("failed to list queries", "error", err)
		a.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(w, http.StatusOK, queries)
}

func (a *api) handleGetQuery(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		a.writeError(w, http.StatusServiceUnavailable, "query library is not configured")
		return
	}

	q, err := a.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			a.writeError(w, http.StatusNotFound, "saved query not found")
			return
		}
		a.logger.Error("failed to get query", "error", err)
		a.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(w, http.StatusOK, q)
}

func (a *api) handleDeleteQuery(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		a.writeError(w, http.StatusServiceUnavailable, "query library is not configured")
		return
	}

	if err := a.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, library.ErrNotFound) {
			a.writeError(w, http.StatusNotFound, "saved query not found")
			return
		}
		a.logger.Error("failed to delete query", "error", err)
		a.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
