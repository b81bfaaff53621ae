package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"venue-intelligence/internal/catalog"
	apperrors "venue-intelligence/internal/common/errors"
	"venue-intelligence/internal/models"
	"venue-intelligence/internal/venue/filter"
	"venue-intelligence/internal/venue/pagination"
	"venue-intelligence/internal/venue/ranking"
)

type recommendRequest struct {
	EventRequirement models.EventRequirement `json:"eventRequirement"`
	// Venues may be omitted when a catalog is configured.
	Venues []models.Venue `json:"venues,omitempty"`
	TopN   int            `json:"topN,omitempty"`
}

type filterRequest struct {
	Venues        []models.Venue  `json:"venues,omitempty"`
	City          string          `json:"city,omitempty"`
	Filters       json.RawMessage `json:"filters,omitempty"`
	LoadMoreCount int             `json:"loadMoreCount,omitempty"`
}

type filterResponse struct {
	Window pagination.Window `json:"window"`
	Facets filter.Options    `json:"facets"`
}

type analysisRequest struct {
	Venue            models.Venue            `json:"venue"`
	EventRequirement models.EventRequirement `json:"eventRequirement"`
}

type planRequest struct {
	Venue            models.Venue            `json:"venue"`
	EventRequirement models.EventRequirement `json:"eventRequirement"`
	Recipients       []models.ShareRecipient `json:"recipients,omitempty"`
}

type planResponse struct {
	Plan          models.PlanSummary    `json:"plan"`
	ShareReceipts []models.ShareReceipt `json:"shareReceipts"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	failed := map[string]string{}
	for name, check := range s.deps.Checks {
		if err := check(r.Context()); err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "not ready", "failed": failed})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	requirement := req.EventRequirement.Normalized()
	if err := requirement.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	venues := req.Venues
	if venues == nil {
		var err error
		if venues, err = s.searchCatalog(r.Context(), catalog.QueryFor(requirement, 0)); err != nil {
			s.writeError(w, err)
			return
		}
	}

	topN := s.config.TopN
	if req.TopN > 0 {
		topN = req.TopN
	}
	result, err := ranking.NewRanker(s.logger, ranking.WithTopN(topN)).Rank(requirement, venues)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) searchCatalog(ctx context.Context, q catalog.Query) ([]models.Venue, error) {
	if s.deps.Catalog == nil {
		return nil, apperrors.NewValidationError("venues are required when no catalog is configured")
	}
	return s.deps.Catalog.Venues(ctx, q)
}

func (s *Server) filterVenues(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	fs := filter.Cleared()
	if len(req.Filters) > 0 && string(req.Filters) != "null" {
		fs = models.FilterState{}
		if err := json.Unmarshal(req.Filters, &fs); err != nil {
			s.writeError(w, apperrors.NewInvalidFilterFormatError(err.Error()))
			return
		}
	}

	browser := pagination.NewBrowser(s.config.Pagination, req.Venues)
	if req.Venues == nil && strings.TrimSpace(req.City) != "" {
		query := catalog.Query{City: strings.TrimSpace(req.City)}
		if _, err := browser.Load(r.Context(), func(ctx context.Context) ([]models.Venue, error) {
			return s.searchCatalog(ctx, query)
		}); err != nil {
			s.writeError(w, err)
			return
		}
	}

	window, err := browser.SetFilters(fs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	for i := 0; i < req.LoadMoreCount && window.HasMore; i++ {
		if window, err = browser.LoadMore(r.Context()); err != nil {
			s.writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, filterResponse{Window: window, Facets: filter.FacetOptions()})
}

func (s *Server) analyzeVenue(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	switch {
	case req.Venue.ID == "":
		req.Venue.ID = id
	case req.Venue.ID != id:
		s.writeError(w, apperrors.NewValidationError("venue.id does not match the path"))
		return
	}

	result, err := s.deps.Analyzer.Analyze(r.Context(), req.Venue, req.EventRequirement.Normalized())
	if err != nil {
		if r.Context().Err() != nil {
			err = apperrors.NewTimeoutError("venue analysis", err)
		}
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) createPlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Venue.ID == "" {
		s.writeError(w, apperrors.NewValidationError("venue id is required"))
		return
	}

	summary, receipts, err := s.deps.Plans.Create(r.Context(), req.Venue, req.EventRequirement, req.Recipients)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/plans/"+summary.ID)
	writeJSON(w, http.StatusCreated, planResponse{Plan: summary, ShareReceipts: receipts})
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request) {
	summary, err := s.deps.Plans.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
