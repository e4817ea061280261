package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/docforge/internal/db"
	"github.com/jonathan/docforge/internal/pipeline"
	"github.com/jonathan/docforge/internal/provider"
	"github.com/jonathan/docforge/internal/server/middleware"
	"github.com/jonathan/docforge/internal/types"
)

// tokenRequest is the request body for POST /api/v1/auth/token.
type tokenRequest struct {
	APIKey string `json:"api_key"`
}

// tokenResponse is the response body for POST /api/v1/auth/token.
type tokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}

// generateRequest is the request body for POST /api/v1/generate. Signals
// are optional; when omitted the server looks the element up in its
// configured signals directory.
type generateRequest struct {
	Element string                `json:"element"`
	Signals *types.ElementSignals `json:"signals,omitempty"`
}

// generateResponse wraps the pipeline envelope with the persisted run ID
// when database persistence is configured.
type generateResponse struct {
	RunID *uuid.UUID `json:"run_id,omitempty"`
	*types.GenerationResult
}

// moduleInfo is the registry listing entry for GET /api/v1/registry/modules.
type moduleInfo struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Title        string   `json:"title"`
	AppliesTo    []string `json:"applies_to,omitempty"`
	AutoFillRate int      `json:"auto_fill_rate"`
}

// authenticated wraps a handler with the two supported credential checks:
// a raw API key in X-API-Key, or a bearer JWT obtained from the token
// endpoint. The API key path is checked first so automation can skip the
// token exchange.
func (s *Server) authenticated(next http.Handler) http.Handler {
	bearer := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := r.Header.Get("X-API-Key"); key != "" {
			if s.apiKeyHash != "" && s.apiKeys.VerifyKey(key, s.apiKeyHash) {
				next.ServeHTTP(w, r)
				return
			}
			err := &ErrInvalidAPIKey{}
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		bearer.ServeHTTP(w, r)
	})
}

// handleToken exchanges a valid API key for a short-lived bearer token.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.APIKey == "" {
		verr := &ErrValidation{Field: "api_key", Message: "must not be empty"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	if s.apiKeyHash == "" || !s.apiKeys.VerifyKey(req.APIKey, s.apiKeyHash) {
		err := &ErrInvalidAPIKey{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.jwtService.GenerateToken(uuid.New())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	s.jsonResponse(w, http.StatusOK, tokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: s.jwtService.config.ExpirationHours * 3600,
	})
}

// handleGenerate runs the generation pipeline for one element. Inline
// signals in the request body take precedence over the signals directory.
// With strict=true a rejected document comes back as 422 instead of an
// advisory verdict.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Element == "" {
		verr := &ErrValidation{Field: "element", Message: "must not be empty"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	strict := r.URL.Query().Get("strict") == "true"

	prov := s.provider
	if req.Signals != nil {
		if req.Signals.Name == "" {
			req.Signals.Name = req.Element
		}
		prov = provider.NewStaticProvider(map[string]*types.ElementSignals{
			req.Element: req.Signals,
		})
	}

	result := s.pipe.Generate(r.Context(), req.Element, prov, pipeline.Options{Strict: strict})

	resp := generateResponse{GenerationResult: result}

	if !result.Success {
		status := http.StatusInternalServerError
		if strict && result.Validation != nil && result.Validation.Verdict == types.VerdictReject {
			status = http.StatusUnprocessableEntity
		}
		s.jsonResponse(w, status, resp)
		return
	}

	if s.db != nil {
		runID, err := s.db.SaveDocument(r.Context(), result.Document, result.Validation, result)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("failed to persist run: %v", err))
			return
		}
		resp.RunID = &runID
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListModules lists the loaded module registry.
func (s *Server) handleListModules(w http.ResponseWriter, _ *http.Request) {
	reg := s.pipe.Registry()
	modules := make([]moduleInfo, 0, len(reg.Modules))
	for _, m := range reg.Modules {
		modules = append(modules, moduleInfo{
			ID:           m.ID,
			Kind:         string(m.Kind),
			Title:        m.Title,
			AppliesTo:    m.AppliesTo,
			AutoFillRate: m.AutoFillRate,
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"modules": modules,
		"count":   len(modules),
	})
}

// handleListRuns lists recent persisted runs with optional filters.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		err := &ErrDatabaseUnavailable{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	filters := db.RunFilters{
		ElementName: r.URL.Query().Get("element"),
		Verdict:     r.URL.Query().Get("verdict"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			verr := &ErrValidation{Field: "limit", Message: "must be a positive integer"}
			s.errorResponse(w, HTTPStatus(verr), verr.Error())
			return
		}
		filters.Limit = limit
	}

	runs, err := s.db.ListRuns(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("failed to list runs: %v", err))
		return
	}
	if runs == nil {
		runs = []db.Run{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"runs":  runs,
		"count": len(runs),
	})
}

// handleGetRun returns one persisted run with its stored artifacts.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		err := &ErrDatabaseUnavailable{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		verr := &ErrValidation{Field: "id", Message: "must be a valid UUID"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	run, err := s.db.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("failed to get run: %v", err))
		return
	}
	if run == nil {
		nfErr := &ErrRunNotFound{RunID: runID}
		s.errorResponse(w, HTTPStatus(nfErr), nfErr.Error())
		return
	}

	narrative, err := s.db.GetTextArtifact(r.Context(), runID, db.StepNarrative)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("failed to get artifacts: %v", err))
		return
	}
	schema, err := s.db.GetArtifact(r.Context(), runID, db.StepSchema)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("failed to get artifacts: %v", err))
		return
	}
	annotation, err := s.db.GetTextArtifact(r.Context(), runID, db.StepAnnotation)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("failed to get artifacts: %v", err))
		return
	}

	artifacts := map[string]any{}
	if narrative != "" {
		artifacts[db.StepNarrative] = narrative
	}
	if len(schema) > 0 {
		artifacts[db.StepSchema] = json.RawMessage(schema)
	}
	if annotation != "" {
		artifacts[db.StepAnnotation] = annotation
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"run":       run,
		"artifacts": artifacts,
	})
}
