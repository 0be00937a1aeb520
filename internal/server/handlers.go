package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/batch"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/types"
)

// ScoreRequest represents the request body for /v1/score
type ScoreRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

// RankRequest represents the request body for /v1/rank
type RankRequest struct {
	ResumeIDs      []string `json:"resume_ids" validate:"required,min=1,dive,required"`
	JobDescription string   `json:"job_description" validate:"required"`
}

// RunResponse is a stored rank run with its results.
type RunResponse struct {
	Run     *db.RankRun         `json:"run"`
	Results []types.BatchResult `json:"results"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			s.logger.Warn("database ping failed", zap.Error(err))
			resp["database"] = "unavailable"
		} else {
			resp["database"] = "ok"
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// decode reads a JSON body into dst and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := s.validator.Struct(dst); err != nil {
		return extractValidationError(err)
	}
	return nil
}

// handleScore compares one resume text with one job description
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	result, err := s.scorer.Score(r.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) decodeRank(w http.ResponseWriter, r *http.Request) (*RankRequest, error) {
	var req RankRequest
	if err := s.decode(w, r, &req); err != nil {
		return nil, err
	}
	if len(req.ResumeIDs) > s.maxBatchSize {
		return nil, &ErrValidation{Field: "resume_ids", Message: "too many resumes in one request"}
	}
	return &req, nil
}

// handleRank scores every resume against the job and returns them best first
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRank(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ranker := batch.NewRanker(s.scorer, s.resolver, s.batchOpts)
	runID, results, err := ranker.RankAndRecord(r.Context(), s.runStore(), req.ResumeIDs, req.JobDescription, s.scorer.Weights().AsMap())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	types.SortByScore(results)
	s.jsonResponse(w, http.StatusOK, types.RankResults{RunID: runString(runID), Results: results})
}

// handleRankStream emits each result as it completes, then a summary event
func (s *Server) handleRankStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRank(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := s.batchOpts
	opts.OnResult = func(res types.BatchResult) {
		if err := sse.WriteEvent("result", res); err != nil {
			s.logger.Debug("stream client gone", zap.Error(err))
		}
	}
	ranker := batch.NewRanker(s.scorer, s.resolver, opts)
	runID, results, err := ranker.RankAndRecord(r.Context(), s.runStore(), req.ResumeIDs, req.JobDescription, s.scorer.Weights().AsMap())
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	counts := make(map[string]int)
	for status, n := range types.CountByStatus(results) {
		counts[string(status)] = n
	}
	sse.WriteComplete(runString(runID), counts)
}

// handleGetRun returns a stored run and its results
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, ErrPersistenceDisabled)
		return
	}
	idStr := r.PathValue("id")
	runID, err := uuid.Parse(idStr)
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	run, err := s.store.GetRankRun(r.Context(), runID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if run == nil {
		s.fail(w, r, &ErrRunNotFound{RunID: idStr})
		return
	}
	results, err := s.store.ListRankResults(r.Context(), runID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, RunResponse{Run: run, Results: results})
}

// runStore returns the store as a batch.RunStore, or nil without persistence.
func (s *Server) runStore() batch.RunStore {
	if s.store == nil {
		return nil
	}
	return s.store
}

func runString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
