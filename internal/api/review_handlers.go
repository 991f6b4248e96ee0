package api

import (
	"net/http"

	"github.com/okrause/recallflow/internal/errors"
	"github.com/okrause/recallflow/internal/logger"
	"github.com/okrause/recallflow/internal/models"
)

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	ownerID, _ := ownerFromContext(r.Context())

	info, err := s.ReviewService.StartSession(r.Context(), ownerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("session started: owner_id=%d, remaining=%d", ownerID, info.Remaining)
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleCurrentItem(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := ownerFromContext(r.Context())

	info, err := s.ReviewService.CurrentItem(r.Context(), ownerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleSubmitGrade(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	ownerID, _ := ownerFromContext(r.Context())

	var req models.GradeRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("malformed grade payload: %v", err)
		handleError(w, r, errors.NewBadRequestError("malformed JSON payload"))
		return
	}

	updated, err := s.ReviewService.SubmitGrade(r.Context(), ownerID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDueCount(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := ownerFromContext(r.Context())

	count, err := s.ReviewService.DueCount(r.Context(), ownerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"due_count": count})
}
