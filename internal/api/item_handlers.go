package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/okrause/recallflow/internal/errors"
	"github.com/okrause/recallflow/internal/logger"
	"github.com/okrause/recallflow/internal/models"
	"github.com/okrause/recallflow/internal/repository"
)

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	ownerID, _ := ownerFromContext(r.Context())

	var req models.CreateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("malformed create-item payload: %v", err)
		handleError(w, r, errors.NewBadRequestError("malformed JSON payload"))
		return
	}

	item, err := s.ItemService.CreateItem(r.Context(), ownerID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := ownerFromContext(r.Context())

	filter := repository.ItemFilter{
		DueOnly: r.URL.Query().Get("due") == "1",
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}

	items, err := s.ItemService.ListItems(r.Context(), ownerID, filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if items == nil {
		items = []models.ReviewItem{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := ownerFromContext(r.Context())

	item, err := s.ItemService.GetItem(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	ownerID, _ := ownerFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.ItemService.DeleteItem(r.Context(), ownerID, id); err != nil {
		handleError(w, r, err)
		return
	}
	log.Info("item deleted via API: id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}
