package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/velardesign/portfolio-backend/database"
	"github.com/velardesign/portfolio-backend/errs"
	"github.com/velardesign/portfolio-backend/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// parseProjectFilter translates the raw query parameters into a store
// filter. Garbage pagination values fall back to the defaults instead of
// failing the request.
func parseProjectFilter(r *http.Request) database.ProjectFilter {
	q := r.URL.Query()

	filter := database.ProjectFilter{
		Category:  q.Get("category"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Page:      database.DefaultPage,
		Limit:     database.DefaultLimit,
	}

	// the admin view asks for every state at once as a comma-joined list;
	// absent means published only
	if status := q.Get("status"); status != "" {
		for _, s := range strings.Split(status, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Statuses = append(filter.Statuses, s)
			}
		}
	}

	// only the literal string "true" turns the featured filter on
	if q.Get("featured") == "true" {
		featured := true
		filter.Featured = &featured
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	return filter
}

// listProjects retrieves one page of projects under the requested filter,
// with pagination metadata computed over the full matching set.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := parseProjectFilter(r)

		projects, total, err := h.projectRepo.List(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "projects", err))
			return
		}

		pages := 0
		if total > 0 {
			pages = (total + filter.Limit - 1) / filter.Limit
		}

		h.responder.WriteJSON(w, ProjectListResponse{
			Projects: projects,
			Pagination: Pagination{
				Page:  filter.Page,
				Limit: filter.Limit,
				Total: total,
				Pages: pages,
			},
		})
	}
}

// getProject retrieves a single project by ID for the admin edit view.
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.projectID(w, r)
		if !ok {
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project from a full body. Required fields are
// checked by the shared validation contract before the store is touched.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var project models.Project
		if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := models.ValidateProject(&project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Create(r.Context(), &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject patches the admin-editable fields of an existing project.
// Counters and createdAt are never part of the patch, so a concurrent
// like or view cannot be discarded by a save.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.projectID(w, r)
		if !ok {
			return
		}

		var patch models.ProjectPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := models.ValidatePatch(&patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.Patch(r.Context(), projectID, patch)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject removes a project by ID. Hard delete, no cascade.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.projectID(w, r)
		if !ok {
			return
		}

		if err := h.projectRepo.Delete(r.Context(), projectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"message": "Project deleted successfully",
		})
	}
}

// trackView records one view event. Calls are intentionally not deduplicated
// per viewer; re-opening a project counts again.
func (h projectHandler) trackView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.projectID(w, r)
		if !ok {
			return
		}

		views, err := h.projectRepo.IncrementViews(r.Context(), projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("update views on", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]int{"views": views})
	}
}

type likeRequest struct {
	Liked bool `json:"liked"`
}

// toggleLike adds or removes one like depending on the caller's prior local
// state. Likes are anonymous; the only dedup lives in the caller's session.
func (h projectHandler) toggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.projectID(w, r)
		if !ok {
			return
		}

		var req likeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode like request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		delta := 1
		if !req.Liked {
			delta = -1
		}

		likes, err := h.projectRepo.AddLikes(r.Context(), projectID, delta)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("update likes on", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]int{"likes": likes})
	}
}

// projectID parses the path parameter, writing the error response itself
// when the value is missing or not a UUID.
func (h projectHandler) projectID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
		return uuid.Nil, false
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
		return uuid.Nil, false
	}

	return projectID, true
}
