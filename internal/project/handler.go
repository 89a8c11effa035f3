package project

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/portfolio/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, featured *bool) ([]Project, error)
	GetBySlug(ctx context.Context, slug string) (*Project, error)
	Create(ctx context.Context, dto CreateProjectDTO) (*Project, error)
	Update(ctx context.Context, id int64, dto UpdateProjectDTO) (*Project, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	var featured *bool
	if raw := r.URL.Query().Get("featured"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "featured must be a boolean")
			return
		}
		featured = &parsed
	}

	projects, err := h.Service.List(r.Context(), featured)
	if err != nil {
		h.Logger.Error("ListProjects: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	resp := ProjectsResponse{Projects: make([]ProjectResponse, len(projects))}
	for i, p := range projects {
		resp.Projects[i] = p.ToResponse()
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	p, err := h.Service.GetBySlug(r.Context(), slug)
	if err != nil {
		h.Logger.Error("GetProject: service error", "error", err, "slug", slug)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p.ToResponse())
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var dto CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateProject: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateProject: service error", "error", err, "slug", dto.Slug)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateProject: project created", "project_id", p.ID, "slug", p.Slug)
	h.WriteJSON(w, http.StatusCreated, p.ToResponse())
}

// UpdateProject and DeleteProject address a project by its current slug, the
// same key the public read uses.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.projectFromPath(w, r)
	if !ok {
		return
	}

	var dto UpdateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateProject: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Update(r.Context(), existing.ID, dto)
	if err != nil {
		h.Logger.Error("UpdateProject: service error", "error", err, "project_id", existing.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p.ToResponse())
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.projectFromPath(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), existing.ID); err != nil {
		h.Logger.Error("DeleteProject: service error", "error", err, "project_id", existing.ID)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) projectFromPath(w http.ResponseWriter, r *http.Request) (*Project, bool) {
	slug := chi.URLParam(r, "slug")
	p, err := h.Service.GetBySlug(r.Context(), slug)
	if err != nil {
		h.Logger.Warn("Handler: project lookup failed", "error", err, "slug", slug)
		h.HandleServiceError(w, err)
		return nil, false
	}
	return p, true
}
