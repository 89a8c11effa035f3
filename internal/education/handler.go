package education

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/portfolio/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]Education, error)
	Create(ctx context.Context, dto EducationDTO) (*Education, error)
	Update(ctx context.Context, id int64, dto EducationDTO) (*Education, error)
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

func (h *Handler) ListEducations(w http.ResponseWriter, r *http.Request) {
	educations, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("ListEducations: failed to get educations", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	resp := EducationsResponse{Educations: make([]EducationResponse, len(educations))}
	for i, e := range educations {
		resp.Educations[i] = e.ToResponse()
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateEducation(w http.ResponseWriter, r *http.Request) {
	var dto EducationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEducation: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateEducation: service error", "error", err, "external_id", dto.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, e.ToResponse())
}

func (h *Handler) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid education id")
		return
	}

	var dto EducationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateEducation: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateEducation: service error", "error", err, "education_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e.ToResponse())
}

func (h *Handler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid education id")
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("DeleteEducation: service error", "error", err, "education_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
