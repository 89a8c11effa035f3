package experience

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/portfolio/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]Experience, error)
	Create(ctx context.Context, dto ExperienceDTO) (*Experience, error)
	Update(ctx context.Context, id int64, dto ExperienceDTO) (*Experience, error)
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

func (h *Handler) ListExperiences(w http.ResponseWriter, r *http.Request) {
	experiences, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("ListExperiences: failed to get experiences", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	resp := ExperiencesResponse{Experiences: make([]ExperienceResponse, len(experiences))}
	for i, e := range experiences {
		resp.Experiences[i] = e.ToResponse()
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	var dto ExperienceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateExperience: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateExperience: service error", "error", err, "external_id", dto.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, e.ToResponse())
}

func (h *Handler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid experience id")
		return
	}

	var dto ExperienceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateExperience: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateExperience: service error", "error", err, "experience_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e.ToResponse())
}

func (h *Handler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid experience id")
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("DeleteExperience: service error", "error", err, "experience_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
