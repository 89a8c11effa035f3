package budget

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/portfolio/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetOrCreatePeriod(ctx context.Context, dto PeriodDTO) (*Period, error)
	GetPeriodData(ctx context.Context, month string, year int) (*PeriodData, error)
	GetSummary(ctx context.Context, month string, year int) (*PeriodData, Summary, error)
	AddCategory(ctx context.Context, periodID int64, dto CreateCategoryDTO) (*Category, error)
	UpdateCategory(ctx context.Context, id int64, dto UpdateCategoryDTO) (*Category, error)
	RemoveCategory(ctx context.Context, id int64, cascade bool) error
	AddTransaction(ctx context.Context, periodID int64, dto CreateTransactionDTO) (*Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, dto UpdateTransactionDTO) (*Transaction, error)
	RemoveTransaction(ctx context.Context, id int64) error
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

// RegisterRoutes mounts the budget endpoints on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/periods", h.GetOrCreatePeriod)
	r.Post("/periods/{id}/categories", h.AddCategory)
	r.Post("/periods/{id}/transactions", h.AddTransaction)
	r.Get("/months/{year}/{month}", h.GetPeriodData)
	r.Get("/months/{year}/{month}/summary", h.GetSummary)
	r.Patch("/categories/{id}", h.UpdateCategory)
	r.Delete("/categories/{id}", h.RemoveCategory)
	r.Patch("/transactions/{id}", h.UpdateTransaction)
	r.Delete("/transactions/{id}", h.RemoveTransaction)
}

func (h *Handler) GetOrCreatePeriod(w http.ResponseWriter, r *http.Request) {
	var dto PeriodDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("GetOrCreatePeriod: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	period, err := h.Service.GetOrCreatePeriod(r.Context(), dto)
	if err != nil {
		h.Logger.Error("GetOrCreatePeriod: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, period.ToResponse())
}

func (h *Handler) GetPeriodData(w http.ResponseWriter, r *http.Request) {
	month, year, ok := h.monthParams(w, r)
	if !ok {
		return
	}

	data, err := h.Service.GetPeriodData(r.Context(), month, year)
	if err != nil {
		h.Logger.Error("GetPeriodData: service error", "error", err, "month", month, "year", year)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, data.ToResponse())
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	month, year, ok := h.monthParams(w, r)
	if !ok {
		return
	}

	data, summary, err := h.Service.GetSummary(r.Context(), month, year)
	if err != nil {
		h.Logger.Error("GetSummary: service error", "error", err, "month", month, "year", year)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToSummaryResponse(data.Period, summary))
}

func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	periodID, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AddCategory: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.Service.AddCategory(r.Context(), periodID, dto)
	if err != nil {
		h.Logger.Error("AddCategory: service error", "error", err, "period_id", periodID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, category.ToResponse())
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var dto UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateCategory: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.Service.UpdateCategory(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateCategory: service error", "error", err, "category_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, category.ToResponse())
}

func (h *Handler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	cascade := false
	if raw := r.URL.Query().Get("cascade"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "cascade must be a boolean")
			return
		}
		cascade = parsed
	}

	if err := h.Service.RemoveCategory(r.Context(), id, cascade); err != nil {
		h.Logger.Error("RemoveCategory: service error", "error", err, "category_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	periodID, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var dto CreateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AddTransaction: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.Service.AddTransaction(r.Context(), periodID, dto)
	if err != nil {
		h.Logger.Error("AddTransaction: service error", "error", err, "period_id", periodID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, tx.ToResponse())
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var dto UpdateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateTransaction: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.Service.UpdateTransaction(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateTransaction: service error", "error", err, "transaction_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tx.ToResponse())
}

func (h *Handler) RemoveTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.RemoveTransaction(r.Context(), id); err != nil {
		h.Logger.Error("RemoveTransaction: service error", "error", err, "transaction_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) monthParams(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid year")
		return "", 0, false
	}
	return chi.URLParam(r, "month"), year, true
}
