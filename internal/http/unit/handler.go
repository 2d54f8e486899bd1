package unit

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/homa/internal/building"
	"github.com/MrJamesThe3rd/homa/internal/http/httperr"
)

type Handler struct {
	svc *building.Service
}

func NewHandler(svc *building.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/status", h.updateStatus)
	r.Put("/{id}/tenant", h.assignTenant)
}

type unitResponse struct {
	ID          string              `json:"id"`
	Number      string              `json:"number"`
	Floor       int                 `json:"floor"`
	Area        float64             `json:"area"`
	BaseRent    int64               `json:"baseRent"`
	Status      building.UnitStatus `json:"status"`
	StatusLabel string              `json:"statusLabel"`
	TenantID    string              `json:"tenantId,omitempty"`
	TenantName  string              `json:"tenantName,omitempty"`
}

func toResponse(u building.Unit, tenants []building.Tenant) unitResponse {
	resp := unitResponse{
		ID:          u.ID,
		Number:      u.Number,
		Floor:       u.Floor,
		Area:        u.Area,
		BaseRent:    u.BaseRent,
		Status:      u.Status,
		StatusLabel: u.Status.Label(),
		TenantID:    u.TenantID,
	}

	if t, ok := building.FindTenant(tenants, u.TenantID); ok {
		resp.TenantName = t.Name
	}

	return resp
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	snap := h.svc.Snapshot()

	resp := make([]unitResponse, len(snap.Units))
	for i, u := range snap.Units {
		resp[i] = toResponse(u, snap.Tenants)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createUnitRequest struct {
	Number   string              `json:"number"`
	Floor    *int                `json:"floor,omitempty"`
	Area     float64             `json:"area"`
	BaseRent int64               `json:"baseRent"`
	Status   building.UnitStatus `json:"status,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.AddUnit(r.Context(), building.AddUnitParams{
		Number:   req.Number,
		Floor:    req.Floor,
		Area:     req.Area,
		BaseRent: req.BaseRent,
		Status:   req.Status,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	h.writeUnit(w, http.StatusCreated, *u)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteUnit(r.Context(), chi.URLParam(r, "id")); err != nil {
		httperr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateStatusRequest struct {
	Status building.UnitStatus `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	u, err := h.svc.SetUnitStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	h.writeUnit(w, http.StatusOK, *u)
}

type assignTenantRequest struct {
	TenantID string `json:"tenantId"`
}

func (h *Handler) assignTenant(w http.ResponseWriter, r *http.Request) {
	var req assignTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.AssignTenant(r.Context(), chi.URLParam(r, "id"), req.TenantID)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	h.writeUnit(w, http.StatusOK, *u)
}

func (h *Handler) writeUnit(w http.ResponseWriter, status int, u building.Unit) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(toResponse(u, h.svc.Snapshot().Tenants)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
