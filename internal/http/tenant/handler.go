package tenant

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/homa/internal/building"
	"github.com/MrJamesThe3rd/homa/internal/http/httperr"
	"github.com/MrJamesThe3rd/homa/internal/reminder"
	"github.com/MrJamesThe3rd/homa/internal/report"
)

type Handler struct {
	svc    *building.Service
	region string
	now    func() time.Time
}

func NewHandler(svc *building.Service, region string) *Handler {
	return &Handler{svc: svc, region: region, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/reminder", h.reminder)
}

type tenantResponse struct {
	building.Tenant
	UnitNumber string `json:"unitNumber,omitempty"`
	DueSoon    bool   `json:"dueSoon"`
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	snap := h.svc.Snapshot()
	today := h.now()

	resp := make([]tenantResponse, len(snap.Tenants))
	for i, t := range snap.Tenants {
		resp[i] = tenantResponse{
			Tenant:     t,
			UnitNumber: reminder.UnitNumberFor(snap.Units, t.ID),
			DueSoon:    report.IsDueSoon(t.DueDay(), today),
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type tenantRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	NationalID string `json:"nationalId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	RentDay    int    `json:"rentDay"`
}

func (req tenantRequest) params(id string) building.TenantParams {
	return building.TenantParams{
		ID:         id,
		Name:       req.Name,
		Phone:      req.Phone,
		NationalID: req.NationalID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		RentDay:    req.RentDay,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	h.upsert(w, r, "", http.StatusCreated)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	h.upsert(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request, id string, status int) {
	var req tenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.UpsertTenant(r.Context(), req.params(id))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(t); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTenant(r.Context(), chi.URLParam(r, "id")); err != nil {
		httperr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reminder(w http.ResponseWriter, r *http.Request) {
	rem, err := reminder.For(h.svc.Snapshot(), chi.URLParam(r, "id"), h.region)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(rem); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
