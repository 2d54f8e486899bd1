package maintenance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/homa/internal/building"
	"github.com/MrJamesThe3rd/homa/internal/export"
	"github.com/MrJamesThe3rd/homa/internal/http/httperr"
)

type Handler struct {
	svc       *building.Service
	exportSvc *export.Service
}

func NewHandler(svc *building.Service, exportSvc *export.Service) *Handler {
	return &Handler{svc: svc, exportSvc: exportSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/export", h.exportWorkbook)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	records := h.svc.Snapshot().Maintenance

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(records); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createRecordRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Supplier    string `json:"supplier"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.AddMaintenance(r.Context(), building.MaintenanceParams{
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Supplier:    req.Supplier,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(rec); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteMaintenance(r.Context(), chi.URLParam(r, "id")); err != nil {
		httperr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) exportWorkbook(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := h.exportSvc.MaintenanceWorkbook(&buf, h.svc.Snapshot().Maintenance); err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", export.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.MaintenanceFilename))

	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write workbook", "error", err)
	}
}
