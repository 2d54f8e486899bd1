package invoice

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
	r.Patch("/{id}/paid", h.togglePaid)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/pdf", h.pdf)
}

type invoiceResponse struct {
	building.Invoice
	UnitNumber string `json:"unitNumber"`
	TypeLabel  string `json:"typeLabel"`
	PaidLabel  string `json:"paidLabel"`
}

func toResponse(inv building.Invoice, units []building.Unit) invoiceResponse {
	return invoiceResponse{
		Invoice:    inv,
		UnitNumber: building.UnitNumber(units, inv.UnitID, building.UnitPlaceholder),
		TypeLabel:  inv.Type.Label(),
		PaidLabel:  building.PaidLabel(inv.IsPaid),
	}
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	snap := h.svc.Snapshot()

	resp := make([]invoiceResponse, len(snap.Invoices))
	for i, inv := range snap.Invoices {
		resp[i] = toResponse(inv, snap.Units)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createInvoiceRequest struct {
	UnitID      string               `json:"unitId"`
	Amount      int64                `json:"amount"`
	Date        string               `json:"date"`
	DueDate     string               `json:"dueDate"`
	Description string               `json:"description"`
	Type        building.InvoiceType `json:"type,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.IssueInvoice(r.Context(), building.IssueInvoiceParams{
		UnitID:      req.UnitID,
		Amount:      req.Amount,
		Date:        req.Date,
		DueDate:     req.DueDate,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(*inv, h.svc.Snapshot().Units)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) togglePaid(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.ToggleInvoicePaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(*inv, h.svc.Snapshot().Units)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteInvoice(r.Context(), chi.URLParam(r, "id")); err != nil {
		httperr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) exportWorkbook(w http.ResponseWriter, _ *http.Request) {
	snap := h.svc.Snapshot()

	var buf bytes.Buffer
	if err := h.exportSvc.InvoicesWorkbook(&buf, snap.Invoices, snap.Units); err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", export.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.InvoicesFilename))

	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write workbook", "error", err)
	}
}

func (h *Handler) pdf(w http.ResponseWriter, r *http.Request) {
	doc, err := export.Document(h.svc.Snapshot(), chi.URLParam(r, "id"))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.exportSvc.InvoicePDF(&buf, doc); err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", export.PDFContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", "invoice-"+doc.Number()+".pdf"))

	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write pdf", "error", err)
	}
}
