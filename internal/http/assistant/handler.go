package assistant

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/homa/internal/ai"
	"github.com/MrJamesThe3rd/homa/internal/building"
)

type Handler struct {
	ai  *ai.Service
	svc *building.Service
}

func NewHandler(aiSvc *ai.Service, svc *building.Service) *Handler {
	return &Handler{ai: aiSvc, svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/lease", h.lease)
	r.Post("/analysis", h.analysis)
	r.Post("/chat", h.chat)
}

type leaseRequest struct {
	TenantName string `json:"tenantName"`
	UnitNumber string `json:"unitNumber"`
	Rent       int64  `json:"rent"`
	StartDate  string `json:"startDate"`
}

func (h *Handler) lease(w http.ResponseWriter, r *http.Request) {
	var req leaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeReply(w, h.ai.LeaseDraft(r.Context(), ai.LeaseParams{
		TenantName: req.TenantName,
		UnitNumber: req.UnitNumber,
		Rent:       req.Rent,
		StartDate:  req.StartDate,
	}))
}

func (h *Handler) analysis(w http.ResponseWriter, r *http.Request) {
	writeReply(w, h.ai.AnalyzeFinancials(r.Context(), h.svc.Snapshot().Invoices))
}

type chatRequest struct {
	Question string `json:"question"`
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeReply(w, h.ai.Ask(r.Context(), req.Question))
}

func writeReply(w http.ResponseWriter, reply ai.Reply) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(reply); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
