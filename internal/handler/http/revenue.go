package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/revenue"
	"github.com/SanorSmith/Tibba-sub001/internal/handler/http/response"
)

type RevenueHandler interface {
	AllocateShares(w http.ResponseWriter, r *http.Request)
	ListShares(w http.ResponseWriter, r *http.Request)
	UpdateSharePayment(w http.ResponseWriter, r *http.Request)
}

type RevenueHandlerImpl struct {
	revenueService revenue.Service
}

func NewRevenueHandler(revenueService revenue.Service) RevenueHandler {
	return &RevenueHandlerImpl{revenueService: revenueService}
}

// AllocateShares implements RevenueHandler.
func (h *RevenueHandlerImpl) AllocateShares(w http.ResponseWriter, r *http.Request) {
	invoiceLineID := chi.URLParam(r, "invoiceLineID")
	if invoiceLineID == "" {
		response.BadRequest(w, "Invoice line ID is required", nil)
		return
	}

	allocation, err := h.revenueService.AllocateShares(r.Context(), invoiceLineID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shares allocated successfully", allocation)
}

// ListShares implements RevenueHandler.
func (h *RevenueHandlerImpl) ListShares(w http.ResponseWriter, r *http.Request) {
	invoiceLineID := chi.URLParam(r, "invoiceLineID")
	if invoiceLineID == "" {
		response.BadRequest(w, "Invoice line ID is required", nil)
		return
	}

	shares, err := h.revenueService.ListShares(r.Context(), invoiceLineID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shares)
}

// UpdateSharePayment implements RevenueHandler.
func (h *RevenueHandlerImpl) UpdateSharePayment(w http.ResponseWriter, r *http.Request) {
	shareID := chi.URLParam(r, "shareID")
	if shareID == "" {
		response.BadRequest(w, "Share ID is required", nil)
		return
	}

	var req revenue.UpdateSharePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSharePayment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = shareID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	share, err := h.revenueService.UpdateSharePayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Share payment updated successfully", share)
}
