package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tally/internal/api/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
)

type SalesHandler struct {
	SaleService *service.SaleService
}

type saleRequest struct {
	CustomerID string    `json:"customer_id"`
	ProductID  string    `json:"product_id"`
	Quantity   int64     `json:"quantity"`
	SoldAt     time.Time `json:"sold_at,omitempty"`
}

func (req saleRequest) params() service.SaleParams {
	return service.SaleParams{
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		SoldAt:     req.SoldAt,
	}
}

func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	sales, err := h.SaleService.ListSales(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(s))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *SalesHandler) Get(w http.ResponseWriter, r *http.Request) {
	sale, err := h.SaleService.GetSaleByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSaleResponse(sale))
}

// Create records a sale. The total is computed server-side from the
// product's current price; a client-supplied total is ignored.
func (h *SalesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, codeValidation, "request body is not valid JSON")
		return
	}

	sale, err := h.SaleService.CreateSale(r.Context(), req.params())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toSaleResponse(sale))
}

func (h *SalesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, codeValidation, "request body is not valid JSON")
		return
	}

	sale, err := h.SaleService.UpdateSale(r.Context(), r.PathValue("id"), req.params())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSaleResponse(sale))
}

func (h *SalesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.SaleService.DeleteSale(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
