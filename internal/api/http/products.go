package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/tally/internal/api/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
)

type ProductsHandler struct {
	ProductService *service.ProductService
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
}

func (req productRequest) params() service.ProductParams {
	return service.ProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
}

func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.ProductService.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.ProductService.GetProductByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, codeValidation, "request body is not valid JSON")
		return
	}

	product, err := h.ProductService.CreateProduct(r.Context(), req.params())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, codeValidation, "request body is not valid JSON")
		return
	}

	product, err := h.ProductService.UpdateProduct(r.Context(), r.PathValue("id"), req.params())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ProductService.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
