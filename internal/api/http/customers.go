package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/tally/internal/api/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
)

type CustomersHandler struct {
	CustomerService *service.CustomerService
}

type customerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (req customerRequest) params() service.CustomerParams {
	return service.CustomerParams{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Phone,
	}
}

func (h *CustomersHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.CustomerService.ListCustomers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *CustomersHandler) Get(w http.ResponseWriter, r *http.Request) {
	customer, err := h.CustomerService.GetCustomerByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCustomerResponse(customer))
}

func (h *CustomersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, codeValidation, "request body is not valid JSON")
		return
	}

	customer, err := h.CustomerService.CreateCustomer(r.Context(), req.params())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCustomerResponse(customer))
}

func (h *CustomersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, codeValidation, "request body is not valid JSON")
		return
	}

	customer, err := h.CustomerService.UpdateCustomer(r.Context(), r.PathValue("id"), req.params())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCustomerResponse(customer))
}

func (h *CustomersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.CustomerService.DeleteCustomer(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
