package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/tally/internal/api/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

type userRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
}

// List godoc
//
//	@Summary	List users
//	@Tags		Users
//	@Produce	json
//	@Success	200	{array}		UserResponse
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Router		/api/users [get].
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponses(users))
}

// Get godoc
//
//	@Summary	Get a user by id
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	UserResponse
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/users/{id} [get].
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetUserByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// Create godoc
//
//	@Summary	Create a user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	UserResponse
//	@Failure	400	{object}	httpx.ErrorResponse
//	@Failure	409	{object}	httpx.ErrorResponse	"Email already registered"
//	@Router		/api/users [post].
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, codeValidation, "request body is not valid JSON")
		return
	}

	user, err := h.UserService.CreateUser(r.Context(), service.CreateUserParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// Update godoc
//
//	@Summary	Update a user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	UserResponse
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/users/{id} [put].
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, codeValidation, "request body is not valid JSON")
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(), r.PathValue("id"), service.UpdateUserParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// Delete godoc
//
//	@Summary	Delete a user
//	@Tags		Users
//	@Success	204
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/users/{id} [delete].
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
