package http

import (
	"net/http"
	"testing"

	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"
)

func TestResourceCRUDOverHTTP(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser(t, "desk@example.com", "a-long-password")
	cookies := env.login(t, "desk@example.com", "a-long-password")
	access := cookies[AccessTokenCookie]

	var customerID, productID, saleID string

	t.Run("create customer", func(t *testing.T) {
		result := apitest.New().
			Handler(env.Router).
			Post("/api/customers").
			Cookie(AccessTokenCookie, access).
			JSON(`{"name":"Corner Deli","email":"deli@example.com","address":"1 Main St","phone":"+61 400 222 333"}`).
			Expect(t).
			Status(http.StatusCreated).
			Assert(jsonpath.Equal("$.name", "Corner Deli")).
			Assert(jsonpath.Present("$.id")).
			End()

		var resp CustomerResponse
		result.JSON(&resp)
		customerID = resp.ID
		require.NotEmpty(t, customerID)
	})

	t.Run("create product", func(t *testing.T) {
		result := apitest.New().
			Handler(env.Router).
			Post("/api/products").
			Cookie(AccessTokenCookie, access).
			JSON(`{"name":"Espresso","description":"Single origin","price":3.5,"stock":10}`).
			Expect(t).
			Status(http.StatusCreated).
			Assert(jsonpath.Equal("$.stock", float64(10))).
			End()

		var resp ProductResponse
		result.JSON(&resp)
		productID = resp.ID
		require.NotEmpty(t, productID)
	})

	t.Run("invalid product rejected", func(t *testing.T) {
		apitest.New().
			Handler(env.Router).
			Post("/api/products").
			Cookie(AccessTokenCookie, access).
			JSON(`{"name":"","price":-1}`).
			Expect(t).
			Status(http.StatusBadRequest).
			Assert(jsonpath.Equal("$.error", "VALIDATION_ERROR")).
			End()
	})

	t.Run("create sale computes total and decrements stock", func(t *testing.T) {
		result := apitest.New().
			Handler(env.Router).
			Post("/api/sales").
			Cookie(AccessTokenCookie, access).
			JSON(`{"customer_id":"`+customerID+`","product_id":"`+productID+`","quantity":4}`).
			Expect(t).
			Status(http.StatusCreated).
			Assert(jsonpath.Equal("$.total", float64(14))).
			End()

		var resp SaleResponse
		result.JSON(&resp)
		saleID = resp.ID

		apitest.New().
			Handler(env.Router).
			Get("/api/products/"+productID).
			Cookie(AccessTokenCookie, access).
			Expect(t).
			Status(http.StatusOK).
			Assert(jsonpath.Equal("$.stock", float64(6))).
			End()
	})

	t.Run("oversell conflicts", func(t *testing.T) {
		apitest.New().
			Handler(env.Router).
			Post("/api/sales").
			Cookie(AccessTokenCookie, access).
			JSON(`{"customer_id":"`+customerID+`","product_id":"`+productID+`","quantity":100}`).
			Expect(t).
			Status(http.StatusConflict).
			Assert(jsonpath.Equal("$.error", "INSUFFICIENT_STOCK")).
			End()
	})

	t.Run("customer with sales cannot be deleted", func(t *testing.T) {
		apitest.New().
			Handler(env.Router).
			Delete("/api/customers/"+customerID).
			Cookie(AccessTokenCookie, access).
			Expect(t).
			Status(http.StatusInternalServerError).
			End()
	})

	t.Run("delete sale restocks", func(t *testing.T) {
		apitest.New().
			Handler(env.Router).
			Delete("/api/sales/"+saleID).
			Cookie(AccessTokenCookie, access).
			Expect(t).
			Status(http.StatusNoContent).
			End()

		apitest.New().
			Handler(env.Router).
			Get("/api/products/"+productID).
			Cookie(AccessTokenCookie, access).
			Expect(t).
			Status(http.StatusOK).
			Assert(jsonpath.Equal("$.stock", float64(10))).
			End()
	})

	t.Run("unknown resource is 404", func(t *testing.T) {
		apitest.New().
			Handler(env.Router).
			Get("/api/customers/does-not-exist").
			Cookie(AccessTokenCookie, access).
			Expect(t).
			Status(http.StatusNotFound).
			Assert(jsonpath.Equal("$.error", "NOT_FOUND")).
			End()
	})
}

func TestUserEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser(t, "admin@example.com", "a-long-password")
	cookies := env.login(t, "admin@example.com", "a-long-password")
	access := cookies[AccessTokenCookie]

	t.Run("create user never echoes the password", func(t *testing.T) {
		apitest.New().
			Handler(env.Router).
			Post("/api/users").
			Cookie(AccessTokenCookie, access).
			JSON(`{"first_name":"New","last_name":"Staff","email":"staff@example.com","password":"a-long-password"}`).
			Expect(t).
			Status(http.StatusCreated).
			Assert(jsonpath.Equal("$.email", "staff@example.com")).
			Assert(jsonpath.NotPresent("$.password")).
			Assert(jsonpath.NotPresent("$.password_hash")).
			End()
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		apitest.New().
			Handler(env.Router).
			Post("/api/users").
			Cookie(AccessTokenCookie, access).
			JSON(`{"first_name":"New","last_name":"Staff","email":"staff@example.com","password":"a-long-password"}`).
			Expect(t).
			Status(http.StatusConflict).
			Assert(jsonpath.Equal("$.error", "ALREADY_EXISTS")).
			End()
	})

	t.Run("list hides hashes", func(t *testing.T) {
		apitest.New().
			Handler(env.Router).
			Get("/api/users").
			Cookie(AccessTokenCookie, access).
			Expect(t).
			Status(http.StatusOK).
			Assert(jsonpath.NotPresent("$[0].password_hash")).
			End()
	})

	t.Run("new user can authenticate", func(t *testing.T) {
		apitest.New().
			Handler(env.Router).
			Post("/api/authenticate").
			JSON(`{"email":"staff@example.com","password":"a-long-password"}`).
			Expect(t).
			Status(http.StatusOK).
			CookiePresent(AccessTokenCookie).
			End()
	})
}
