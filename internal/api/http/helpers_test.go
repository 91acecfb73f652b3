package http

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/internal/api/domain"
	"github.com/aussiebroadwan/tally/internal/api/service"
	"github.com/aussiebroadwan/tally/internal/api/store"
	"github.com/aussiebroadwan/tally/internal/api/store/drivers/sqlite"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/idx"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// TestMain loosens the rate limit profiles; every httptest request shares
// the same RemoteAddr, so the production strict profile would throttle the
// suite itself.
func TestMain(m *testing.M) {
	relaxed := httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}
	httpx.StrictLimit = relaxed
	httpx.ModerateLimit = relaxed
	httpx.LenientLimit = relaxed
	os.Exit(m.Run())
}

type testEnv struct {
	Router   *Router
	Store    store.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	signer, err := jwtx.NewSignerRS256(privPEM)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierRS256(pubPEM, "tally-test")
	require.NoError(t, err)

	return newTestEnvWithKeys(t, st, signer, verifier)
}

// newTestEnvWithKeys allows nil signer/verifier to exercise the
// missing-key-material paths.
func newTestEnvWithKeys(t *testing.T, st store.Store, signer jwtx.Signer, verifier jwtx.Verifier) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(verifier, "test", st, logger)

	router.AuthService = &service.AuthService{
		Signer:   signer,
		Verifier: verifier,
		Store:    st,
		Issuer:   "tally-test",
	}
	router.UserService = &service.UserService{Store: st}
	router.CustomerService = &service.CustomerService{Store: st}
	router.ProductService = &service.ProductService{Store: st}
	router.SaleService = &service.SaleService{Store: st}
	router.ApplyRoutes()

	return &testEnv{Router: router, Store: st, Signer: signer, Verifier: verifier}
}

func (e *testEnv) seedUser(t *testing.T, email, password string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	user := domain.User{
		ID:           idx.New().String(),
		FirstName:    "Sam",
		LastName:     "Taylor",
		Email:        email,
		PasswordHash: hash,
	}
	require.NoError(t, e.Store.Users().CreateUser(context.Background(), user))
	return user
}

// login performs a real authenticate request and returns the issued cookie
// values by name.
func (e *testEnv) login(t *testing.T, email, password string) map[string]string {
	t.Helper()

	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/authenticate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	e.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	cookies := map[string]string{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c.Value
	}
	require.Contains(t, cookies, AccessTokenCookie)
	require.Contains(t, cookies, RefreshTokenCookie)
	return cookies
}
