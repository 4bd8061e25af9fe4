package custdesk_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/custdesk/custdesk/internal/api/domain"
	apihttp "github.com/custdesk/custdesk/internal/api/http"
	apiservice "github.com/custdesk/custdesk/internal/api/service"
	"github.com/custdesk/custdesk/internal/api/store"
	"github.com/custdesk/custdesk/internal/api/store/drivers/sqlite"
	webhttp "github.com/custdesk/custdesk/internal/web/http"
	webservice "github.com/custdesk/custdesk/internal/web/service"
	"github.com/custdesk/custdesk/pkg/authsdk"
	"github.com/custdesk/custdesk/pkg/cachex"
	"github.com/custdesk/custdesk/pkg/cryptox"
	"github.com/custdesk/custdesk/pkg/idx"
	"github.com/custdesk/custdesk/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

const (
	adminEmail    = "admin@example.com"
	staffEmail    = "staff@example.com"
	adminPassword = "hunter22hunter22"
	staffPassword = "staffpassword22"
)

// startAPI runs the customer API on an httptest server with a fresh
// database seeded with one admin and one staff user.
func startAPI(t *testing.T) (string, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	seedUser(t, st, adminEmail, adminPassword, domain.RoleAdmin)
	seedUser(t, st, staffEmail, staffPassword, domain.RoleStaff)

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewCommonHS256(testSecret, "customer-api", []string{"web"})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := apihttp.NewRouter(verifier, "e2e", st, logger)
	router.AuthService = apiservice.NewAuthService(
		st, signer, verifier, "customer-api", []string{"web"}, 12*time.Hour,
	)
	router.CustomerService = apiservice.NewCustomerService(st)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL, st
}

func seedUser(t *testing.T, st store.Store, email, password, roleName string) {
	t.Helper()
	ctx := context.Background()

	role, err := st.Roles().GetRoleByName(ctx, roleName)
	require.NoError(t, err)

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	require.NoError(t, st.Users().CreateUser(ctx, domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         "E2E " + roleName,
		PasswordHash: hash,
		RoleID:       role.ID,
	}))
}

// startWeb runs the web tier on an httptest server wired to a live API
// through the real SDK client and an in-memory cache.
func startWeb(t *testing.T, apiURL string) (string, *authsdk.Client) {
	t.Helper()

	cache := cachex.NewMemory()
	t.Cleanup(func() { _ = cache.Close() })

	client := authsdk.NewClient(
		apiURL,
		authsdk.WithChannel("https://web.custdesk.local"),
		authsdk.WithCache(cache, cachex.DefaultTTL),
	)

	router := webhttp.NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	router.SessionService = &webservice.SessionService{Gate: client}
	router.API = client
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL, client
}

// webLogin drives the login form and returns the AuthToken cookie. The
// cookie is Secure, so tests carry it by hand instead of through a jar.
func webLogin(t *testing.T, webURL, email, password string) *http.Cookie {
	t.Helper()

	resp := postForm(t, webURL+"/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/customers", resp.Header.Get("Location"))

	for _, c := range resp.Cookies() {
		if c.Name == webhttp.AuthCookieName {
			return c
		}
	}
	t.Fatal("login response carried no auth cookie")
	return nil
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, rawURL string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	return resp
}

func postForm(t *testing.T, rawURL string, cookie *http.Cookie, fields map[string]string) *http.Response {
	t.Helper()

	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}

	req, err := http.NewRequest(http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
