package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/custdesk/custdesk/internal/web/service"
	"github.com/custdesk/custdesk/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// fakeGate scripts the API's auth surface. Tokens map to decisions;
// anything else is denied, matching the real gate's fail-closed shape.
type fakeGate struct {
	decisions map[string]authsdk.Decision
	loginOK   map[string]string // email -> token when password is "hunter22"
	loggedOut []string
}

func (g *fakeGate) Login(_ context.Context, email, password string) (string, error) {
	if token, ok := g.loginOK[email]; ok && password == "hunter22" {
		return token, nil
	}
	return "", authsdk.ErrInvalidCredentials
}

func (g *fakeGate) Logout(_ context.Context, email, _ string) {
	g.loggedOut = append(g.loggedOut, email)
}

func (g *fakeGate) CheckAuthorization(_ context.Context, token string) authsdk.Decision {
	return g.decisions[token]
}

type fakeAPI struct {
	customers []authsdk.Customer
	created   []authsdk.CustomerInput
	deleted   []string
}

func (a *fakeAPI) ListCustomers(context.Context, string) ([]authsdk.Customer, error) {
	return a.customers, nil
}

func (a *fakeAPI) GetCustomer(_ context.Context, _, id string) (authsdk.Customer, error) {
	for _, c := range a.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return authsdk.Customer{}, authsdk.ErrNotFound
}

func (a *fakeAPI) CreateCustomer(_ context.Context, _ string, in authsdk.CustomerInput) (authsdk.Customer, error) {
	a.created = append(a.created, in)
	return authsdk.Customer{ID: "01TESTCREATED000000000000A", Name: in.Name, Email: in.Email}, nil
}

func (a *fakeAPI) UpdateCustomer(_ context.Context, _, id string, in authsdk.CustomerInput) (authsdk.Customer, error) {
	return authsdk.Customer{ID: id, Name: in.Name, Email: in.Email}, nil
}

func (a *fakeAPI) DeleteCustomer(_ context.Context, _, id string) error {
	a.deleted = append(a.deleted, id)
	return nil
}

func newWebEnv(t *testing.T) (*fakeGate, *fakeAPI, *Router) {
	t.Helper()

	gate := &fakeGate{
		decisions: map[string]authsdk.Decision{
			"admin-token": {Authenticated: true, Subject: "u-admin", Email: "admin@example.com", Roles: []string{"Admin"}},
			"staff-token": {Authenticated: true, Subject: "u-staff", Email: "staff@example.com", Roles: []string{"Staff"}},
		},
		loginOK: map[string]string{
			"admin@example.com": "admin-token",
		},
	}
	api := &fakeAPI{}

	rt := NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	rt.SessionService = &service.SessionService{Gate: gate}
	rt.API = api
	rt.ApplyRoutes()

	return gate, api, rt
}

func doRequest(rt *Router, method, path, token string, form url.Values, hdr http.Header) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	r := httptest.NewRequest(method, path, body)
	if form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		r.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	}
	for k, vs := range hdr {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, r)
	return w
}

func TestFilterRejectsWithoutSession(t *testing.T) {
	_, _, rt := newWebEnv(t)

	t.Run("browser is redirected to /unauthorized", func(t *testing.T) {
		w := doRequest(rt, http.MethodGet, "/customers", "", nil, nil)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/unauthorized", w.Header().Get("Location"))
	})

	t.Run("json caller gets 401", func(t *testing.T) {
		hdr := http.Header{"Accept": []string{"application/json"}}
		w := doRequest(rt, http.MethodGet, "/customers", "", nil, hdr)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "invalid_token")
	})

	t.Run("unknown token is denied", func(t *testing.T) {
		w := doRequest(rt, http.MethodGet, "/customers", "forged-token", nil, nil)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/unauthorized", w.Header().Get("Location"))
	})
}

func TestFilterRoleEnforcement(t *testing.T) {
	_, api, rt := newWebEnv(t)

	t.Run("staff can view the list", func(t *testing.T) {
		w := doRequest(rt, http.MethodGet, "/customers", "staff-token", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotContains(t, w.Body.String(), "Add customer")
	})

	t.Run("staff cannot reach the create form", func(t *testing.T) {
		w := doRequest(rt, http.MethodGet, "/customers/new", "staff-token", nil, nil)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/unauthorized", w.Header().Get("Location"))
	})

	t.Run("staff posts never reach the API", func(t *testing.T) {
		form := url.Values{"name": {"Blocked"}, "email": {"blocked@example.com"}}
		w := doRequest(rt, http.MethodPost, "/customers", "staff-token", form, nil)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Empty(t, api.created)
	})

	t.Run("admin sees write affordances", func(t *testing.T) {
		w := doRequest(rt, http.MethodGet, "/customers", "admin-token", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "Add customer")
	})

	t.Run("admin create goes through", func(t *testing.T) {
		form := url.Values{"name": {"Acme"}, "email": {"acme@example.com"}}
		w := doRequest(rt, http.MethodPost, "/customers", "admin-token", form, nil)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/customers", w.Header().Get("Location"))
		require.Len(t, api.created, 1)
		require.Equal(t, "Acme", api.created[0].Name)
	})
}

func TestLoginFlow(t *testing.T) {
	_, _, rt := newWebEnv(t)

	t.Run("successful login plants the cookie", func(t *testing.T) {
		form := url.Values{"email": {"admin@example.com"}, "password": {"hunter22"}}
		w := doRequest(rt, http.MethodPost, "/login", "", form, nil)

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/customers", w.Header().Get("Location"))

		var auth *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == AuthCookieName {
				auth = c
			}
		}
		require.NotNil(t, auth)
		require.Equal(t, "admin-token", auth.Value)
		require.True(t, auth.HttpOnly)
		require.True(t, auth.Secure)
		require.Equal(t, http.SameSiteStrictMode, auth.SameSite)
	})

	t.Run("bad credentials re-render the form", func(t *testing.T) {
		form := url.Values{"email": {"admin@example.com"}, "password": {"wrong"}}
		w := doRequest(rt, http.MethodPost, "/login", "", form, nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "invalid email or password")
		for _, c := range w.Result().Cookies() {
			require.NotEqual(t, AuthCookieName, c.Name)
		}
	})

	t.Run("logged-in visitor skips the form", func(t *testing.T) {
		w := doRequest(rt, http.MethodGet, "/login", "admin-token", nil, nil)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/customers", w.Header().Get("Location"))
	})
}

func TestLogout(t *testing.T) {
	gate, _, rt := newWebEnv(t)

	w := doRequest(rt, http.MethodPost, "/logout", "admin-token", nil, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
	require.Equal(t, []string{"admin@example.com"}, gate.loggedOut)

	var auth *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == AuthCookieName {
			auth = c
		}
	}
	require.NotNil(t, auth)
	require.Empty(t, auth.Value)
	require.Negative(t, auth.MaxAge)
}

func TestVisitorCookie(t *testing.T) {
	_, _, rt := newWebEnv(t)

	t.Run("assigned when absent", func(t *testing.T) {
		w := doRequest(rt, http.MethodGet, "/", "", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var visitor *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == VisitorCookieName {
				visitor = c
			}
		}
		require.NotNil(t, visitor)
		require.Len(t, visitor.Value, 26)
		require.True(t, visitor.HttpOnly)
	})

	t.Run("kept when present", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: VisitorCookieName, Value: "01EXISTING000000000000000A"})
		w := httptest.NewRecorder()
		rt.ServeHTTP(w, r)

		for _, c := range w.Result().Cookies() {
			require.NotEqual(t, VisitorCookieName, c.Name)
		}
	})
}
