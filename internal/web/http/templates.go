package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/custdesk/custdesk/pkg/authsdk"
	"github.com/custdesk/custdesk/pkg/slogx"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages holds one parsed template set per page, each sharing the layout.
var pages = func() map[string]*template.Template {
	names := []string{
		"home.html",
		"login.html",
		"customers.html",
		"customer_form.html",
		"unauthorized.html",
	}

	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(template.ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+name,
		))
	}
	return out
}()

// pageData carries everything the layout and pages can render. Pages read
// only the fields their handler fills in.
type pageData struct {
	Email string
	Error string

	Form struct {
		Email string
	}

	Customers []authsdk.Customer
	CanWrite  bool
	Customer  authsdk.Customer
	Action    string
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	tmpl, ok := pages[name]
	if !ok {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slogx.FromContext(r.Context()).Error("render failed", "page", name, "err", err)
	}
}
