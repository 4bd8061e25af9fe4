package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/custdesk/custdesk/pkg/authsdk"
	"github.com/custdesk/custdesk/pkg/slogx"
)

// CustomerAPI is the slice of the API client the customer pages use.
type CustomerAPI interface {
	ListCustomers(ctx context.Context, token string) ([]authsdk.Customer, error)
	GetCustomer(ctx context.Context, token, id string) (authsdk.Customer, error)
	CreateCustomer(ctx context.Context, token string, in authsdk.CustomerInput) (authsdk.Customer, error)
	UpdateCustomer(ctx context.Context, token, id string, in authsdk.CustomerInput) (authsdk.Customer, error)
	DeleteCustomer(ctx context.Context, token, id string) error
}

// CustomersListHandler renders the customer table. Write affordances only
// show for sessions carrying the Admin role.
func (rt *Router) CustomersListHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
		return
	}

	data := pageData{
		Email:    sess.Decision.Email,
		CanWrite: sess.Decision.HasRole("Admin"),
	}

	customers, err := rt.API.ListCustomers(r.Context(), sess.Token)
	if err != nil {
		slogx.FromContext(r.Context()).Error("list customers failed", "err", err)
		data.Error = "could not load customers, try again shortly"
	}
	data.Customers = customers

	renderPage(w, r, http.StatusOK, "customers.html", data)
}

// CustomerNewHandler renders the empty customer form.
func (rt *Router) CustomerNewHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())
	renderPage(w, r, http.StatusOK, "customer_form.html", pageData{
		Email:  sess.Decision.Email,
		Action: "/customers",
	})
}

// CustomerCreateHandler creates a customer from the posted form.
func (rt *Router) CustomerCreateHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	in, err := customerInputFromForm(r)
	if err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	if _, err := rt.API.CreateCustomer(r.Context(), sess.Token, in); err != nil {
		renderPage(w, r, formErrorStatus(err), "customer_form.html", pageData{
			Email:    sess.Decision.Email,
			Error:    formErrorMessage(r.Context(), err),
			Action:   "/customers",
			Customer: authsdk.Customer{Name: in.Name, Email: in.Email, Phone: in.Phone},
		})
		return
	}
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

// CustomerEditHandler renders the form pre-filled with an existing
// customer.
func (rt *Router) CustomerEditHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())
	id := r.PathValue("id")

	c, err := rt.API.GetCustomer(r.Context(), sess.Token, id)
	if err != nil {
		if errors.Is(err, authsdk.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slogx.FromContext(r.Context()).Error("get customer failed", "err", err)
		http.Error(w, "customer unavailable", http.StatusBadGateway)
		return
	}

	renderPage(w, r, http.StatusOK, "customer_form.html", pageData{
		Email:    sess.Decision.Email,
		Action:   "/customers/" + id,
		Customer: c,
	})
}

// CustomerUpdateHandler applies the posted form to an existing customer.
func (rt *Router) CustomerUpdateHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())
	id := r.PathValue("id")

	in, err := customerInputFromForm(r)
	if err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	if _, err := rt.API.UpdateCustomer(r.Context(), sess.Token, id, in); err != nil {
		if errors.Is(err, authsdk.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		renderPage(w, r, formErrorStatus(err), "customer_form.html", pageData{
			Email:    sess.Decision.Email,
			Error:    formErrorMessage(r.Context(), err),
			Action:   "/customers/" + id,
			Customer: authsdk.Customer{ID: id, Name: in.Name, Email: in.Email, Phone: in.Phone},
		})
		return
	}
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

// CustomerDeleteHandler removes a customer and returns to the table.
func (rt *Router) CustomerDeleteHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	if err := rt.API.DeleteCustomer(r.Context(), sess.Token, r.PathValue("id")); err != nil &&
		!errors.Is(err, authsdk.ErrNotFound) {
		slogx.FromContext(r.Context()).Error("delete customer failed", "err", err)
	}
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

func customerInputFromForm(r *http.Request) (authsdk.CustomerInput, error) {
	if err := r.ParseForm(); err != nil {
		return authsdk.CustomerInput{}, err
	}
	return authsdk.CustomerInput{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
		Phone: r.PostFormValue("phone"),
	}, nil
}

func formErrorStatus(err error) int {
	switch {
	case errors.Is(err, authsdk.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, authsdk.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func formErrorMessage(ctx context.Context, err error) string {
	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case authsdk.ErrorCodeInvalidRequest:
			return apiErr.Description
		case authsdk.ErrorCodeConflict:
			return "a customer with that email already exists"
		}
	}
	slogx.FromContext(ctx).Error("customer write failed", "err", err)
	return "could not save the customer, try again shortly"
}
