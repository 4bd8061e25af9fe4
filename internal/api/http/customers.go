package http

import (
	"errors"
	"net/http"

	"github.com/custdesk/custdesk/internal/api/domain"
	"github.com/custdesk/custdesk/internal/api/service"
	"github.com/custdesk/custdesk/internal/api/store"
	"github.com/custdesk/custdesk/pkg/authsdk"
	"github.com/custdesk/custdesk/pkg/httpx"
	"github.com/custdesk/custdesk/pkg/slogx"
)

type CustomersHandler struct {
	CustomerService *service.CustomerService
}

// HandleList godoc
//
//	@Summary	List customers
//	@Tags		Customers
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		authsdk.Customer
//	@Failure	401	{object}	authsdk.ErrorResponse
//	@Router		/api/customers [get].
func (h *CustomersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customers, err := h.CustomerService.List(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("list customers failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	out := make([]authsdk.Customer, len(customers))
	for i, c := range customers {
		out[i] = toAPICustomer(c)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary	Fetch one customer
//	@Tags		Customers
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"customer id"
//	@Success	200	{object}	authsdk.Customer
//	@Failure	404	{object}	authsdk.ErrorResponse
//	@Router		/api/customers/{id} [get].
func (h *CustomersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.CustomerService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeCustomerError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAPICustomer(c))
}

// HandleCreate godoc
//
//	@Summary	Create a customer
//	@Tags		Customers
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		authsdk.CustomerInput	true	"customer fields"
//	@Success	201		{object}	authsdk.Customer
//	@Failure	400		{object}	authsdk.ErrorResponse
//	@Failure	409		{object}	authsdk.ErrorResponse
//	@Router		/api/customers [post].
func (h *CustomersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in authsdk.CustomerInput
	if err := httpx.ReadJSON(r, &in); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	c, err := h.CustomerService.Create(r.Context(), service.CustomerInput{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	})
	if err != nil {
		writeCustomerError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAPICustomer(c))
}

// HandleUpdate godoc
//
//	@Summary	Update a customer
//	@Tags		Customers
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"customer id"
//	@Param		request	body		authsdk.CustomerInput	true	"customer fields"
//	@Success	200		{object}	authsdk.Customer
//	@Failure	404		{object}	authsdk.ErrorResponse
//	@Router		/api/customers/{id} [put].
func (h *CustomersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in authsdk.CustomerInput
	if err := httpx.ReadJSON(r, &in); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	c, err := h.CustomerService.Update(r.Context(), r.PathValue("id"), service.CustomerInput{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	})
	if err != nil {
		writeCustomerError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAPICustomer(c))
}

// HandleDelete godoc
//
//	@Summary	Delete a customer
//	@Tags		Customers
//	@Security	BearerAuth
//	@Param		id	path	string	true	"customer id"
//	@Success	204
//	@Failure	404	{object}	authsdk.ErrorResponse
//	@Router		/api/customers/{id} [delete].
func (h *CustomersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.CustomerService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeCustomerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeCustomerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
	case errors.Is(err, service.ErrDuplicateEmail):
		authsdk.ErrConflict.WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		authsdk.ErrNotFound.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("customer operation failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
	}
}

func toAPICustomer(c domain.Customer) authsdk.Customer {
	return authsdk.Customer{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
