package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListCustomers returns every customer visible to the caller.
func (c *Client) ListCustomers(ctx context.Context, token string) ([]Customer, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/customers", token, nil)
	if err != nil {
		return nil, err
	}

	var out []Customer
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCustomer fetches one customer by id.
func (c *Client) GetCustomer(ctx context.Context, token, id string) (Customer, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/customers/"+url.PathEscape(id), token, nil)
	if err != nil {
		return Customer{}, err
	}

	var out Customer
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return Customer{}, err
	}
	return out, nil
}

// CreateCustomer creates a customer. Requires the Admin role.
func (c *Client) CreateCustomer(ctx context.Context, token string, in CustomerInput) (Customer, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/customers", token, in)
	if err != nil {
		return Customer{}, err
	}

	var out Customer
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return Customer{}, err
	}
	return out, nil
}

// UpdateCustomer replaces a customer's writable fields. Requires Admin.
func (c *Client) UpdateCustomer(ctx context.Context, token, id string, in CustomerInput) (Customer, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/api/customers/"+url.PathEscape(id), token, in)
	if err != nil {
		return Customer{}, err
	}

	var out Customer
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return Customer{}, err
	}
	return out, nil
}

// DeleteCustomer removes a customer. Requires Admin.
func (c *Client) DeleteCustomer(ctx context.Context, token, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/customers/"+url.PathEscape(id), token, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
