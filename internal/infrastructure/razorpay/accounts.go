package razorpay

import (
	"context"
	"net/http"
	"net/url"
)

// AccountTypeRoute marks a linked account for Route transfers
const AccountTypeRoute = "route"

type CreateAccountRequest struct {
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Type              string `json:"type"`
	ReferenceID       string `json:"reference_id,omitempty"`
	LegalBusinessName string `json:"legal_business_name"`
	BusinessType      string `json:"business_type"`
	ContactName       string `json:"contact_name"`
}

type Account struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	Status            string `json:"status"`
	Email             string `json:"email"`
	ReferenceID       string `json:"reference_id"`
	LegalBusinessName string `json:"legal_business_name"`
	CreatedAt         int64  `json:"created_at"`
}

// CreateAccount creates a linked account.
// POST /v2/accounts
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (*Account, error) {
	if req.Type == "" {
		req.Type = AccountTypeRoute
	}
	var account Account
	if err := c.do(ctx, retryUnsent, http.MethodPost, "/v2/accounts", req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// ProductRoute is the product configuration that enables settlements
const ProductRoute = "route"

type SettlementDetails struct {
	AccountNumber   string `json:"account_number"`
	IFSCCode        string `json:"ifsc_code"`
	BeneficiaryName string `json:"beneficiary_name"`
}

type requestProductBody struct {
	ProductName string `json:"product_name"`
	TncAccepted bool   `json:"tnc_accepted"`
}

type updateProductBody struct {
	Settlements SettlementDetails `json:"settlements"`
	TncAccepted bool              `json:"tnc_accepted"`
}

type Product struct {
	ID               string `json:"id"`
	AccountID        string `json:"account_id"`
	ProductName      string `json:"product_name"`
	ActivationStatus string `json:"activation_status"`
}

// RequestProduct requests the route product configuration for an account.
// POST /v2/accounts/{id}/products
func (c *Client) RequestProduct(ctx context.Context, accountID string, tncAccepted bool) (*Product, error) {
	var product Product
	path := "/v2/accounts/" + url.PathEscape(accountID) + "/products"
	body := requestProductBody{ProductName: ProductRoute, TncAccepted: tncAccepted}
	if err := c.do(ctx, retryUnsent, http.MethodPost, path, body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProductSettlements attaches settlement bank details to a product.
// PATCH /v2/accounts/{id}/products/{product_id}
func (c *Client) UpdateProductSettlements(ctx context.Context, accountID, productID string, settlements SettlementDetails, tncAccepted bool) (*Product, error) {
	var product Product
	path := "/v2/accounts/" + url.PathEscape(accountID) + "/products/" + url.PathEscape(productID)
	body := updateProductBody{Settlements: settlements, TncAccepted: tncAccepted}
	if err := c.do(ctx, retrySafe, http.MethodPatch, path, body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
