package entities

// CreateLinkedAccountInput registers a producer as a provider linked account
type CreateLinkedAccountInput struct {
	ProducerID        string `json:"producerId" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Phone             string `json:"phone" binding:"required,numeric,min=8,max=15"`
	LegalBusinessName string `json:"legalBusinessName" binding:"required,min=4,max=200"`
	ContactName       string `json:"contactName" binding:"required,min=2,max=255"`
	BusinessType      string `json:"businessType" binding:"required,oneof=individual proprietorship partnership private_limited public_limited llp ngo trust society not_yet_registered"`
	ReferenceID       string `json:"referenceId,omitempty" binding:"omitempty,max=512"`
}

// LinkedAccountResponse is returned after linked-account creation
type LinkedAccountResponse struct {
	ProducerID      string `json:"producerId"`
	LinkedAccountID string `json:"linkedAccountId"`
	Status          string `json:"status"`
}

// CompleteKYCInput carries manually collected KYC data
type CompleteKYCInput struct {
	LinkedAccountID string      `json:"linkedAccountId,omitempty"`
	BankDetails     BankDetails `json:"bankDetails" binding:"required"`
	TncAccepted     bool        `json:"tncAccepted"`
}

// CreateTransferInput moves funds to a producer's linked account
type CreateTransferInput struct {
	ProducerID string            `json:"producerId" binding:"required"`
	Amount     string            `json:"amount" binding:"required"`
	Currency   string            `json:"currency,omitempty" binding:"omitempty,len=3,uppercase"`
	Notes      map[string]string `json:"notes,omitempty"`
}

// TransferResponse describes a created transfer
type TransferResponse struct {
	TransferID      string `json:"transferId"`
	ProducerID      string `json:"producerId"`
	LinkedAccountID string `json:"linkedAccountId"`
	Amount          string `json:"amount"`
	AmountMinor     int64  `json:"amountMinor"`
	Currency        string `json:"currency"`
	Status          string `json:"status,omitempty"`
}

// CreateOrderInput creates a provider order for checkout
type CreateOrderInput struct {
	Amount   string            `json:"amount" binding:"required"`
	Currency string            `json:"currency,omitempty" binding:"omitempty,len=3,uppercase"`
	Receipt  string            `json:"receipt,omitempty" binding:"omitempty,max=40"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// OrderResponse describes a created order
type OrderResponse struct {
	OrderID     string `json:"orderId"`
	Amount      string `json:"amount"`
	AmountMinor int64  `json:"amountMinor"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	Status      string `json:"status"`
}

// VerifyPaymentInput is the checkout callback triple
type VerifyPaymentInput struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required,hexadecimal"`
}

// DefaultCurrency is used when a request omits currency
const DefaultCurrency = "INR"
