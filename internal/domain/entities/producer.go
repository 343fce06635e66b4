package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// KYC statuses reported by the provider that change kycCompleted
const (
	ProviderKYCVerified = "verified"
	ProviderKYCPending  = "pending"
	ProviderKYCRejected = "rejected"
)

// BankDetails is the settlement account captured during manual KYC
type BankDetails struct {
	AccountNumber   string `json:"accountNumber" binding:"required,numeric,min=6,max=20"`
	IFSCCode        string `json:"ifscCode" binding:"required,alphanum,len=11"`
	BeneficiaryName string `json:"beneficiaryName" binding:"required,min=2,max=120"`
}

// Producer is the per-producer payout record
type Producer struct {
	ProducerID            string       `json:"producerId"`
	LinkedAccountID       null.String  `json:"linkedAccountId"`
	KYCCompleted          bool         `json:"kycCompleted"`
	RazorpayAccountStatus null.String  `json:"razorpayAccountStatus"`
	RazorpayKYCStatus     null.String  `json:"razorpayKycStatus"`
	BankDetails           *BankDetails `json:"bankDetails,omitempty"`
	StatusEventAt         null.Int64   `json:"statusEventAt,omitempty"`
	Version               int64        `json:"version"`
	CreatedAt             time.Time    `json:"createdAt"`
	UpdatedAt             time.Time    `json:"updatedAt"`
}

// HasLinkedAccount reports whether a provider account id is stored
func (p *Producer) HasLinkedAccount() bool {
	return p.LinkedAccountID.Valid && p.LinkedAccountID.String != ""
}

// IsStaleEvent reports whether an event created at eventAt (unix seconds)
// is older than the last one applied. Events without a timestamp are never stale.
func (p *Producer) IsStaleEvent(eventAt int64) bool {
	return eventAt > 0 && p.StatusEventAt.Valid && p.StatusEventAt.Int64 > eventAt
}

// ReconcileStatus computes the write that brings p in line with the
// provider's account and KYC status.
func (p *Producer) ReconcileStatus(accountStatus, kycStatus string, eventAt int64) StatusWrite {
	write := StatusWrite{
		AccountStatus: accountStatus,
		KYCStatus:     kycStatus,
		KYCCompleted:  KYCCompletedFor(kycStatus, p.KYCCompleted),
		EventAt:       p.StatusEventAt,
	}
	if eventAt > 0 {
		write.EventAt = null.Int64From(eventAt)
	}
	return write
}

// KYCCompletedFor maps a provider KYC status to kycCompleted; statuses other
// than verified/pending/rejected keep the current value.
func KYCCompletedFor(kycStatus string, current bool) bool {
	switch kycStatus {
	case ProviderKYCVerified:
		return true
	case ProviderKYCPending, ProviderKYCRejected:
		return false
	default:
		return current
	}
}

// StatusWrite is the reconciliation write applied with a version check
type StatusWrite struct {
	AccountStatus string
	KYCStatus     string
	KYCCompleted  bool
	EventAt       null.Int64
}

// ProducerFields is a partial update; nil fields are left untouched
type ProducerFields struct {
	LinkedAccountID       *string
	RazorpayAccountStatus *string
	KYCCompleted          *bool
	BankDetails           *BankDetails
}

// IsEmpty reports whether no field is set
func (f ProducerFields) IsEmpty() bool {
	return f.LinkedAccountID == nil && f.RazorpayAccountStatus == nil && f.KYCCompleted == nil && f.BankDetails == nil
}

// KYCStatusResponse is the public KYC snapshot of a producer
type KYCStatusResponse struct {
	ProducerID            string      `json:"producerId"`
	LinkedAccountID       null.String `json:"linkedAccountId"`
	KYCCompleted          bool        `json:"kycCompleted"`
	RazorpayAccountStatus null.String `json:"razorpayAccountStatus"`
	RazorpayKYCStatus     null.String `json:"razorpayKycStatus"`
	HasBankDetails        bool        `json:"hasBankDetails"`
}
