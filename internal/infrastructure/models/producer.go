package models

import "time"

type Producer struct {
	ProducerID            string  `gorm:"column:producer_id;type:varchar(64);primaryKey"`
	LinkedAccountID       *string `gorm:"column:linked_account_id;type:varchar(64);index"`
	KYCCompleted          bool    `gorm:"column:kyc_completed;not null;default:false"`
	RazorpayAccountStatus *string `gorm:"column:razorpay_account_status;type:varchar(50)"`
	RazorpayKYCStatus     *string `gorm:"column:razorpay_kyc_status;type:varchar(50)"`
	BankAccountNumber     *string `gorm:"column:bank_account_number;type:varchar(32)"`
	BankIFSCCode          *string `gorm:"column:bank_ifsc_code;type:varchar(11)"`
	BankBeneficiaryName   *string `gorm:"column:bank_beneficiary_name;type:varchar(120)"`
	StatusEventAt         *int64  `gorm:"column:status_event_at"`
	Version               int64   `gorm:"column:version;not null;default:0"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (Producer) TableName() string {
	return "producers"
}
