package entities

// Provider account webhook event types that trigger reconciliation
const (
	EventAccountActivated = "account.activated"
	EventAccountUpdated   = "account.updated"
)

// AccountEntity is the provider account snapshot carried by an event
type AccountEntity struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	KYCStatus string `json:"kyc_status"`
}

// AccountWebhookEvent is the parsed body of an authenticated webhook delivery
type AccountWebhookEvent struct {
	Event     string `json:"event"`
	CreatedAt int64  `json:"created_at"`
	Payload   struct {
		Account struct {
			Entity AccountEntity `json:"entity"`
		} `json:"account"`
	} `json:"payload"`
}

// Account returns the embedded account entity
func (e *AccountWebhookEvent) Account() AccountEntity {
	return e.Payload.Account.Entity
}

// IsReconcilable reports whether the event type updates producer status
func (e *AccountWebhookEvent) IsReconcilable() bool {
	return e.Event == EventAccountActivated || e.Event == EventAccountUpdated
}

// WebhookOutcome is the terminal state of one delivery, used for logs and metrics
type WebhookOutcome string

const (
	OutcomeReconciled WebhookOutcome = "reconciled"
	OutcomeIgnored    WebhookOutcome = "ignored"
	OutcomeStale      WebhookOutcome = "stale"
	OutcomeLookupMiss WebhookOutcome = "lookup_miss"
	OutcomeMalformed  WebhookOutcome = "malformed"
	OutcomeStoreError WebhookOutcome = "store_error"
	OutcomeRejected   WebhookOutcome = "rejected"
)
