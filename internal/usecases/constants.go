package usecases

// Reconciler write budget: one read-modify-CAS round per attempt.
const maxReconcileAttempts = 3

// Metric labels for events that are not reconciled, keeping cardinality bounded.
const (
	eventLabelOther   = "other"
	eventLabelUnknown = "unknown"
)

const (
	receiptPrefix      = "rcpt_"
	receiptRandomBytes = 8
)

// Payment signatures cover "<orderId>|<paymentId>"
const paymentSignatureSeparator = "|"
