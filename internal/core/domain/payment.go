package domain

// PaymentApplication bundles the full effect of one accepted loan payment so
// the persistence layer can commit it as a single atomic unit: the updated
// loan, the entry frozen as paid, the regenerated pending tail (if any) and
// the funding ledger leg (if non-cash).
type PaymentApplication struct {
	Loan      Loan
	PaidEntry ScheduleEntry
	// ReplaceTailAfter indicates pending entries with sequence greater than
	// PaidEntry.Sequence must be discarded and replaced by RegeneratedTail
	// (which may be empty, e.g. on early full payoff).
	ReplaceTailAfter bool
	RegeneratedTail  []ScheduleEntry
	// ReleaseHolds is set when the caller expects the payment to drive the
	// loan to FULLY_PAID. The persistence layer re-derives the decision from
	// the schedule it commits and releases active guarantor holds then.
	ReleaseHolds bool
	LedgerEntry  *LedgerEntry
}

// PaymentResult is what a successful payment application reports back to the
// calling layer.
type PaymentResult struct {
	Loan          Loan            `json:"loan"`
	PaidEntry     ScheduleEntry   `json:"paidEntry"`
	NewEntries    []ScheduleEntry `json:"newEntries,omitempty"`
	LedgerEntryID *string         `json:"ledgerEntryID,omitempty"`
}

// PaymentReversal bundles the atomic effect of the administrative
// delete-payment override: the repayment ledger leg cancelled, the schedule
// entry reopened and the loan totals recomputed.
type PaymentReversal struct {
	Loan          Loan
	ReopenedEntry ScheduleEntry
	LedgerEntryID string
}
