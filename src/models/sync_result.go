package models

import "time"

type OutcomeKind string

const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomeSkipped OutcomeKind = "skipped"
	OutcomeFailed  OutcomeKind = "error"
)

const (
	SkipNoConnection    = "no connection"
	SkipNoRemoteAccount = "no accounts found"
)

// AccountOutcome is the result of synchronizing one internal account.
// Exactly one of the kind-specific fields is meaningful, selected by Kind.
type AccountOutcome struct {
	AccountID       string
	AccountName     string
	Kind            OutcomeKind
	NewTransactions int
	AccountsUpdated int
	Reason          string
	Err             error
}

func Succeeded(acc BankAccount, newTxns, updated int) AccountOutcome {
	return AccountOutcome{AccountID: acc.ID, AccountName: acc.Name, Kind: OutcomeSuccess, NewTransactions: newTxns, AccountsUpdated: updated}
}

func Skipped(acc BankAccount, reason string) AccountOutcome {
	return AccountOutcome{AccountID: acc.ID, AccountName: acc.Name, Kind: OutcomeSkipped, Reason: reason}
}

func Failed(acc BankAccount, err error) AccountOutcome {
	return AccountOutcome{AccountID: acc.ID, AccountName: acc.Name, Kind: OutcomeFailed, Err: err}
}

// SyncResult is the wire shape of an AccountOutcome.
type SyncResult struct {
	AccountID       string `json:"accountId"`
	AccountName     string `json:"accountName"`
	Success         bool   `json:"success,omitempty"`
	Skipped         bool   `json:"skipped,omitempty"`
	NewTransactions *int   `json:"newTransactions,omitempty"`
	AccountsUpdated *int   `json:"accountsUpdated,omitempty"`
	Reason          string `json:"reason,omitempty"`
	Error           string `json:"error,omitempty"`
}

func (o AccountOutcome) Result() SyncResult {
	r := SyncResult{AccountID: o.AccountID, AccountName: o.AccountName}
	switch o.Kind {
	case OutcomeSuccess:
		newTxns, updated := o.NewTransactions, o.AccountsUpdated
		r.Success = true
		r.NewTransactions = &newTxns
		r.AccountsUpdated = &updated
	case OutcomeSkipped:
		r.Skipped = true
		r.Reason = o.Reason
	case OutcomeFailed:
		if o.Err != nil {
			r.Error = o.Err.Error()
		} else {
			r.Error = "unknown error"
		}
	}
	return r
}

type RunSummary struct {
	RunID                string           `json:"runId"`
	Success              bool             `json:"success"`
	TotalNewTransactions int              `json:"totalNewTransactions"`
	AccountsSynced       int              `json:"accountsSynced"`
	StartedAt            time.Time        `json:"startedAt"`
	FinishedAt           time.Time        `json:"finishedAt"`
	Outcomes             []AccountOutcome `json:"-"`
	Results              []SyncResult     `json:"results"`
}

// NewRunSummary folds per-account outcomes into totals. Account failures do not
// flip Success; only run-level errors do, and those never produce a summary.
func NewRunSummary(runID string, startedAt, finishedAt time.Time, outcomes []AccountOutcome) RunSummary {
	s := RunSummary{
		RunID:      runID,
		Success:    true,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Outcomes:   outcomes,
		Results:    make([]SyncResult, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		if o.Kind == OutcomeSuccess {
			s.TotalNewTransactions += o.NewTransactions
			s.AccountsSynced++
		}
		s.Results = append(s.Results, o.Result())
	}
	return s
}
