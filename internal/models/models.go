package models

// Response is one survey submission as fetched from the spreadsheet.
// AccountID is empty until identity resolution succeeds; it is set at
// most once during a run.
type Response struct {
	IdentityClaim string
	SubmittedAt   string
	Team          string
	Extra         map[string]string

	AccountID string
}

// ColumnMap names the survey columns a source maps onto Response fields.
type ColumnMap struct {
	Identity  string
	Timestamp string
	Team      string
}

type RejectReason string

const (
	ReasonUnknownIdentity   RejectReason = "unknown_identity"
	ReasonNotRegistered     RejectReason = "not_registered"
	ReasonAlreadyMember     RejectReason = "already_member"
	ReasonPendingInvitation RejectReason = "pending_invitation"
	ReasonQueryFailed       RejectReason = "query_failed"
)

// Decision is the terminal outcome of evaluating one response.
// Exactly one of Accepted / Reason applies.
type Decision struct {
	Accepted  bool
	AccountID string
	Reason    RejectReason
}

func Accept(accountID string) Decision {
	return Decision{Accepted: true, AccountID: accountID}
}

func Reject(reason RejectReason) Decision {
	return Decision{Reason: reason}
}

// InviteOutcome records one dispatch attempt for the summary report.
type InviteOutcome struct {
	Response Response
	Sent     bool
	Err      error
}
