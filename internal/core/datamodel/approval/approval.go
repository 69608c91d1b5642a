// Package approval holds the stored shapes of approval steps and approval
// rules.
package approval

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	RulePercentage = "percentage"
	RuleSpecific   = "specific"
	RuleHybrid     = "hybrid"
)

const (
	StepKeyPrefix = "approval:"
	RuleKeyPrefix = "rule:"
)

func StepKey(id string) string {
	return StepKeyPrefix + id
}

func RuleKey(id string) string {
	return RuleKeyPrefix + id
}

// Step is one pending/approved/rejected decision tied to one expense and one
// approver.
type Step struct {
	ID         string     `json:"id"`
	ExpenseID  string     `json:"expense_id"`
	ApproverID string     `json:"approver_id"`
	Status     string     `json:"status"`
	Comments   string     `json:"comments,omitempty"`
	Sequence   int        `json:"sequence"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Rule is admin-configured approval policy. Rules are stored and listed but
// not evaluated when steps are decided; single-manager approval is the
// operative behavior.
type Rule struct {
	ID                  string    `json:"id"`
	CompanyID           string    `json:"company_id"`
	RuleType            string    `json:"rule_type"`
	PercentageThreshold *float64  `json:"percentage_threshold,omitempty"`
	SpecificApproverID  *string   `json:"specific_approver_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

func ValidRuleType(t string) bool {
	return t == RulePercentage || t == RuleSpecific || t == RuleHybrid
}

func ValidDecision(status string) bool {
	return status == StatusApproved || status == StatusRejected
}
