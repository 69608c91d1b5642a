package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeExpenseSubmitted = "expense.submitted"
	TypeApprovalDecided  = "approval.decided"
)

func NewExpenseSubmitted(expenseID, userID string, amount float64, currency string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      TypeExpenseSubmitted,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"expense_id": expenseID,
			"user_id":    userID,
			"amount":     amount,
			"currency":   currency,
		},
	}
}

func NewApprovalDecided(approvalID, expenseID, approverID, status string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      TypeApprovalDecided,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"approval_id": approvalID,
			"expense_id":  expenseID,
			"approver_id": approverID,
			"status":      status,
		},
	}
}
