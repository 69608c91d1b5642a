package approval

import (
	"errors"
	"fmt"

	approvalmodel "github.com/expenseflow/expenseflow/internal/core/datamodel/approval"
)

// DecideDTO is the POST /approvals/{approvalID} payload.
type DecideDTO struct {
	Status   string `json:"status"`
	Comments string `json:"comments,omitempty"`
}

func (dto *DecideDTO) Validate() error {
	if dto.Status == "" {
		return errors.New("status is required")
	}
	if !approvalmodel.ValidDecision(dto.Status) {
		return errors.New("status must be either 'approved' or 'rejected'")
	}
	return nil
}

// CreateRuleDTO is the POST /approval-rules payload.
type CreateRuleDTO struct {
	RuleType            string   `json:"rule_type"`
	PercentageThreshold *float64 `json:"percentage_threshold,omitempty"`
	SpecificApproverID  *string  `json:"specific_approver_id,omitempty"`
}

func (dto *CreateRuleDTO) Validate() error {
	if !approvalmodel.ValidRuleType(dto.RuleType) {
		return fmt.Errorf("rule_type must be one of percentage, specific, hybrid")
	}
	switch dto.RuleType {
	case approvalmodel.RulePercentage:
		if dto.PercentageThreshold == nil {
			return errors.New("percentage_threshold is required for percentage rules")
		}
	case approvalmodel.RuleSpecific:
		if dto.SpecificApproverID == nil || *dto.SpecificApproverID == "" {
			return errors.New("specific_approver_id is required for specific rules")
		}
	case approvalmodel.RuleHybrid:
		if dto.PercentageThreshold == nil && (dto.SpecificApproverID == nil || *dto.SpecificApproverID == "") {
			return errors.New("hybrid rules need a percentage_threshold or a specific_approver_id")
		}
	}
	if dto.PercentageThreshold != nil && (*dto.PercentageThreshold <= 0 || *dto.PercentageThreshold > 100) {
		return errors.New("percentage_threshold must be between 0 and 100")
	}
	return nil
}
