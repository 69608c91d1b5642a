package user

import (
	"errors"
	"fmt"
	"strings"
)

type CreateUserDTO struct {
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	ManagerID *string `json:"manager_id,omitempty"`
}

func (dto *CreateUserDTO) Validate() error {
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	if dto.Email == "" || !strings.Contains(dto.Email, "@") {
		return errors.New("a valid email is required")
	}
	if strings.TrimSpace(dto.Name) == "" {
		return errors.New("name is required")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if dto.Role == "" {
		dto.Role = RoleEmployee
	}
	if !ValidRole(dto.Role) {
		return fmt.Errorf("role must be one of employee, manager, admin")
	}
	return nil
}

type UpdateUserDTO struct {
	Role              *string `json:"role,omitempty"`
	ManagerID         *string `json:"manager_id,omitempty"`
	IsManagerApprover *bool   `json:"is_manager_approver,omitempty"`
}

func (dto *UpdateUserDTO) Validate() error {
	if dto.Role != nil && !ValidRole(*dto.Role) {
		return fmt.Errorf("role must be one of employee, manager, admin")
	}
	return nil
}
