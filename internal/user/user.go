// Package user manages identities: employees, managers and admins. Each user
// has a primary record plus an email index record used for login lookups;
// both live and die together.
package user

import "time"

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

const (
	keyPrefix      = "user:"
	emailKeyPrefix = "user_email:"
)

func Key(id string) string {
	return keyPrefix + id
}

func EmailKey(email string) string {
	return emailKeyPrefix + email
}

type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Role              string    `json:"role"`
	ManagerID         *string   `json:"manager_id,omitempty"`
	CompanyID         string    `json:"company_id"`
	IsManagerApprover bool      `json:"is_manager_approver"`
	PasswordHash      string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// record is the stored shape; unlike the API view it carries the password
// hash.
type record struct {
	User
	PasswordHash string `json:"password_hash"`
}

func ValidRole(role string) bool {
	return role == RoleEmployee || role == RoleManager || role == RoleAdmin
}
