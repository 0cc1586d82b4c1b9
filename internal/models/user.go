package models

type UserRole string

const (
	RoleSuperAdmin UserRole = "superadmin"
	RoleAdmin      UserRole = "admin"
	RoleEmployee   UserRole = "employee"
)

type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"password_hash"` // bcrypt
}
