package domain

// UserRole represents the capability level of a platform user
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleGuide UserRole = "guide"
	RoleAdmin UserRole = "admin"
)

// IsAdmin returns true for the admin capability
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// IsGuide returns true for the guide capability
func (r UserRole) IsGuide() bool {
	return r == RoleGuide
}
