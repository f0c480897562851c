package model

import "time"

// UserRole separates buyers from shop managers.
type UserRole string

const (
	RoleBuyer   UserRole = "buyer"
	RoleManager UserRole = "manager"
)

// UserStatus describes account state. Suspended users cannot order.
type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusApproved  UserStatus = "approved"
	UserStatusSuspended UserStatus = "suspended"
)

// ParseUserStatus maps a raw string onto a known account status.
func ParseUserStatus(raw string) (UserStatus, bool) {
	switch UserStatus(raw) {
	case UserStatusPending, UserStatusActive, UserStatusApproved, UserStatusSuspended:
		return UserStatus(raw), true
	default:
		return "", false
	}
}

// User represents a registered account of the shop.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
}

// CanOrder reports whether the account may place orders or start checkouts.
func (u *User) CanOrder() bool {
	return u.Status != UserStatusSuspended
}
