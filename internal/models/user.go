package models

import (
	"strings"
	"time"

	"github.com/ukydev/fleet-rental/internal/validation"
)

// Role represents user roles in the system
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Actions checked by HasPermission.
const (
	ActionViewFleet     = "view_fleet"
	ActionManageFleet   = "manage_fleet"
	ActionViewRentals   = "view_rentals"
	ActionManageRentals = "manage_rentals"
	ActionManageClients = "manage_clients"
	ActionManageAdmins  = "manage_admins"
)

// User is implemented by Client and Administrator.
type User interface {
	Role() Role
	Identity() *UserBase
}

// UserBase holds the fields shared by clients and administrators. The mail
// address is the natural key and never changes once stored.
type UserBase struct {
	Mail      string    `json:"mail" bson:"_id" gorm:"primaryKey;size:191"`
	Password  string    `json:"-" bson:"password" gorm:"size:100;not null"` // bcrypt hash
	LastName  string    `json:"last_name" bson:"last_name" gorm:"size:100"`
	FirstName string    `json:"first_name" bson:"first_name" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (u *UserBase) Identity() *UserBase { return u }
func (u *UserBase) Key() string         { return u.Mail }
func (u *UserBase) SetKey(mail string)  { u.Mail = mail }

func (u *UserBase) Touch(now time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

// UserBaseInput is the shared part of user create/patch requests. Password
// is plaintext here and is hashed by the service before storage.
type UserBaseInput struct {
	Mail      *string `json:"mail"`
	Password  *string `json:"password"`
	LastName  *string `json:"last_name"`
	FirstName *string `json:"first_name"`
}

func (in UserBaseInput) build() UserBase {
	return UserBase{
		Mail:      strings.TrimSpace(deref(in.Mail)),
		LastName:  deref(in.LastName),
		FirstName: deref(in.FirstName),
	}
}

var passwordRules = []validation.Rule[UserBaseInput]{
	validation.NotBlank("password", func(in UserBaseInput) *string { return in.Password }),
	validation.StrongPassword("password", func(in UserBaseInput) *string { return in.Password }),
}

// PatchPassword checks a password supplied on a partial update. An absent
// password is accepted.
func (in UserBaseInput) PatchPassword() error {
	if in.Password == nil {
		return nil
	}
	return validation.Check(in, passwordRules)
}

// LoginRequest represents a login request
type LoginRequest struct {
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	Mail         string `json:"mail"`
	Role         Role   `json:"role"`
	ExpiresAt    int64  `json:"expires_at"`
}

// Claims represents JWT claims
type Claims struct {
	Mail string `json:"mail"`
	Role Role   `json:"role"`
	Exp  int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleClient:
		return true
	default:
		return false
	}
}

// HasPermission checks if a role may perform action
func (r Role) HasPermission(action string) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleClient:
		return action == ActionViewFleet || action == ActionViewRentals
	default:
		return false
	}
}

// HasPermission checks if the token holder may perform action
func (c *Claims) HasPermission(action string) bool {
	return c.Role.HasPermission(action)
}
