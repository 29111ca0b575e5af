package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is a dashboard account. Admins and teachers belong to a school,
// parents are linked to their children through students.parent_id.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SchoolID     *uuid.UUID `json:"school_id,omitempty" gorm:"type:uuid;index"`
	Email        string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string     `json:"name" gorm:"type:varchar(255);not null"`
	Role         Role       `json:"role" gorm:"type:varchar(20);not null"`
	IsActive     bool       `json:"is_active" gorm:"default:true;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;type:text;not null"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty" gorm:"type:timestamp"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the default table name
func (User) TableName() string {
	return "users"
}

// NewUser creates an active user with a hashed password
func NewUser(email, name string, role Role, schoolID *uuid.UUID, password string) (*User, error) {
	now := time.Now().UTC()
	u := &User{
		ID:        uuid.New(),
		SchoolID:  schoolID,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Name:      strings.TrimSpace(name),
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword hashes and stores the password
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdateLastLogin updates the last login timestamp
func (u *User) UpdateLastLogin() {
	now := time.Now().UTC()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// Validate validates user data
func (u *User) Validate() error {
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.Name == "" {
		return ErrInvalidName
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	return nil
}

// PublicUser returns a user with sensitive fields removed
type PublicUser struct {
	ID        uuid.UUID  `json:"id"`
	SchoolID  *uuid.UUID `json:"school_id,omitempty"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToPublic converts User to PublicUser
func (u *User) ToPublic() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		SchoolID:  u.SchoolID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
