package models

import (
	"time"

	"user-admission/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Client directory (read only for the admission flow)
// ============================================================

// Client represents clients table
type Client struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Type      string    `gorm:"size:30;not null;index" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

// ToDomain converts the row to a domain client
func (c *Client) ToDomain() domain.Client {
	return domain.Client{
		ID:   c.ID,
		Type: domain.ClientType(c.Type),
		Name: c.Name,
	}
}

// ============================================================
// Credit records (external credit score source)
// ============================================================

// CreditRecord represents credit_records table
type CreditRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LastName    string    `gorm:"size:100;not null;uniqueIndex:idx_credit_identity" json:"last_name"`
	DateOfBirth time.Time `gorm:"type:date;not null;uniqueIndex:idx_credit_identity" json:"date_of_birth"`
	CreditLimit int       `gorm:"not null" json:"credit_limit"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CreditRecord) TableName() string {
	return "credit_records"
}

// ============================================================
// Admitted users
// ============================================================

// User represents users table
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PublicID       string    `gorm:"uniqueIndex;size:36;not null" json:"public_id"`
	FirstName      string    `gorm:"size:100;not null" json:"first_name"`
	LastName       string    `gorm:"size:100;not null" json:"last_name"`
	Email          string    `gorm:"size:255;not null" json:"email"`
	DateOfBirth    time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	ClientID       int       `gorm:"index;not null" json:"client_id"`
	HasCreditLimit bool      `gorm:"not null" json:"has_credit_limit"`
	CreditLimit    int       `gorm:"not null" json:"credit_limit"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	DateOfBirth    string    `json:"date_of_birth"`
	ClientID       int       `json:"client_id"`
	HasCreditLimit bool      `json:"has_credit_limit"`
	CreditLimit    int       `json:"credit_limit"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:             u.PublicID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		DateOfBirth:    u.DateOfBirth.Format(DateLayout),
		ClientID:       u.ClientID,
		HasCreditLimit: u.HasCreditLimit,
		CreditLimit:    u.CreditLimit,
		CreatedAt:      u.CreatedAt,
	}
}

// NewUser builds a users row from an admitted candidate
func NewUser(publicID string, c domain.CandidateUser) *User {
	return &User{
		PublicID:       publicID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		DateOfBirth:    CalendarDate(c.DateOfBirth),
		ClientID:       c.Client.ID,
		HasCreditLimit: c.HasCreditLimit,
		CreditLimit:    c.CreditLimit,
	}
}

// DateLayout is the wire and cache format for dates of birth
const DateLayout = "2006-01-02"

// CalendarDate drops the clock part of t, keeping its calendar day in UTC
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Client{},
		&CreditRecord{},
		&User{},
	)
}
