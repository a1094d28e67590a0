package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an operator of the register
type User struct {
	BaseModel
	Username    string `gorm:"type:varchar(80);uniqueIndex;not null" json:"usuario" validate:"required"`
	Password    string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	AccessLevel string `gorm:"type:varchar(20)" json:"nivel_acesso"`
	IsAdmin     bool   `gorm:"default:false" json:"is_admin"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"usuario"`
	AccessLevel string    `json:"nivel_acesso"`
	IsAdmin     bool      `json:"is_admin"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		AccessLevel: u.AccessLevel,
		IsAdmin:     u.IsAdmin,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}
