package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dayflowhq/dayflow_backend/config"
	"github.com/dayflowhq/dayflow_backend/utils"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email     string    `gorm:"size:191;uniqueIndex;not null" json:"email" binding:"required,email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Phone     string    `gorm:"size:30" json:"phone"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func RegisterUser(ctx context.Context, input *NewUser) (*User, error) {
	db := config.GetDB()

	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return nil, utils.NewValidationError("invalid phone number")
		}
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	var count int64
	if err := db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewValidationError("email already registered")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Name:     input.Name,
		Email:    email,
		Password: string(hashed),
		Phone:    input.Phone,
		IsActive: utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// LoginUser verifies credentials and returns the user plus a signed JWT.
func LoginUser(ctx context.Context, input *LoginInput) (*User, string, error) {
	db := config.GetDB()

	var user User
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := db.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		return nil, "", errors.New("invalid credentials")
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, "", errors.New("invalid credentials")
	}
	if err := utils.ComparePassword(user.Password, input.Password); err != nil {
		return nil, "", errors.New("invalid credentials")
	}

	token, err := utils.JwtGenerate(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	// warm the session cache
	if err := utils.StoreRedis[User](&user, user.ID); err != nil {
		config.LogError(config.GetLogger(), "user.go", "LoginUser", "session cache", user.ID, err)
	}

	return &user, token, nil
}

// GetSessionUser resolves the authenticated user for the current request,
// redis first, then DB.
func GetSessionUser(ctx context.Context) (*User, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("unauthorized")
	}

	cached, err := utils.RetrieveRedis[User](userId)
	if err != nil {
		return nil, err
	}

	var user User
	if cached != nil {
		user = *cached
	} else {
		db := config.GetDB()
		if db == nil {
			return nil, errors.New("db is nil")
		}
		if err := db.WithContext(ctx).Take(&user, userId).Error; err != nil {
			return nil, errors.New("unauthorized")
		}
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, errors.New("unauthorized")
	}
	return &user, nil
}
