package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aurelia-api/internal/core/auth"
	"aurelia-api/internal/domain"
	"aurelia-api/pkg/utils"
)

type AuthService struct {
	db    *gorm.DB
	jwter *auth.JWTer
}

func NewAuthService(db *gorm.DB, jwter *auth.JWTer) *AuthService {
	return &AuthService{db: db, jwter: jwter}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName *string
	Phone    *string
}

// Register creates the account and signs the user in immediately.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	tx := s.db.WithContext(ctx)

	var existing domain.User
	err := tx.Where("email = ?", in.Email).First(&existing).Error
	if err == nil {
		return nil, "", ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	u := domain.User{
		Email:        in.Email,
		PasswordHash: utils.HashPassword(in.Password),
		FullName:     in.FullName,
		Phone:        in.Phone,
		IsActive:     true,
	}
	if err := tx.Create(&u).Error; err != nil {
		// Concurrent register on the same email loses the unique-index race.
		if isDuplicateKey(err) {
			return nil, "", ErrDuplicateEmail
		}
		return nil, "", err
	}

	tok, err := s.jwter.Issue(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return &u, tok, nil
}

// Login verifies credentials. Unknown email and wrong password produce the
// same error so callers cannot probe which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	var u domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, "", ErrInactiveAccount
	}

	tok, err := s.jwter.Issue(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return &u, tok, nil
}

// UserByID backs token verification: a valid signature is not enough, the
// referenced user must still exist.
func (s *AuthService) UserByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
