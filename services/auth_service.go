package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/drexwrld/synapes-backend/models"
	"github.com/drexwrld/synapes-backend/utils"
)

const resetCodeTTL = 15 * time.Minute

type resetMailer interface {
	SendResetEmail(ctx context.Context, to, code string) error
}

type AuthService struct {
	db         *gorm.DB
	tokens     *utils.TokenService
	mailer     resetMailer
	bcryptCost int
}

// NewAuthService wires the credential store. mailer may be nil when the
// deployment has no outbound email; forgot-password then only records
// the code.
func NewAuthService(db *gorm.DB, tokens *utils.TokenService, mailer resetMailer, bcryptCost int) *AuthService {
	return &AuthService{db: db, tokens: tokens, mailer: mailer, bcryptCost: bcryptCost}
}

type RegisterInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"full_name" binding:"required"`
	Department   string `json:"department"`
	AcademicYear string `json:"academic_year"`
}

// NormalizeEmail is the single normalization applied before every store
// or compare; email uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(input RegisterInput) (*models.User, string, error) {
	email := NormalizeEmail(input.Email)

	// Checked ahead of the insert so a duplicate comes back as a clean
	// conflict instead of a raw constraint error.
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, "", ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := utils.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Email:                email,
		Password:             hashed,
		FullName:             input.FullName,
		Department:           input.Department,
		AcademicYear:         input.AcademicYear,
		NotificationsEnabled: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login answers identically for an unknown email and a wrong password,
// so responses carry no user-enumeration signal.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	var user models.User
	err := s.db.Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil || !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// ForgotPassword succeeds from the caller's point of view whether or
// not the email exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	if err := s.db.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil
	}

	code := utils.RandomCode(6)
	user.ResetCode = code
	user.ResetCodeExp = time.Now().Add(resetCodeTTL)
	if err := s.db.Save(&user).Error; err != nil {
		return err
	}

	if s.mailer != nil {
		if err := s.mailer.SendResetEmail(ctx, user.Email, code); err != nil {
			logrus.WithError(err).Error("reset email send failed")
		}
	}
	return nil
}

func (s *AuthService) ResetPassword(code, newPassword string) error {
	var user models.User
	if err := s.db.Where("reset_code = ? AND reset_code <> ''", code).First(&user).Error; err != nil {
		return ErrResetCodeInvalid
	}
	if time.Now().After(user.ResetCodeExp) {
		return ErrResetCodeInvalid
	}

	hashed, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	user.Password = hashed
	user.ResetCode = ""
	user.ResetCodeExp = time.Time{}
	return s.db.Save(&user).Error
}
