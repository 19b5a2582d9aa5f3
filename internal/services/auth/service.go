// Package auth implements identity and access: signup with email
// verification, login, bearer-token authentication and role gating.
package auth

import (
	"log"
	"time"

	"estates/internal/config"
	apperrors "estates/internal/errors"
	"estates/internal/models"
	"estates/internal/repositories"
	"estates/internal/services/mailer"
	"estates/internal/utils"
	"estates/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// SignupResult carries the outcome of a signup or a verification resend.
type SignupResult struct {
	User              *models.User
	VerificationToken *models.UserVerificationToken
	VerificationSent  bool
	AlreadyVerified   bool
}

type Service interface {
	Signup(email, password, role string) (*SignupResult, error)
	Login(email, password string) (*models.User, string, error)
	VerifyEmail(token string) (*models.User, time.Time, error)
	ResendVerification(email string) (*SignupResult, error)

	// Authenticate resolves a bearer token to exactly one active user.
	Authenticate(tokenStr string) (*models.User, error)
	// AuthenticateOptional returns nil instead of failing, for endpoints that
	// permit anonymous access under a feature flag.
	AuthenticateOptional(tokenStr string) *models.User
	// Authorize fails with Forbidden when the user's role is not allowed.
	Authorize(user *models.User, allowedRoles ...string) error
}

type service struct {
	userRepo repositories.UserRepository
	mailer   mailer.Service
	settings *config.Settings
	now      func() time.Time
}

// NewService creates a new auth Service.
func NewService(userRepo repositories.UserRepository, mail mailer.Service, settings *config.Settings) Service {
	return &service{
		userRepo: userRepo,
		mailer:   mail,
		settings: settings,
		now:      time.Now,
	}
}

func (s *service) Signup(email, password, role string) (*SignupResult, error) {
	email = validation.NormalizeEmail(email)

	v := validation.New()
	v.Required("email", email)
	v.Email("email", email)
	v.Check(len(password) >= 8, "password", "must be at least 8 characters")
	v.OneOf("role", role, models.RoleOwner, models.RoleManager, models.RoleCaretaker, models.RoleViewer)
	if !v.Valid() {
		return nil, apperrors.New(apperrors.ErrInvalid.Code, v.First())
	}

	if existing, _ := s.userRepo.GetByEmail(email); existing != nil {
		return nil, apperrors.New(apperrors.ErrConflict.Code, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = models.RoleOwner
	}
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       false,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.issueVerificationToken(user)
	if err != nil {
		return nil, err
	}

	sent := s.mailer.SendVerification(user.Email, token.Token, token.ExpiresAt)

	return &SignupResult{
		User:              user,
		VerificationToken: token,
		VerificationSent:  sent,
	}, nil
}

func (s *service) Login(email, password string) (*models.User, string, error) {
	email = validation.NormalizeEmail(email)

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		log.Printf("login failed: no user for %s", email)
		return nil, "", apperrors.New(apperrors.ErrUnauthenticated.Code, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("login failed: bad password for user %d", user.ID)
		return nil, "", apperrors.New(apperrors.ErrUnauthenticated.Code, "invalid credentials")
	}

	if !user.Active {
		return nil, "", apperrors.New(apperrors.ErrForbidden.Code, "email verification required")
	}

	token, err := utils.GenerateAccessToken(s.settings.JWTSecret, user, s.settings.AccessTokenExpMinutes)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *service) VerifyEmail(token string) (*models.User, time.Time, error) {
	entry, err := s.userRepo.GetVerificationToken(token)
	if err != nil {
		return nil, time.Time{}, apperrors.New(apperrors.ErrNotFound.Code, "invalid token")
	}

	now := s.now()
	if entry.Consumed() {
		return nil, time.Time{}, apperrors.New(apperrors.ErrInvalid.Code, "token already used")
	}
	if entry.Expired(now) {
		return nil, time.Time{}, apperrors.New(apperrors.ErrInvalid.Code, "token has expired")
	}

	user, err := s.userRepo.GetByID(entry.UserID)
	if err != nil {
		return nil, time.Time{}, apperrors.New(apperrors.ErrNotFound.Code, "user not found")
	}

	user.Active = true
	if err := s.userRepo.Update(user); err != nil {
		return nil, time.Time{}, err
	}
	if err := s.userRepo.MarkTokenUsed(entry.ID, now); err != nil {
		return nil, time.Time{}, err
	}
	if err := s.userRepo.InvalidateUserTokens(user.ID, entry.ID, now); err != nil {
		return nil, time.Time{}, err
	}

	return user, now, nil
}

func (s *service) ResendVerification(email string) (*SignupResult, error) {
	email = validation.NormalizeEmail(email)

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrNotFound.Code, "user not found")
	}

	if user.Active {
		// Already verified is informational, not an error.
		return &SignupResult{User: user, AlreadyVerified: true}, nil
	}

	if err := s.userRepo.InvalidateUserTokens(user.ID, 0, s.now()); err != nil {
		return nil, err
	}

	token, err := s.issueVerificationToken(user)
	if err != nil {
		return nil, err
	}

	sent := s.mailer.SendVerification(user.Email, token.Token, token.ExpiresAt)

	return &SignupResult{
		User:              user,
		VerificationToken: token,
		VerificationSent:  sent,
	}, nil
}

func (s *service) Authenticate(tokenStr string) (*models.User, error) {
	if tokenStr == "" {
		return nil, apperrors.New(apperrors.ErrUnauthenticated.Code, "not authenticated")
	}

	claims, err := utils.ParseAccessToken(s.settings.JWTSecret, tokenStr)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrUnauthenticated.Code, "invalid token")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrUnauthenticated.Code, "user not found")
	}
	if !user.Active {
		return nil, apperrors.New(apperrors.ErrUnauthenticated.Code, "account not verified")
	}

	return user, nil
}

func (s *service) AuthenticateOptional(tokenStr string) *models.User {
	user, err := s.Authenticate(tokenStr)
	if err != nil {
		return nil
	}
	return user
}

func (s *service) Authorize(user *models.User, allowedRoles ...string) error {
	for _, role := range allowedRoles {
		if user.Role == role {
			return nil
		}
	}
	return apperrors.New(apperrors.ErrForbidden.Code, "insufficient role")
}

func (s *service) issueVerificationToken(user *models.User) (*models.UserVerificationToken, error) {
	token := &models.UserVerificationToken{
		UserID:    user.ID,
		Token:     utils.MustGenerateSecureToken(),
		ExpiresAt: s.now().Add(time.Duration(s.settings.VerificationExpiryHrs) * time.Hour),
	}
	if err := s.userRepo.CreateVerificationToken(token); err != nil {
		return nil, err
	}
	return token, nil
}
