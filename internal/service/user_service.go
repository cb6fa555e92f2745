// Package service holds the business logic between handlers and repositories.
package service

import (
	"context"
	"crypto/md5"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"rolodex/internal/auth"
	"rolodex/internal/mailer"
	"rolodex/internal/middleware"
	"rolodex/internal/models"
	"rolodex/internal/repository"
	"rolodex/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const mailSendTimeout = 10 * time.Second

type UserService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	mailer   mailer.Mailer
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenService, m mailer.Mailer) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens, mailer: m}
}

// Register creates a new account. The password is bcrypt-hashed, the avatar
// defaults to the Gravatar for the email, and a confirmation email is sent
// in the background. Mail failures never fail the registration.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User already exists")
	}
	existing, err = s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		Avatar:   gravatarURL(in.Email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.sendConfirmationAsync(user.Email, user.Username)
	return user, nil
}

// Login verifies the credentials and returns a signed access token.
// The error message does not reveal whether the username exists.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewUnauthorizedError("Invalid login or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", models.NewUnauthorizedError("Invalid login or password")
	}
	if !user.Confirmed {
		return "", models.NewUnauthorizedError("Email address not confirmed")
	}
	token, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

// RequestEmailConfirmation re-sends the confirmation mail. The returned
// message is identical whether or not the account exists, so the endpoint
// cannot be used to enumerate registered emails.
func (s *UserService) RequestEmailConfirmation(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user != nil && user.Confirmed {
		return "Your email is already confirmed", nil
	}
	if user != nil {
		s.sendConfirmationAsync(user.Email, user.Username)
	}
	return "Check your email for confirmation", nil
}

// ConfirmEmail decodes an email-verification token and marks the account
// confirmed. Confirming twice returns the already-confirmed message.
func (s *UserService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	email, err := s.tokens.ParseEmailToken(token)
	if err != nil {
		return "", &models.AppError{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid token for email verification",
			Err:     auth.ErrInvalidToken,
		}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewValidationError("Verification error")
	}
	if user.Confirmed {
		return "Your email is already confirmed", nil
	}
	if err := s.userRepo.ConfirmEmail(ctx, email); err != nil {
		return "", err
	}
	return "Email confirmed", nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, avatarURL string) (*models.User, error) {
	avatarURL = strings.TrimSpace(avatarURL)
	if err := validation.ValidateAvatarURL(avatarURL); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.userRepo.UpdateAvatar(ctx, userID, avatarURL)
}

// sendConfirmationAsync issues a fresh email token and fires the mail from
// a goroutine with its own deadline, detached from the request context.
func (s *UserService) sendConfirmationAsync(email, username string) {
	token, err := s.tokens.GenerateEmailToken(email)
	if err != nil {
		middleware.Logger.Error("failed to generate email token", slog.Any("error", err))
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
		defer cancel()
		if err := s.mailer.SendConfirmation(ctx, email, username, token); err != nil {
			middleware.Logger.Error("failed to send confirmation email",
				slog.String("email", email), slog.Any("error", err))
		}
	}()
}

// gravatarURL builds the Gravatar identicon URL for an email, matching the
// avatar shown by most mail clients.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon", sum)
}
