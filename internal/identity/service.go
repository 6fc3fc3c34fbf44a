package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/tunebox/tunebox/internal/apperr"
	"github.com/tunebox/tunebox/internal/notification"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plaintext string) ([]byte, error)
	Verify(plaintext string, digest []byte) bool
}

// TokenIssuer signs a token for a user identifier.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// FavoriteLister loads a user's favorite associations.
type FavoriteLister interface {
	FavoritesOf(ctx context.Context, userID string) ([]Favorite, error)
}

// Service manages identity lifecycle.
type Service struct {
	repo      Repository
	hasher    PasswordHasher
	tokens    TokenIssuer
	favorites FavoriteLister
	notifier  notification.Notifier
	logger    *slog.Logger
}

// NewService creates a new identity service. favorites and notifier may be nil.
func NewService(repo Repository, hasher PasswordHasher, tokens TokenIssuer, favorites FavoriteLister, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens, favorites: favorites, notifier: notifier, logger: logger}
}

func (in SignupInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

func (in LoginInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// Signup stores a new user with a hashed password. An email already on file
// yields apperr.ErrDuplicateEmail and leaves the store untouched.
func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	if err := in.validate(); err != nil {
		return User{}, apperr.ErrInvalidInput.WithMessage(err.Error())
	}

	// Fast path only; the store's unique constraint decides concurrent races.
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return User{}, apperr.ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	s.notify(ctx, notification.Event{Kind: notification.KindUserSignedUp, Subject: user.ID})
	return user, nil
}

// Login checks the credentials and issues a token for the user.
func (s *Service) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if err := in.validate(); err != nil {
		return LoginResult{}, apperr.ErrInvalidInput.WithMessage(err.Error())
	}

	user, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoginResult{}, apperr.ErrUnknownEmail
		}
		return LoginResult{}, fmt.Errorf("lookup email: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return LoginResult{}, apperr.ErrWrongPassword
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResult{Token: token, User: user}, nil
}

// Current loads the user named by subject together with their favorites.
func (s *Service) Current(ctx context.Context, subject string) (Profile, error) {
	if subject == "" {
		return Profile{}, apperr.ErrUserNotFound
	}
	user, err := s.repo.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{}, apperr.ErrUserNotFound
		}
		return Profile{}, fmt.Errorf("lookup user: %w", err)
	}

	profile := Profile{User: user, Favorites: []Favorite{}}
	if s.favorites != nil {
		favs, err := s.favorites.FavoritesOf(ctx, user.ID)
		if err != nil {
			return Profile{}, fmt.Errorf("load favorites: %w", err)
		}
		if favs != nil {
			profile.Favorites = favs
		}
	}
	return profile, nil
}

func (s *Service) notify(ctx context.Context, event notification.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, event); err != nil && s.logger != nil {
		s.logger.Warn("notify failed", slog.String("kind", event.Kind), slog.Any("error", err))
	}
}
