package users

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/divij2510/PurpleProse/internal/auth"
	"github.com/divij2510/PurpleProse/internal/domain"
)

// ErrInvalidCredentials covers every local-login failure: unknown email,
// wrong password, or an account that has no local password at all. One error,
// one message, so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Store is the credential store the service runs against.
type Store interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	SetGoogleID(ctx context.Context, id int64, googleID string) error
}

// AssertionVerifier validates a third-party identity assertion and returns
// its verified claims.
type AssertionVerifier interface {
	Verify(ctx context.Context, assertion string) (auth.GoogleClaims, error)
}

// Service implements signup, login and Google sign-in, issuing a session
// token on every successful path.
type Service struct {
	Store    Store
	Tokens   *auth.TokenService
	Verifier AssertionVerifier
}

func NewService(store Store, tokens *auth.TokenService, verifier AssertionVerifier) *Service {
	return &Service{Store: store, Tokens: tokens, Verifier: verifier}
}

// Signup creates a local account. The password is bcrypt-hashed before it is
// stored; the plaintext is never persisted or logged.
func (s *Service) Signup(ctx context.Context, name, email, password string) (domain.User, string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", err
	}

	hash := string(hashed)
	user, err := s.Store.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
	})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Login verifies a local password. Accounts created via Google sign-in have
// no password hash and fail here the same way a bad password does.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.Store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if !user.HasLocalPassword() {
		return domain.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// GoogleLogin verifies the provider assertion, then reuses the account with
// the verified email (linking the Google ID if it was not set) or creates a
// new account with no local password.
func (s *Service) GoogleLogin(ctx context.Context, assertion string) (domain.User, string, error) {
	claims, err := s.Verifier.Verify(ctx, assertion)
	if err != nil {
		return domain.User{}, "", err
	}

	user, err := s.Store.GetByEmail(ctx, claims.Email)
	switch {
	case err == nil:
		if user.GoogleID == nil || *user.GoogleID == "" {
			if err := s.Store.SetGoogleID(ctx, user.ID, claims.Subject); err != nil {
				return domain.User{}, "", err
			}
			user.GoogleID = &claims.Subject
		}
	case errors.Is(err, ErrNotFound):
		user, err = s.Store.Create(ctx, domain.User{
			Name:     claims.Name,
			Email:    claims.Email,
			GoogleID: &claims.Subject,
		})
		if err != nil {
			return domain.User{}, "", err
		}
	default:
		return domain.User{}, "", err
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}
