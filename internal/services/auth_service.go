package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/models"
	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/repositories"
	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/session"

	"golang.org/x/crypto/bcrypt"
)

// Login outcomes the handler renders inline. Unknown identifier and wrong
// password collapse into ErrInvalidCredentials on purpose: the response must
// not reveal whether the identifier exists.
var (
	ErrMissingFields      = errors.New("missing fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrStoreUnavailable   = errors.New("account store unavailable")
)

// dummyHash keeps the bcrypt cost paid on unknown identifiers so the
// not-found path is not observably faster. The compare result is ignored.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService is the credential verifier and session establisher for the
// staff login gate.
type AuthService interface {
	Authenticate(ctx context.Context, identifier, password string) (*models.Account, error)
	Login(ctx context.Context, identifier, password, priorSessionID string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}

// LoginResult carries the established session and where the browser goes next.
type LoginResult struct {
	SessionID    string
	RedirectPath string
	Account      *models.Account
}

type authService struct {
	accounts      repositories.AccountRepository
	sessions      session.Store
	lookupTimeout time.Duration
}

func NewAuthService(accounts repositories.AccountRepository, sessions session.Store, lookupTimeout time.Duration) AuthService {
	return &authService{
		accounts:      accounts,
		sessions:      sessions,
		lookupTimeout: lookupTimeout,
	}
}

// Authenticate verifies identifier+password against the account store.
// The password check runs before the status check so a wrong password is
// reported identically regardless of account status.
func (s *authService) Authenticate(ctx context.Context, identifier, password string) (*models.Account, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || strings.TrimSpace(password) == "" {
		return nil, ErrMissingFields
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	account, err := s.accounts.FindByIdentifier(lookupCtx, identifier)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			// Burn the hash cost anyway, then fail exactly like a wrong password.
			bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if !account.IsActive() {
		return nil, ErrAccountDeactivated
	}

	return account, nil
}

// Login authenticates, resolves the role's dashboard before touching any
// session state, then establishes a fresh session. Any id the client
// presented is discarded first, the session id always changes on login.
func (s *authService) Login(ctx context.Context, identifier, password, priorSessionID string) (*LoginResult, error) {
	account, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}

	redirectPath, err := account.Role.DashboardPath()
	if err != nil {
		return nil, fmt.Errorf("account %s has unroutable role %q: %w", account.ID, account.Role, err)
	}

	if priorSessionID != "" {
		if err := s.sessions.Delete(ctx, priorSessionID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	sessionID, err := s.sessions.Create(ctx, session.Data{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		IssuedAt:  time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &LoginResult{
		SessionID:    sessionID,
		RedirectPath: redirectPath,
		Account:      account,
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}
