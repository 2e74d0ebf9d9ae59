package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
)

// AccountService implements sign-up, sign-in, session lifecycle, and
// legacy-profile migration.
type AccountService struct {
	accounts  ports.AccountRepository
	legacy    ports.LegacyProfileRepository
	sessions  ports.SessionStore
	directory ports.DirectoryClient
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAccountService(
	accounts ports.AccountRepository,
	legacy ports.LegacyProfileRepository,
	sessions ports.SessionStore,
	directory ports.DirectoryClient,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AccountService{
		accounts:  accounts,
		legacy:    legacy,
		sessions:  sessions,
		directory: directory,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *AccountService) SignUp(ctx context.Context, input ports.SignUpInput) (*ports.AuthResult, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return nil, domain.ErrValidation
	}
	if input.Password != input.ConfirmPassword {
		return nil, domain.ErrValidation
	}

	if err := s.migrateLegacyAccount(ctx); err != nil {
		s.log.Warn().Err(err).Msg("legacy migration failed, continuing")
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateAccount
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	name := input.Name
	if name == "" {
		name = domain.DefaultName(email)
	}

	// Best effort: an unreachable directory degrades sign-up to a
	// locally-only account, it never blocks it.
	directoryID := ""
	if s.directory != nil {
		id, err := s.directory.FindOrCreate(ctx, email, name)
		if err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("directory sync failed, creating local-only account")
		} else {
			directoryID = id
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		DirectoryID:  directoryID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Str("account_id", created.ID).Msg("account created")
	return s.establishSession(ctx, created)
}

func (s *AccountService) SignIn(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrValidation
	}

	if err := s.migrateLegacyAccount(ctx); err != nil {
		s.log.Warn().Err(err).Msg("legacy migration failed, continuing")
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.establishSession(ctx, account)
}

func (s *AccountService) SignOut(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *AccountService) CurrentSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessions.Find(ctx, sessionID)
}

// Accounts migrates any legacy profile into the canonical collection and
// returns the merged list. Calling it repeatedly produces no duplicates.
func (s *AccountService) Accounts(ctx context.Context) ([]domain.Account, error) {
	if err := s.migrateLegacyAccount(ctx); err != nil {
		return nil, err
	}
	return s.accounts.List(ctx)
}

// migrateLegacyAccount folds the single-user legacy profile into the
// canonical accounts collection.
//
// Precondition: a legacy profile exists and no canonical account has its
// email. Postcondition: the canonical collection contains an equivalent
// account. A no-op otherwise, so the migration is idempotent.
func (s *AccountService) migrateLegacyAccount(ctx context.Context) error {
	if s.legacy == nil {
		return nil
	}
	profile, err := s.legacy.Fetch(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return fmt.Errorf("fetch legacy profile: %w", err)
	}

	email := domain.NormalizeEmail(profile.Email)
	if email == "" {
		return nil
	}
	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(profile.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := profile.Name
	if name == "" {
		name = domain.DefaultName(email)
	}

	now := time.Now().UTC()
	if _, err := s.accounts.Create(ctx, &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		// A concurrent migration already created it; the postcondition holds.
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return nil
		}
		return fmt.Errorf("migrate legacy profile: %w", err)
	}

	s.log.Info().Str("email", email).Msg("legacy profile migrated")
	return nil
}

func (s *AccountService) establishSession(ctx context.Context, account *domain.Account) (*ports.AuthResult, error) {
	session := &domain.Session{
		ID:        newSessionID(),
		AccountID: account.ID,
		Email:     account.Email,
		Name:      account.Name,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sessions.Save(ctx, session, s.tokenTTL); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	token, err := s.generateToken(session)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Token: token, Account: account, Session: session}, nil
}

func (s *AccountService) generateToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":        session.ID,
		"account_id": session.AccountID,
		"email":      session.Email,
		"name":       session.Name,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newSessionID returns a random session identifier in the format SW-XXXXXXXXXXXXXXXX.
func newSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("SW-%016X", time.Now().UnixNano())
	}
	return fmt.Sprintf("SW-%016X", b)
}
