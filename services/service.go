package services

import (
	"context"
	"fmt"

	"food-order/models"
	"food-order/store"

	"github.com/rs/zerolog"
)

// Options tunes a Service. Zero values give the default menu, plaintext
// secrets, no throttling and a disabled logger.
type Options struct {
	Menu       *Menu
	SecretMode SecretMode
	Throttle   *LoginThrottle
	Logger     zerolog.Logger
}

// Service is the command interface shared by every front-end: signup and
// login here, ordering on the Session that login returns.
type Service struct {
	accounts store.AccountStore
	orders   store.OrderStore
	menu     *Menu
	secrets  SecretMode
	throttle *LoginThrottle
	log      zerolog.Logger
}

func New(accounts store.AccountStore, orders store.OrderStore, opts Options) *Service {
	if opts.Menu == nil {
		opts.Menu = DefaultMenu()
	}
	if opts.SecretMode == "" {
		opts.SecretMode = SecretPlain
	}
	return &Service{
		accounts: accounts,
		orders:   orders,
		menu:     opts.Menu,
		secrets:  opts.SecretMode,
		throttle: opts.Throttle,
		log:      opts.Logger,
	}
}

func (s *Service) Menu() *Menu {
	return s.menu
}

// SubmitSignup creates an account for an unused identifier.
func (s *Service) SubmitSignup(ctx context.Context, identifier, secret string) error {
	if identifier == "" || secret == "" {
		return ErrEmptyCredentials
	}
	exists, err := s.accounts.Exists(ctx, identifier)
	if err != nil {
		return fmt.Errorf("signup %s: %w", identifier, err)
	}
	if exists {
		s.log.Info().Str("identifier", identifier).Msg("signup rejected: identifier taken")
		return ErrAccountExists
	}
	stored, err := s.secrets.seal(secret)
	if err != nil {
		return err
	}
	if err := s.accounts.Append(ctx, models.Account{Identifier: identifier, Secret: stored}); err != nil {
		return fmt.Errorf("signup %s: %w", identifier, err)
	}
	s.log.Info().Str("identifier", identifier).Msg("account created")
	return nil
}

// SubmitLogin returns a fresh ordering session when the pair matches a
// stored account.
func (s *Service) SubmitLogin(ctx context.Context, identifier, secret string) (*Session, error) {
	if wait := s.throttle.WaitSeconds(identifier); wait > 0 {
		return nil, &ThrottledError{WaitSeconds: wait}
	}
	ok, err := s.verify(ctx, identifier, secret)
	if err != nil {
		return nil, fmt.Errorf("login %s: %w", identifier, err)
	}
	if !ok {
		s.throttle.RecordFailed(identifier)
		s.log.Warn().Str("identifier", identifier).Msg("login failed")
		return nil, ErrInvalidCredentials
	}
	s.throttle.RecordSuccess(identifier)

	sess := newSession(identifier, s.menu, s.orders, s.log)
	sess.log.Info().Msg("login succeeded")
	return sess, nil
}

func (s *Service) verify(ctx context.Context, identifier, secret string) (bool, error) {
	if s.secrets != SecretBcrypt {
		return s.accounts.Find(ctx, identifier, secret)
	}
	stored, found, err := s.accounts.Secret(ctx, identifier)
	if err != nil || !found {
		return false, err
	}
	return s.secrets.matches(stored, secret)
}
