// Package session is the wallet-keyed identity adapter: a signed-message
// login handshake producing an access/refresh token pair, with an explicit
// Invalidate lifecycle instead of ambient mutable state.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/uplift-force/coordinator-svc/internal/data"
	"github.com/uplift-force/coordinator-svc/internal/gateway"
	"github.com/uplift-force/coordinator-svc/internal/gateway/requests"
	"github.com/uplift-force/coordinator-svc/internal/wallet"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// AuthError marks an invalid or expired session; callers must force
// re-authentication when they see it.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Reason
}

type Session struct {
	log    *logan.Entry
	client *gateway.Client
	tokens TokenStore
	wallet *wallet.Wallet

	mu   sync.RWMutex
	user *data.User
}

func New(log *logan.Entry, client *gateway.Client, tokens TokenStore, w *wallet.Wallet) *Session {
	return &Session{log: log, client: client, tokens: tokens, wallet: w}
}

// challenge builds the human-readable login message the wallet signs. The
// embedded timestamp keeps every handshake unique.
func challenge() string {
	return fmt.Sprintf("Welcome to uplift force, timestamp is %d!", time.Now().UnixMilli())
}

// User returns the in-memory user of the current session, nil when not
// logged in. The record itself is never persisted, only the token pair.
func (s *Session) User() *data.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) CheckWallet(ctx context.Context) (*gateway.CheckWalletResult, error) {
	return s.client.CheckWallet(ctx, s.wallet.Address().Hex())
}

func (s *Session) Login(ctx context.Context) (*data.User, error) {
	check, err := s.CheckWallet(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check wallet registration")
	}
	if !check.IsRegistered {
		return nil, &AuthError{Reason: "wallet is not registered"}
	}

	msg := challenge()
	sig, err := s.wallet.SignPersonal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign login challenge")
	}

	payload, err := s.client.Login(ctx, s.wallet.Address().Hex(), msg, sig)
	if err != nil {
		if apiErr, ok := err.(*gateway.ApiError); ok && apiErr.Unauthorized() {
			return nil, &AuthError{Reason: apiErr.Message}
		}
		return nil, errors.Wrap(err, "login request failed")
	}

	return s.establish(payload)
}

// Profile is the profile submitted at registration alongside the wallet
// signature.
type Profile struct {
	Username string
	Email    string
	Role     data.Role
}

func (p Profile) validate() error {
	if p.Username == "" {
		return errors.New("username is required")
	}
	if !strings.Contains(p.Email, "@") {
		return errors.New("email is not valid")
	}
	if p.Role != data.RolePlayer && p.Role != data.RoleBooster {
		return errors.New("role must be either player or booster")
	}
	return nil
}

func (s *Session) Register(ctx context.Context, profile Profile) (*data.User, error) {
	if err := profile.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid registration profile")
	}

	msg := challenge()
	sig, err := s.wallet.SignPersonal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign registration challenge")
	}

	payload, err := s.client.Register(ctx, requests.Register{
		WalletAddress: s.wallet.Address().Hex(),
		Message:       msg,
		Signature:     sig,
		Username:      profile.Username,
		Email:         profile.Email,
		Role:          string(profile.Role),
	})
	if err != nil {
		return nil, errors.Wrap(err, "register request failed")
	}

	return s.establish(payload)
}

func (s *Session) establish(payload *gateway.AuthPayload) (*data.User, error) {
	if err := s.tokens.Set(payload.Tokens); err != nil {
		return nil, errors.Wrap(err, "failed to persist session tokens")
	}

	user := payload.User
	if user == nil {
		// Some backend revisions return only the token pair; the user
		// record is then fetched through the authenticated profile endpoint.
		fetched, err := s.client.Profile(context.Background())
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch profile after login")
		}
		user = fetched
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// Refresh silently renews the token pair. On any failure the session is
// considered expired: local state is invalidated and an AuthError returned.
func (s *Session) Refresh(ctx context.Context) error {
	current := s.tokens.Get()
	if current.RefreshToken == "" {
		return &AuthError{Reason: "no session to refresh"}
	}

	renewed, err := s.client.Refresh(ctx, current.RefreshToken)
	if err != nil {
		s.log.WithError(err).Warn("token refresh failed, invalidating session")
		s.Invalidate()
		return &AuthError{Reason: "session expired"}
	}

	err = s.tokens.Set(*renewed)
	return errors.Wrap(err, "failed to persist renewed tokens")
}

// Logout invalidates the session server-side on a best-effort basis, then
// unconditionally clears local state.
func (s *Session) Logout(ctx context.Context) {
	if s.tokens.Access() != "" {
		if err := s.client.Logout(ctx); err != nil {
			s.log.WithError(err).Warn("server-side logout failed, clearing local session anyway")
		}
	}
	s.Invalidate()
}

// Invalidate drops the persisted token pair and the in-memory user.
func (s *Session) Invalidate() {
	if err := s.tokens.Clear(); err != nil {
		s.log.WithError(err).Error("failed to clear persisted tokens")
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}
