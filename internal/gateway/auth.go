package gateway

import (
	"context"

	"github.com/uplift-force/coordinator-svc/internal/data"
	"github.com/uplift-force/coordinator-svc/internal/gateway/requests"
)

type CheckWalletResult struct {
	IsRegistered  bool   `json:"is_registered"`
	WalletAddress string `json:"wallet_address"`
}

// AuthPayload is the login/register result: a fresh token pair plus the
// authenticated user record.
type AuthPayload struct {
	data.Tokens
	User *data.User `json:"user"`
}

// CheckWallet is a pure query with no side effects.
func (c *Client) CheckWallet(ctx context.Context, address string) (*CheckWalletResult, error) {
	var result CheckWalletResult
	err := c.postJSON(ctx, "/auth/checkWallet", requests.NewCheckWallet(address), &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Login(ctx context.Context, address, message, signature string) (*AuthPayload, error) {
	var result AuthPayload
	err := c.postJSON(ctx, "/auth/login", requests.NewLogin(address, message, signature), &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Register(ctx context.Context, req requests.Register) (*AuthPayload, error) {
	var result AuthPayload
	if err := c.postJSON(ctx, "/auth/register", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*data.Tokens, error) {
	var result data.Tokens
	err := c.postJSON(ctx, "/auth/refresh", requests.NewRefresh(refreshToken), &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/auth/logout", nil, nil)
}

func (c *Client) Verify(ctx context.Context) (string, error) {
	var result struct {
		UserID string `json:"user_id"`
	}
	if err := c.postJSON(ctx, "/auth/verify", nil, &result); err != nil {
		return "", err
	}
	return result.UserID, nil
}

func (c *Client) Profile(ctx context.Context) (*data.User, error) {
	var result data.User
	if err := c.get("/auth/profile", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
