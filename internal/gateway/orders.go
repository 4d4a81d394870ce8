package gateway

import (
	"context"
	"net/url"
	"strconv"

	"github.com/uplift-force/coordinator-svc/internal/data"
	"github.com/uplift-force/coordinator-svc/internal/gateway/requests"
)

// OrdersParams filters paginated order listings. Zero values are omitted
// from the query; pagination state is owned entirely by the caller.
type OrdersParams struct {
	Page       int
	PageSize   int
	Status     string
	GameType   string
	GameMode   string
	Role       string
	UserFilter string
}

func (p OrdersParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.GameType != "" {
		q.Set("game_type", p.GameType)
	}
	if p.GameMode != "" {
		q.Set("game_mode", p.GameMode)
	}
	if p.Role != "" {
		q.Set("role", p.Role)
	}
	if p.UserFilter != "" {
		q.Set("user_filter", p.UserFilter)
	}
	return q
}

type OrdersPage struct {
	Orders []data.Order `json:"orders"`
	Total  int64        `json:"total"`
}

func (c *Client) GetMyOrders(params OrdersParams) (*OrdersPage, error) {
	var result OrdersPage
	if err := c.get("/orders/my", params.query(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetAllOrders(params OrdersParams) (*OrdersPage, error) {
	var result OrdersPage
	if err := c.get("/orders", params.query(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetAvailableOrders() ([]data.Order, error) {
	var result OrdersPage
	if err := c.get("/orders/available", nil, &result); err != nil {
		return nil, err
	}
	return result.Orders, nil
}

func (c *Client) GetBoosterOrders(boosterID int64) ([]data.Order, error) {
	var result OrdersPage
	if err := c.get("/orders/booster/"+strconv.FormatInt(boosterID, 10), nil, &result); err != nil {
		return nil, err
	}
	return result.Orders, nil
}

func (c *Client) GetPlayerOrders(playerID int64) ([]data.Order, error) {
	var result OrdersPage
	if err := c.get("/orders/player/"+strconv.FormatInt(playerID, 10), nil, &result); err != nil {
		return nil, err
	}
	return result.Orders, nil
}

func (c *Client) CreateOrder(ctx context.Context, req requests.CreateOrder) (*data.Order, error) {
	var result data.Order
	if err := c.postJSON(ctx, "/orders", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitOrder is the legacy creation endpoint kept for backends that have
// not migrated to POST /orders.
func (c *Client) SubmitOrder(ctx context.Context, req requests.CreateOrder) (*data.Order, error) {
	var result data.Order
	if err := c.postJSON(ctx, "/orders/submit", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) AcceptOrder(ctx context.Context, orderID int64, txHash string) error {
	return c.postJSON(ctx, "/orders/accept", requests.NewAcceptOrder(orderID, txHash), nil)
}

func (c *Client) ConfirmOrder(ctx context.Context, orderID int64, txHash string) error {
	return c.postJSON(ctx, "/orders/confirm", requests.NewConfirmOrder(orderID, txHash), nil)
}

func (c *Client) CompleteOrder(ctx context.Context, orderID int64, note, txHash, completionStatus string) error {
	return c.postJSON(ctx, "/orders/complete", requests.NewCompleteOrder(orderID, note, txHash, completionStatus), nil)
}

func (c *Client) CancelOrder(ctx context.Context, orderID int64, reason, txHash string) error {
	return c.postJSON(ctx, "/orders/cancel", requests.NewCancelOrder(orderID, reason, txHash), nil)
}

// GetPlayerInfo proxies the third-party rank lookup used to pre-fill order
// creation.
func (c *Client) GetPlayerInfo(characterName, tagLine string) (*data.PlayerAccount, error) {
	q := url.Values{}
	q.Set("characterName", characterName)
	q.Set("tagLine", tagLine)

	var result data.PlayerAccount
	if err := c.get("/riot/getWithRank", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
