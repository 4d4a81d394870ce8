package cli

import (
	"context"

	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/uplift-force/coordinator-svc/internal/config"
	"github.com/uplift-force/coordinator-svc/internal/coordinator"
	"github.com/uplift-force/coordinator-svc/internal/data"
	"github.com/uplift-force/coordinator-svc/internal/data/postgres"
	"github.com/uplift-force/coordinator-svc/internal/escrow"
	"github.com/uplift-force/coordinator-svc/internal/gateway"
	"github.com/uplift-force/coordinator-svc/internal/session"
)

// app wires the config sections into the clients the commands share. The
// coordinator is built lazily: listing and auth commands never touch the
// chain.
type app struct {
	cfg     config.Config
	log     *logan.Entry
	client  *gateway.Client
	session *session.Session
}

func newApp(cfg config.Config) *app {
	tokens, err := session.NewFileStore(cfg.Session().TokenFile)
	if err != nil {
		panic(errors.Wrap(err, "failed to open token store"))
	}

	backend := cfg.Backend()
	client := gateway.New(cfg.Log(), backend.Endpoint, backend.RequestTimeout, tokens)

	return &app{
		cfg:     cfg,
		log:     cfg.Log(),
		client:  client,
		session: session.New(cfg.Log(), client, tokens, cfg.Wallet()),
	}
}

func (a *app) coordinator() *coordinator.Coordinator {
	net := a.cfg.Network()
	esc, err := escrow.New(net.Contract)
	if err != nil {
		panic(errors.Wrap(err, "failed to load escrow contract ABI"))
	}

	return coordinator.New(coordinator.Opts{
		Log:           a.log,
		Eth:           net.Client,
		Escrow:        esc,
		Backend:       a.client,
		Wallet:        a.cfg.Wallet(),
		Journal:       postgres.NewActions(a.cfg.DB()),
		Confirmations: net.Confirmations,
		SettleWindow:  net.SettleWindow,
		PollPeriod:    net.PollPeriod,
	})
}

func (a *app) login() bool {
	user, err := a.session.Login(context.Background())
	if err != nil {
		a.log.WithError(err).Error("login failed")
		return false
	}
	a.log.WithFields(logan.F{"user_id": user.ID, "username": user.Username, "role": user.Role}).
		Info("logged in")
	return true
}

func (a *app) register(username, email, role string) bool {
	user, err := a.session.Register(context.Background(), session.Profile{
		Username: username,
		Email:    email,
		Role:     data.Role(role),
	})
	if err != nil {
		a.log.WithError(err).Error("registration failed")
		return false
	}
	a.log.WithFields(logan.F{"user_id": user.ID, "username": user.Username}).
		Info("registered and logged in")
	return true
}

func (a *app) logout() bool {
	a.session.Logout(context.Background())
	a.log.Info("logged out")
	return true
}

func (a *app) listOrders(all bool, status string, page, pageSize int) bool {
	params := gateway.OrdersParams{Page: page, PageSize: pageSize, Status: status}

	var (
		result *gateway.OrdersPage
		err    error
	)
	if all {
		result, err = a.client.GetAllOrders(params)
	} else {
		result, err = a.client.GetMyOrders(params)
	}
	if err != nil {
		a.log.WithError(err).Error("failed to list orders")
		return false
	}

	for _, o := range result.Orders {
		a.log.WithFields(logan.F{
			"order_id": o.ID,
			"status":   o.Status,
			"game":     o.GameType,
			"mode":     o.GameMode,
			"total":    o.TotalAmount,
			"deadline": o.Deadline,
		}).Info("order")
	}
	a.log.WithFields(logan.F{"total": result.Total, "page": page}).Info("orders listed")
	return true
}

func (a *app) createOrder(draft coordinator.CreateDraft) bool {
	txHash, err := a.coordinator().CreateOrder(context.Background(), draft)
	if err != nil {
		a.log.WithError(err).Error("failed to create order")
		return false
	}
	a.log.WithField("tx_hash", txHash.Hex()).Info("order created")
	return true
}

func (a *app) acceptOrder(orderID int64) bool {
	ord, ok := a.lookupOrder(orderID)
	if !ok {
		return false
	}
	txHash, err := a.coordinator().AcceptOrder(context.Background(), ord)
	if err != nil {
		a.log.WithError(err).Error("failed to accept order")
		return false
	}
	a.log.WithFields(logan.F{"order_id": orderID, "tx_hash": txHash.Hex()}).Info("order accepted")
	return true
}

func (a *app) confirmOrder(orderID int64) bool {
	ord, ok := a.lookupOrder(orderID)
	if !ok {
		return false
	}
	txHash, err := a.coordinator().ConfirmOrder(context.Background(), ord)
	if err != nil {
		a.log.WithError(err).Error("failed to confirm order")
		return false
	}
	a.log.WithFields(logan.F{"order_id": orderID, "tx_hash": txHash.Hex()}).Info("order confirmed")
	return true
}

func (a *app) completeOrder(orderID int64) bool {
	ord, ok := a.lookupOrder(orderID)
	if !ok {
		return false
	}
	result, err := a.coordinator().CompleteOrder(context.Background(), ord)
	if err != nil {
		a.log.WithError(err).Error("failed to complete order")
		return false
	}

	log := a.log.WithFields(logan.F{"order_id": orderID, "settlement_tx": result.SettlementTxHash})
	if result.Completed {
		log.Info("order settled as completed")
	} else {
		log.Info("order settled as failed, funds returned per penalty schedule")
	}
	return true
}

func (a *app) cancelOrder(orderID int64, reason string) bool {
	ord, ok := a.lookupOrder(orderID)
	if !ok {
		return false
	}
	txHash, err := a.coordinator().CancelOrder(context.Background(), ord, reason)
	if err != nil {
		a.log.WithError(err).Error("failed to cancel order")
		return false
	}
	a.log.WithFields(logan.F{"order_id": orderID, "tx_hash": txHash.Hex()}).Info("order cancelled")
	return true
}

// lookupOrder pages through the marketplace listing until the order shows up.
// The backend exposes no detail endpoint, only filtered listings.
func (a *app) lookupOrder(orderID int64) (data.Order, bool) {
	const pageSize = 50
	for page := 1; ; page++ {
		result, err := a.client.GetAllOrders(gateway.OrdersParams{Page: page, PageSize: pageSize})
		if err != nil {
			a.log.WithError(err).Error("failed to look up order")
			return data.Order{}, false
		}
		for _, o := range result.Orders {
			if o.ID == orderID {
				return o, true
			}
		}
		if len(result.Orders) == 0 || int64(page*pageSize) >= result.Total {
			a.log.WithField("order_id", orderID).Error("order not found")
			return data.Order{}, false
		}
	}
}
