package coordinator

import (
	"context"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/uplift-force/coordinator-svc/internal/amount"
	"github.com/uplift-force/coordinator-svc/internal/data"
	"github.com/uplift-force/coordinator-svc/internal/gateway/requests"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// CreateDraft is everything a player supplies when posting an order.
type CreateDraft struct {
	GameType     string
	ServerRegion string
	GameAccount  string
	GameMode     string
	ServiceType  string
	CurrentRank  string
	TargetRank   string
	PUUID        string
	Requirements string
	TotalAmount  string
	Deadline     time.Time
}

// CreateOrder escrows the 15% player deposit and registers the order with
// the backend.
func (c *Coordinator) CreateOrder(ctx context.Context, draft CreateDraft) (common.Hash, error) {
	if !c.acquire(0, actionCreate) {
		return common.Hash{}, ErrActionInFlight
	}
	defer c.release(0, actionCreate)

	total, err := amount.ToWei(draft.TotalAmount)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "invalid total amount")
	}
	requirements := draft.Requirements
	if requirements == "" {
		requirements = "No additional requirements"
	}
	deadline := big.NewInt(draft.Deadline.Unix())

	callData, err := c.escrow.PackCreateOrder(total, deadline, draft.GameType, draft.GameMode, requirements)
	if err != nil {
		return common.Hash{}, err
	}

	txHash, _, err := c.run(ctx, pipeline{
		action: actionCreate,
		data:   callData,
		value:  amount.Deposit(total),
		reconcile: func(ctx context.Context, txHash string) error {
			_, err := c.backend.CreateOrder(ctx, requests.CreateOrder{
				GameType:     draft.GameType,
				ServerRegion: draft.ServerRegion,
				GameAccount:  draft.GameAccount,
				GameMode:     draft.GameMode,
				ServiceType:  draft.ServiceType,
				CurrentRank:  draft.CurrentRank,
				TargetRank:   draft.TargetRank,
				PUUID:        draft.PUUID,
				Requirements: draft.Requirements,
				TotalAmount:  draft.TotalAmount,
				Deadline:     strconv.FormatInt(draft.Deadline.Unix(), 10),
				TxHash:       txHash,
			})
			return err
		},
	})
	return txHash, err
}

// AcceptOrder escrows the 15% booster deposit for a posted order.
func (c *Coordinator) AcceptOrder(ctx context.Context, ord data.Order) (common.Hash, error) {
	if !c.acquire(ord.ID, actionAccept) {
		return common.Hash{}, ErrActionInFlight
	}
	defer c.release(ord.ID, actionAccept)

	total, err := amount.ToWei(ord.TotalAmount)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "invalid order total amount")
	}
	callData, err := c.escrow.PackAcceptOrder(chainOrderID(ord))
	if err != nil {
		return common.Hash{}, err
	}

	txHash, _, err := c.run(ctx, pipeline{
		action:  actionAccept,
		orderID: ord.ID,
		data:    callData,
		value:   amount.Deposit(total),
		reconcile: func(ctx context.Context, txHash string) error {
			return c.backend.AcceptOrder(ctx, ord.ID, txHash)
		},
	})
	return txHash, err
}

// ConfirmOrder pays the remaining 85% into escrow.
func (c *Coordinator) ConfirmOrder(ctx context.Context, ord data.Order) (common.Hash, error) {
	if !c.acquire(ord.ID, actionConfirm) {
		return common.Hash{}, ErrActionInFlight
	}
	defer c.release(ord.ID, actionConfirm)

	total, err := amount.ToWei(ord.TotalAmount)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "invalid order total amount")
	}
	callData, err := c.escrow.PackConfirmOrder(chainOrderID(ord))
	if err != nil {
		return common.Hash{}, err
	}

	txHash, _, err := c.run(ctx, pipeline{
		action:  actionConfirm,
		orderID: ord.ID,
		data:    callData,
		value:   amount.FinalPayment(total),
		reconcile: func(ctx context.Context, txHash string) error {
			return c.backend.ConfirmOrder(ctx, ord.ID, txHash)
		},
	})
	return txHash, err
}

// CancelOrder cancels an order on chain and reports the reason to the
// backend.
func (c *Coordinator) CancelOrder(ctx context.Context, ord data.Order, reason string) (common.Hash, error) {
	if !c.acquire(ord.ID, actionCancel) {
		return common.Hash{}, ErrActionInFlight
	}
	defer c.release(ord.ID, actionCancel)

	callData, err := c.escrow.PackCancelOrder(chainOrderID(ord))
	if err != nil {
		return common.Hash{}, err
	}

	txHash, _, err := c.run(ctx, pipeline{
		action:  actionCancel,
		orderID: ord.ID,
		data:    callData,
		reconcile: func(ctx context.Context, txHash string) error {
			return c.backend.CancelOrder(ctx, ord.ID, reason, txHash)
		},
	})
	return txHash, err
}

// CompleteOrder requests completion on chain, then listens for the
// asynchronous settlement verdict produced by the verification oracle and
// reconciles the backend from the event arguments. The in-flight flag stays
// set for the whole span and is cleared on every exit path, including the
// listening timeout.
func (c *Coordinator) CompleteOrder(ctx context.Context, ord data.Order) (*SettlementResult, error) {
	if !c.acquire(ord.ID, actionComplete) {
		return nil, ErrActionInFlight
	}
	defer c.release(ord.ID, actionComplete)

	callData, err := c.escrow.PackCompleteOrder(chainOrderID(ord))
	if err != nil {
		return nil, err
	}

	txHash, recID, err := c.run(ctx, pipeline{
		action:  actionComplete,
		orderID: ord.ID,
		data:    callData,
	})
	if err != nil {
		return nil, err
	}

	return c.watchSettlement(ctx, ord, txHash, recID)
}
