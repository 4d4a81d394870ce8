package coordinator

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/uplift-force/coordinator-svc/internal/amount"
	"github.com/uplift-force/coordinator-svc/internal/data"
	"github.com/uplift-force/coordinator-svc/internal/escrow"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// SettlementResult is the oracle verdict extracted from an OrderCompleted or
// OrderFailed event.
type SettlementResult struct {
	Completed        bool
	SettlementTxHash string

	// Completed
	PlatformFee   *big.Int
	BoosterReward *big.Int

	// Failed
	PlayerRefund      *big.Int
	PenaltyToPlayer   *big.Int
	PenaltyToPlatform *big.Int
}

// watchSettlement subscribes to the settlement events of one order, bounded
// by the configured window. The subscription is torn down on the terminal
// event, a subscription error, or the timeout, whichever comes first.
func (c *Coordinator) watchSettlement(ctx context.Context, ord data.Order, completeTx common.Hash, recID int64) (*SettlementResult, error) {
	log := c.log.WithFields(logan.F{"order_id": ord.ID, "complete_tx": completeTx.Hex()})

	watchCtx, cancel := context.WithTimeout(ctx, c.settleWindow)
	defer cancel()

	logs := make(chan types.Log, 8)
	sub, err := c.eth.SubscribeFilterLogs(watchCtx, c.escrow.SettlementQuery(chainOrderID(ord)), logs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to subscribe to settlement events")
	}
	defer sub.Unsubscribe()

	log.Info("listening for settlement events")
	for {
		select {
		case <-watchCtx.Done():
			c.journalState(recID, data.ActionSplitState, "settlement window elapsed without an event")
			return nil, ErrSettlementTimeout
		case subErr := <-sub.Err():
			return nil, errors.Wrap(subErr, "settlement subscription failed")
		case lg := <-logs:
			ev, parseErr := c.escrow.ParseSettlement(lg)
			if parseErr != nil {
				log.WithError(parseErr).Warn("skipping unparseable settlement log")
				continue
			}
			return c.reconcileSettlement(ctx, ord, completeTx, lg, ev, recID)
		}
	}
}

func (c *Coordinator) reconcileSettlement(
	ctx context.Context, ord data.Order, completeTx common.Hash,
	lg types.Log, ev interface{}, recID int64,
) (*SettlementResult, error) {
	settlementTx := lg.TxHash.Hex()
	result := &SettlementResult{SettlementTxHash: settlementTx}

	var status data.OrderStatus
	var note string
	switch ev := ev.(type) {
	case *escrow.OrderCompleted:
		result.Completed = true
		result.PlatformFee = ev.PlatformFee
		result.BoosterReward = ev.BoosterReward
		status = data.StatusCompleted
		note = fmt.Sprintf(
			"Order completed via settlement event. Platform fee: %s, booster reward: %s. Complete tx: %s, settlement tx: %s",
			amount.FormatWei(ev.PlatformFee), amount.FormatWei(ev.BoosterReward),
			completeTx.Hex(), settlementTx,
		)
	case *escrow.OrderFailed:
		result.PlayerRefund = ev.PlayerRefund
		result.PenaltyToPlayer = ev.PenaltyToPlayer
		result.PenaltyToPlatform = ev.PenaltyToPlatform
		status = data.StatusFailed
		note = fmt.Sprintf(
			"Order failed via settlement event. Player refund: %s, penalty to player: %s, penalty to platform: %s. Complete tx: %s, settlement tx: %s",
			amount.FormatWei(ev.PlayerRefund), amount.FormatWei(ev.PenaltyToPlayer), amount.FormatWei(ev.PenaltyToPlatform),
			completeTx.Hex(), settlementTx,
		)
	default:
		return nil, errors.New("unexpected settlement event type")
	}

	if err := c.backend.CompleteOrder(ctx, ord.ID, note, settlementTx, string(status)); err != nil {
		c.journalState(recID, data.ActionSplitState, note)
		return result, &ReconciliationError{Action: actionComplete, TxHash: lg.TxHash, Cause: err}
	}

	c.journalState(recID, data.ActionSettled, note)
	return result, nil
}
