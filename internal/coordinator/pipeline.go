package coordinator

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/uplift-force/coordinator-svc/internal/data"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type pipeline struct {
	action  string
	orderID int64
	data    []byte
	value   *big.Int

	// reconcile persists the resulting state in the backend; nil for the
	// completion path, whose reconciliation is driven by settlement events.
	reconcile func(ctx context.Context, txHash string) error
}

// run executes phases 1-5 and returns the tx hash together with the journal
// record id, so the completion path can finish the record from settlement
// events. The caller holds the in-flight flag.
func (c *Coordinator) run(ctx context.Context, p pipeline) (common.Hash, int64, error) {
	log := c.log.WithFields(logan.F{"action": p.action, "order_id": p.orderID})

	// Phase 1: preconditions.
	if c.wallet == nil {
		return common.Hash{}, 0, &ConfigurationError{Missing: "signing wallet"}
	}
	if c.escrow == nil || c.escrow.Address() == (common.Address{}) {
		return common.Hash{}, 0, &ConfigurationError{Missing: "escrow contract address"}
	}

	contract := c.escrow.Address()
	msg := ethereum.CallMsg{
		From:  c.wallet.Address(),
		To:    &contract,
		Value: p.value,
		Data:  p.data,
	}

	recID := c.journalInsert(p.orderID, p.action)

	// Phase 2: simulate. A revert here means the transaction is never sent.
	log.Debug("simulating contract call")
	if _, err := c.eth.CallContract(ctx, msg, nil); err != nil {
		reason, _ := c.escrow.DecodeRevert(err)
		c.journalState(recID, data.ActionFailed, "simulation reverted: "+reason)
		return common.Hash{}, recID, &SimulationRevertError{Action: p.action, Reason: reason, Cause: err}
	}

	// Phase 3: submit with exactly the simulated arguments and value.
	log.Debug("submitting transaction")
	txHash, err := c.submit(ctx, msg)
	if err != nil {
		c.journalState(recID, data.ActionFailed, "submission failed")
		return common.Hash{}, recID, errors.Wrap(err, "failed to submit transaction")
	}
	c.journalTxHash(recID, txHash)
	log = log.WithField("tx_hash", txHash.Hex())

	// Phase 4: await the configured confirmation count.
	log.Info("transaction sent, awaiting confirmations")
	if err = c.waitConfirmed(ctx, p.action, txHash); err != nil {
		if _, failed := err.(*TransactionFailure); failed {
			c.journalState(recID, data.ActionFailed, "mined with failure status")
		}
		return txHash, recID, err
	}

	if p.reconcile == nil {
		// Settlement events will finish this record.
		return txHash, recID, nil
	}

	// Phase 5: reconcile the backend; its failure is independent of the
	// on-chain success and must never look like one.
	log.Debug("reconciling backend state")
	if err = p.reconcile(ctx, txHash.Hex()); err != nil {
		c.journalState(recID, data.ActionSplitState, err.Error())
		return txHash, recID, &ReconciliationError{Action: p.action, TxHash: txHash, Cause: err}
	}

	c.journalState(recID, data.ActionConfirmed, "")
	log.Info("action reconciled")
	return txHash, recID, nil
}

func (c *Coordinator) submit(ctx context.Context, msg ethereum.CallMsg) (common.Hash, error) {
	nonce, err := c.eth.PendingNonceAt(ctx, msg.From)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to get account nonce")
	}
	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to get gas price")
	}
	gasLimit, err := c.eth.EstimateGas(ctx, msg)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to estimate gas")
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       msg.To,
		Value:    msg.Value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     msg.Data,
	})
	signed, err := c.wallet.SignTx(tx)
	if err != nil {
		return common.Hash{}, err
	}

	if err = c.eth.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to send transaction")
	}
	return signed.Hash(), nil
}

// waitConfirmed polls for the receipt and then for the head to advance far
// enough past it. A failed receipt status is terminal for this attempt.
func (c *Coordinator) waitConfirmed(ctx context.Context, action string, txHash common.Hash) error {
	ticker := time.NewTicker(c.pollPeriod)
	defer ticker.Stop()

	for {
		receipt, err := c.eth.TransactionReceipt(ctx, txHash)
		if err != nil && err != ethereum.NotFound {
			c.log.WithError(err).WithField("tx_hash", txHash.Hex()).
				Debug("receipt not available yet")
		}
		if err == nil && receipt != nil && receipt.BlockNumber != nil {
			head, headErr := c.eth.BlockNumber(ctx)
			if headErr != nil {
				return errors.Wrap(headErr, "failed to get head block number")
			}
			if head+1 >= receipt.BlockNumber.Uint64()+c.confirmations {
				if receipt.Status != types.ReceiptStatusSuccessful {
					return &TransactionFailure{Action: action, TxHash: txHash}
				}
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "cancelled while awaiting confirmations")
		case <-ticker.C:
		}
	}
}
