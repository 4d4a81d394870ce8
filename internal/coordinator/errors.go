package coordinator

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// ErrActionInFlight rejects a second invocation of an action while the first
// pipeline for the same (order, action) pair is still running.
var ErrActionInFlight = errors.New("action is already in flight for this order")

// ErrSettlementTimeout reports that no settlement event arrived within the
// configured window; the caller should re-check the order state manually.
var ErrSettlementTimeout = errors.New("no settlement event received within the configured window")

// ConfigurationError marks a missing contract address or signing identity.
// It is fatal to the attempted action and distinct from transaction failures.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return "coordinator is not configured: missing " + e.Missing
}

// SimulationRevertError means the contract would reject the call; the action
// was aborted before any transaction was sent. Reason is best-effort and may
// be empty when the node exposes no structured revert data.
type SimulationRevertError struct {
	Action string
	Reason string
	Cause  error
}

func (e *SimulationRevertError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s simulation reverted: %s", e.Action, e.Reason)
	}
	return fmt.Sprintf("%s simulation reverted", e.Action)
}

func (e *SimulationRevertError) Unwrap() error {
	return e.Cause
}

// TransactionFailure means the submitted transaction was mined with a failed
// status. Terminal for this attempt; there is no automatic retry.
type TransactionFailure struct {
	Action string
	TxHash common.Hash
}

func (e *TransactionFailure) Error() string {
	return fmt.Sprintf("%s transaction %s was mined with failure status", e.Action, e.TxHash.Hex())
}

// ReconciliationError is the split-state condition: the on-chain step
// succeeded but the backend update failed, so off-chain records are stale
// relative to chain truth.
type ReconciliationError struct {
	Action string
	TxHash common.Hash
	Cause  error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("%s confirmed on chain (tx %s) but backend update failed: %v", e.Action, e.TxHash.Hex(), e.Cause)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Cause
}
