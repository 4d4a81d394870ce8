package data

// ActionState tracks a coordinated lifecycle action through its pipeline.
// split_state marks the inconsistent case: the transaction confirmed on
// chain but the backend reconcile call failed, so off-chain records are
// stale relative to chain truth until re-driven.
type ActionState string

const (
	ActionPending    ActionState = "pending"
	ActionConfirmed  ActionState = "confirmed"
	ActionFailed     ActionState = "failed"
	ActionSplitState ActionState = "split_state"
	ActionSettled    ActionState = "settled"
)

type ActionRecord struct {
	ID      int64  `structs:"-" db:"id"`
	OrderID int64  `structs:"order_id" db:"order_id"`
	Action  string `structs:"action" db:"action"`
	TxHash  string `structs:"tx_hash" db:"tx_hash"`

	State ActionState `structs:"state" db:"state"`
	Note  string      `structs:"note" db:"note"`
}

type Actions interface {
	Insert(ActionRecord) (int64, error)
	UpdateState(id int64, state ActionState, note string) error
	UpdateTxHash(id int64, txHash string) error
	SelectByState(state ActionState) ([]ActionRecord, error)
}
