// Package coordinator drives each order lifecycle action through a fixed
// five-phase protocol: precondition check, simulate, submit, await
// confirmations, reconcile with the backend. No transaction is ever
// submitted after a failed simulation, and a chain-success/backend-failure
// split is always surfaced as its own error condition.
package coordinator

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/uplift-force/coordinator-svc/internal/data"
	"github.com/uplift-force/coordinator-svc/internal/escrow"
	"github.com/uplift-force/coordinator-svc/internal/gateway/requests"
	"github.com/uplift-force/coordinator-svc/internal/wallet"
	"gitlab.com/distributed_lab/logan/v3"
)

const (
	actionCreate   = "create"
	actionAccept   = "accept"
	actionConfirm  = "confirm"
	actionComplete = "complete"
	actionCancel   = "cancel"
)

const (
	defaultConfirmations = 1
	defaultSettleWindow  = 150 * time.Second
	defaultPollPeriod    = 2 * time.Second
)

// ChainClient is the subset of ethclient.Client the coordinator needs.
type ChainClient interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
	SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error)
}

// Backend is the slice of the Order Gateway used for reconciliation.
type Backend interface {
	CreateOrder(ctx context.Context, req requests.CreateOrder) (*data.Order, error)
	AcceptOrder(ctx context.Context, orderID int64, txHash string) error
	ConfirmOrder(ctx context.Context, orderID int64, txHash string) error
	CompleteOrder(ctx context.Context, orderID int64, note, txHash, completionStatus string) error
	CancelOrder(ctx context.Context, orderID int64, reason, txHash string) error
}

type Coordinator struct {
	log     *logan.Entry
	eth     ChainClient
	escrow  *escrow.Escrow
	backend Backend
	wallet  *wallet.Wallet
	journal data.Actions

	confirmations uint64
	settleWindow  time.Duration
	pollPeriod    time.Duration

	mu       sync.Mutex
	inflight map[actionKey]struct{}
}

type Opts struct {
	Log     *logan.Entry
	Eth     ChainClient
	Escrow  *escrow.Escrow
	Backend Backend
	Wallet  *wallet.Wallet
	Journal data.Actions

	// Confirmations to await before an action is considered mined. The
	// source history used both 1 and 3 for structurally identical actions;
	// one configurable count is used for all of them here.
	Confirmations uint64
	// SettleWindow bounds the settlement event listening phase.
	SettleWindow time.Duration
	// PollPeriod between receipt checks while awaiting confirmations.
	PollPeriod time.Duration
}

func New(opts Opts) *Coordinator {
	if opts.Confirmations == 0 {
		opts.Confirmations = defaultConfirmations
	}
	if opts.SettleWindow == 0 {
		opts.SettleWindow = defaultSettleWindow
	}
	if opts.PollPeriod == 0 {
		opts.PollPeriod = defaultPollPeriod
	}
	return &Coordinator{
		log:           opts.Log,
		eth:           opts.Eth,
		escrow:        opts.Escrow,
		backend:       opts.Backend,
		wallet:        opts.Wallet,
		journal:       opts.Journal,
		confirmations: opts.Confirmations,
		settleWindow:  opts.SettleWindow,
		pollPeriod:    opts.PollPeriod,
		inflight:      make(map[actionKey]struct{}),
	}
}

type actionKey struct {
	orderID int64
	action  string
}

// acquire sets the in-flight flag for an (order, action) pair. It is the
// mutual-exclusion lock the UI button-disable used to provide.
func (c *Coordinator) acquire(orderID int64, action string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := actionKey{orderID: orderID, action: action}
	if _, busy := c.inflight[key]; busy {
		return false
	}
	c.inflight[key] = struct{}{}
	return true
}

func (c *Coordinator) release(orderID int64, action string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, actionKey{orderID: orderID, action: action})
}

func (c *Coordinator) journalInsert(orderID int64, action string) int64 {
	if c.journal == nil {
		return 0
	}
	id, err := c.journal.Insert(data.ActionRecord{
		OrderID: orderID,
		Action:  action,
		State:   data.ActionPending,
	})
	if err != nil {
		c.log.WithError(err).Error("failed to journal action")
		return 0
	}
	return id
}

func (c *Coordinator) journalTxHash(id int64, txHash common.Hash) {
	if c.journal == nil || id == 0 {
		return
	}
	if err := c.journal.UpdateTxHash(id, txHash.Hex()); err != nil {
		c.log.WithError(err).Error("failed to journal tx hash")
	}
}

func (c *Coordinator) journalState(id int64, state data.ActionState, note string) {
	if c.journal == nil || id == 0 {
		return
	}
	if err := c.journal.UpdateState(id, state, note); err != nil {
		c.log.WithError(err).Error("failed to journal action state")
	}
}

// chainOrderID resolves the contract-side order id: the dedicated field when
// the backend filled it, the database id as a legacy fallback otherwise.
func chainOrderID(ord data.Order) *big.Int {
	if ord.ChainOrderID != "" {
		if id, ok := new(big.Int).SetString(ord.ChainOrderID, 10); ok {
			return id
		}
	}
	return big.NewInt(ord.ID)
}
