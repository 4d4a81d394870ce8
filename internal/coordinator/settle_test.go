package coordinator

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uplift-force/coordinator-svc/internal/data"
)

var oracleTx = common.HexToHash("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")

func packEventData(t *testing.T, values ...interface{}) []byte {
	uint256T, err := abi.NewType("uint256", "", nil)
	require.NoError(t, err)
	bytes32T, err := abi.NewType("bytes32", "", nil)
	require.NoError(t, err)

	var args abi.Arguments
	for _, v := range values {
		switch v.(type) {
		case *big.Int:
			args = append(args, abi.Argument{Type: uint256T})
		case [32]byte:
			args = append(args, abi.Argument{Type: bytes32T})
		default:
			t.Fatalf("unsupported event argument type %T", v)
		}
	}

	data, err := args.Pack(values...)
	require.NoError(t, err)
	return data
}

func completedLog(t *testing.T, orderID int64, fee, reward *big.Int) types.Log {
	return types.Log{
		Address: testContract,
		Topics: []common.Hash{
			crypto.Keccak256Hash([]byte("OrderCompleted(uint256,uint256,uint256,bytes32)")),
			common.BigToHash(big.NewInt(orderID)),
		},
		Data:   packEventData(t, fee, reward, [32]byte(oracleTx)),
		TxHash: oracleTx,
	}
}

func failedLog(t *testing.T, orderID int64, refund, toPlayer, toPlatform *big.Int) types.Log {
	return types.Log{
		Address: testContract,
		Topics: []common.Hash{
			crypto.Keccak256Hash([]byte("OrderFailed(uint256,uint256,uint256,uint256,bytes32)")),
			common.BigToHash(big.NewInt(orderID)),
		},
		Data:   packEventData(t, refund, toPlayer, toPlatform, [32]byte(oracleTx)),
		TxHash: oracleTx,
	}
}

func TestCompleteOrderSettledAsCompleted(t *testing.T) {
	chain := &fakeChain{
		receiptStatus: types.ReceiptStatusSuccessful,
		head:          10,
		subLogs:       []types.Log{completedLog(t, 42, big.NewInt(125), big.NewInt(2000))},
	}
	backend := newFakeBackend()
	journal := newFakeJournal()
	c := newTestCoordinator(t, chain, backend, journal)

	result, err := c.CompleteOrder(context.Background(), testOrder())
	require.NoError(t, err)

	assert.True(t, result.Completed)
	assert.Zero(t, big.NewInt(125).Cmp(result.PlatformFee))
	assert.Zero(t, big.NewInt(2000).Cmp(result.BoosterReward))
	assert.Equal(t, oracleTx.Hex(), result.SettlementTxHash)

	require.Len(t, backend.completes, 1)
	assert.Equal(t, int64(42), backend.completes[0].orderID)
	assert.Equal(t, "completed", backend.completes[0].status)
	assert.Equal(t, oracleTx.Hex(), backend.completes[0].txHash)

	assert.Equal(t, data.ActionSettled, journal.record(1).State)
}

func TestCompleteOrderSettledAsFailed(t *testing.T) {
	chain := &fakeChain{
		receiptStatus: types.ReceiptStatusSuccessful,
		head:          10,
		subLogs:       []types.Log{failedLog(t, 42, big.NewInt(1500), big.NewInt(300), big.NewInt(75))},
	}
	backend := newFakeBackend()
	journal := newFakeJournal()
	c := newTestCoordinator(t, chain, backend, journal)

	result, err := c.CompleteOrder(context.Background(), testOrder())
	require.NoError(t, err)

	assert.False(t, result.Completed)
	assert.Zero(t, big.NewInt(1500).Cmp(result.PlayerRefund))
	assert.Zero(t, big.NewInt(300).Cmp(result.PenaltyToPlayer))
	assert.Zero(t, big.NewInt(75).Cmp(result.PenaltyToPlatform))

	require.Len(t, backend.completes, 1)
	assert.Equal(t, "failed", backend.completes[0].status)
}

func TestCompleteOrderSettlementTimeout(t *testing.T) {
	chain := &fakeChain{receiptStatus: types.ReceiptStatusSuccessful, head: 10}
	backend := newFakeBackend()
	journal := newFakeJournal()
	c := newTestCoordinator(t, chain, backend, journal)

	_, err := c.CompleteOrder(context.Background(), testOrder())
	assert.ErrorIs(t, err, ErrSettlementTimeout)

	// the completion tx is on chain, the verdict is just not known yet
	assert.Equal(t, 1, chain.sentCount())
	assert.Empty(t, backend.completes)
	assert.Equal(t, data.ActionSplitState, journal.record(1).State)
}

func TestCompleteOrderSettlementBackendFailure(t *testing.T) {
	chain := &fakeChain{
		receiptStatus: types.ReceiptStatusSuccessful,
		head:          10,
		subLogs:       []types.Log{completedLog(t, 42, big.NewInt(125), big.NewInt(2000))},
	}
	backend := newFakeBackend()
	backend.err = assert.AnError
	journal := newFakeJournal()
	c := newTestCoordinator(t, chain, backend, journal)

	result, err := c.CompleteOrder(context.Background(), testOrder())

	var recErr *ReconciliationError
	require.ErrorAs(t, err, &recErr)

	// the verdict itself is still usable by the caller
	require.NotNil(t, result)
	assert.True(t, result.Completed)
	assert.Equal(t, data.ActionSplitState, journal.record(1).State)
}
