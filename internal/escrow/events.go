package escrow

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const (
	eventOrderCompleted = "OrderCompleted"
	eventOrderFailed    = "OrderFailed"
)

// OrderCompleted is emitted by the settlement oracle when boost verification
// succeeds and the escrow pays out.
type OrderCompleted struct {
	OrderId       *big.Int
	PlatformFee   *big.Int
	BoosterReward *big.Int
	CurrentTxHash [32]byte

	Raw types.Log
}

// OrderFailed is emitted when verification fails and the escrow refunds the
// player and distributes penalties.
type OrderFailed struct {
	OrderId           *big.Int
	PlayerRefund      *big.Int
	PenaltyToPlayer   *big.Int
	PenaltyToPlatform *big.Int
	CurrentTxHash     [32]byte

	Raw types.Log
}

// ParseSettlement unpacks a log matched by SettlementQuery into either
// *OrderCompleted or *OrderFailed.
func (e *Escrow) ParseSettlement(log types.Log) (interface{}, error) {
	if len(log.Topics) < 2 {
		return nil, errors.New("settlement log has no orderId topic")
	}
	orderID := new(big.Int).SetBytes(log.Topics[1].Bytes())

	switch log.Topics[0] {
	case e.abi.Events[eventOrderCompleted].ID:
		var ev OrderCompleted
		if err := e.abi.UnpackIntoInterface(&ev, eventOrderCompleted, log.Data); err != nil {
			return nil, errors.Wrap(err, "failed to unpack event", logan.F{"event": eventOrderCompleted})
		}
		ev.OrderId = orderID
		ev.Raw = log
		return &ev, nil
	case e.abi.Events[eventOrderFailed].ID:
		var ev OrderFailed
		if err := e.abi.UnpackIntoInterface(&ev, eventOrderFailed, log.Data); err != nil {
			return nil, errors.Wrap(err, "failed to unpack event", logan.F{"event": eventOrderFailed})
		}
		ev.OrderId = orderID
		ev.Raw = log
		return &ev, nil
	}

	return nil, errors.From(errors.New("log does not match a settlement event"), logan.F{
		"topic": log.Topics[0].Hex(),
	})
}

// SettlementTxHash renders the oracle-reported tx hash argument of a
// settlement event.
func SettlementTxHash(h [32]byte) string {
	return common.Hash(h).Hex()
}
