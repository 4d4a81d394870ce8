// Package escrow wraps the BoostChain escrow contract ABI: packing of
// lifecycle calls, best-effort revert decoding and settlement event parsing.
package escrow

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type Escrow struct {
	abi     abi.ABI
	address common.Address
}

func New(address common.Address) (*Escrow, error) {
	parsed, err := abi.JSON(strings.NewReader(escrowABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse escrow ABI")
	}
	return &Escrow{abi: parsed, address: address}, nil
}

func (e *Escrow) Address() common.Address {
	return e.address
}

func (e *Escrow) PackCreateOrder(totalAmount, deadline *big.Int, gameType, gameMode, requirements string) ([]byte, error) {
	data, err := e.abi.Pack("createOrder", totalAmount, deadline, gameType, gameMode, requirements)
	return data, errors.Wrap(err, "failed to pack createOrder")
}

func (e *Escrow) PackAcceptOrder(orderID *big.Int) ([]byte, error) {
	data, err := e.abi.Pack("acceptOrder", orderID)
	return data, errors.Wrap(err, "failed to pack acceptOrder")
}

func (e *Escrow) PackConfirmOrder(orderID *big.Int) ([]byte, error) {
	data, err := e.abi.Pack("confirmOrder", orderID)
	return data, errors.Wrap(err, "failed to pack confirmOrder")
}

func (e *Escrow) PackCompleteOrder(orderID *big.Int) ([]byte, error) {
	data, err := e.abi.Pack("completeOrder", orderID)
	return data, errors.Wrap(err, "failed to pack completeOrder")
}

func (e *Escrow) PackCancelOrder(orderID *big.Int) ([]byte, error) {
	data, err := e.abi.Pack("cancelOrder", orderID)
	return data, errors.Wrap(err, "failed to pack cancelOrder")
}

// DecodeRevert extracts a human-readable revert reason from an eth_call
// error. The reason is best-effort: it is only available when the node
// returns structured revert data, and custom errors are matched against the
// selectors known to the embedded ABI.
func (e *Escrow) DecodeRevert(err error) (string, bool) {
	de, ok := err.(rpc.DataError)
	if !ok {
		return "", false
	}
	raw, ok := de.ErrorData().(string)
	if !ok {
		return "", false
	}

	data, decErr := hex.DecodeString(strings.TrimPrefix(raw, "0x"))
	if decErr != nil || len(data) < 4 {
		return "", false
	}

	// Error(string) selector
	if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
		return reason, true
	}

	for name, abiErr := range e.abi.Errors {
		if strings.EqualFold(hex.EncodeToString(abiErr.ID.Bytes()[:4]), hex.EncodeToString(data[:4])) {
			return name, true
		}
	}

	return "", false
}

// SettlementQuery builds the log filter for the asynchronous settlement
// events of a single order: OrderCompleted and OrderFailed, narrowed by the
// indexed orderId topic.
func (e *Escrow) SettlementQuery(orderID *big.Int) ethereum.FilterQuery {
	return ethereum.FilterQuery{
		Addresses: []common.Address{e.address},
		Topics: [][]common.Hash{
			{e.abi.Events[eventOrderCompleted].ID, e.abi.Events[eventOrderFailed].ID},
			{common.BigToHash(orderID)},
		},
	}
}
