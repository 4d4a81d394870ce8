package config

import (
	"math"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type Network struct {
	Client        *ethclient.Client
	Contract      common.Address
	ChainID       *big.Int
	Confirmations uint64
	PollPeriod    time.Duration
	SettleWindow  time.Duration
}

const defaultRequestTimeout = 10 * time.Second
const maxChainID int64 = math.MaxUint64/2 - 36

func (c *config) Network() Network {
	return c.networkOnce.Do(func() interface{} {
		var cfg struct {
			RPC           string         `fig:"rpc,required"`
			Contract      common.Address `fig:"contract,required"`
			ChainID       int64          `fig:"chain_id,required"`
			Confirmations uint64         `fig:"confirmations"`
			PollPeriod    time.Duration  `fig:"poll_period"`
			SettleWindow  time.Duration  `fig:"settle_window"`
		}

		err := figure.Out(&cfg).
			With(figure.EthereumHooks).
			From(kv.MustGetStringMap(c.getter, "network")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out network"))
		}

		if cfg.ChainID > maxChainID || cfg.ChainID <= 0 {
			panic("chain_id value out of range due to EIP 2294")
		}
		cli, err := ethclient.Dial(cfg.RPC)
		if err != nil {
			panic(errors.Wrap(err, "failed to connect to RPC provider"))
		}

		return Network{
			Client:        cli,
			Contract:      cfg.Contract,
			ChainID:       big.NewInt(cfg.ChainID),
			Confirmations: cfg.Confirmations,
			PollPeriod:    cfg.PollPeriod,
			SettleWindow:  cfg.SettleWindow,
		}
	}).(Network)
}
