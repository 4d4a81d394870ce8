package config

import (
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/uplift-force/coordinator-svc/internal/wallet"
)

func (c *config) Wallet() *wallet.Wallet {
	return c.walletOnce.Do(func() interface{} {
		var cfg struct {
			PrivateKey string `fig:"private_key,required"`
		}
		err := figure.Out(&cfg).
			From(kv.MustGetStringMap(c.getter, "wallet")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out wallet"))
		}

		w, err := wallet.New(cfg.PrivateKey, c.Network().ChainID)
		if err != nil {
			panic(errors.Wrap(err, "failed to load wallet key"))
		}
		return w
	}).(*wallet.Wallet)
}
