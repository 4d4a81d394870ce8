package config

import (
	"gitlab.com/distributed_lab/kit/comfig"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/kit/pgdb"

	"github.com/uplift-force/coordinator-svc/internal/wallet"
)

type Config interface {
	comfig.Logger
	pgdb.Databaser

	Network() Network
	Backend() Backend
	Wallet() *wallet.Wallet
	Session() Session
}

type config struct {
	comfig.Logger
	pgdb.Databaser
	getter      kv.Getter
	networkOnce comfig.Once
	backendOnce comfig.Once
	walletOnce  comfig.Once
	sessionOnce comfig.Once
}

func New(getter kv.Getter) Config {
	return &config{
		getter:    getter,
		Databaser: pgdb.NewDatabaser(getter),
		Logger:    comfig.NewLogger(getter, comfig.LoggerOpts{}),
	}
}
