package config

import (
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type Session struct {
	TokenFile string
}

const defaultTokenFile = ".uplift-tokens.json"

func (c *config) Session() Session {
	return c.sessionOnce.Do(func() interface{} {
		var cfg struct {
			TokenFile string `fig:"token_file"`
		}
		err := figure.Out(&cfg).
			From(kv.MustGetStringMap(c.getter, "session")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out session"))
		}

		if cfg.TokenFile == "" {
			cfg.TokenFile = defaultTokenFile
		}
		return Session{TokenFile: cfg.TokenFile}
	}).(Session)
}
