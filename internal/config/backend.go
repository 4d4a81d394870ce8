package config

import (
	"net/url"
	"time"

	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// Backend describes where the marketplace REST API lives. The gateway client
// itself is built by the consumer so it can attach the token source.
type Backend struct {
	Endpoint       *url.URL
	RequestTimeout time.Duration
}

func (c *config) Backend() Backend {
	return c.backendOnce.Do(func() interface{} {
		var cfg struct {
			Endpoint       *url.URL      `fig:"endpoint,required"`
			RequestTimeout time.Duration `fig:"request_timeout"`
		}
		err := figure.Out(&cfg).
			From(kv.MustGetStringMap(c.getter, "backend")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out backend"))
		}

		if cfg.RequestTimeout == 0 {
			cfg.RequestTimeout = defaultRequestTimeout
		}

		return Backend{
			Endpoint:       cfg.Endpoint,
			RequestTimeout: cfg.RequestTimeout,
		}
	}).(Backend)
}
