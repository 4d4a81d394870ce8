// Package service runs the background reconciler: it re-drives journal
// records stuck in split_state, where a transaction confirmed on chain but
// the marketplace backend was never told.
package service

import (
	"context"
	"time"

	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
	"gitlab.com/distributed_lab/running"

	"github.com/uplift-force/coordinator-svc/internal/config"
	"github.com/uplift-force/coordinator-svc/internal/coordinator"
	"github.com/uplift-force/coordinator-svc/internal/data"
	"github.com/uplift-force/coordinator-svc/internal/data/postgres"
	"github.com/uplift-force/coordinator-svc/internal/gateway"
	"github.com/uplift-force/coordinator-svc/internal/session"
)

type service struct {
	log     *logan.Entry
	backend coordinator.Backend
	journal data.Actions
}

func (s *service) run() error {
	s.log.Info("service started")
	running.WithBackOff(context.Background(), s.log, "reconciler", s.worker, retryPeriod, retryPeriod, time.Minute)

	return nil
}

func newService(cfg config.Config) *service {
	tokens, err := session.NewFileStore(cfg.Session().TokenFile)
	if err != nil {
		panic(errors.Wrap(err, "failed to open token store"))
	}

	backend := cfg.Backend()
	return &service{
		log:     cfg.Log(),
		backend: gateway.New(cfg.Log(), backend.Endpoint, backend.RequestTimeout, tokens),
		journal: postgres.NewActions(cfg.DB()),
	}
}

func Run(cfg config.Config) {
	if err := newService(cfg).run(); err != nil {
		panic(err)
	}
}
