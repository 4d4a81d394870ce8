package service

import (
	"context"
	"time"

	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/uplift-force/coordinator-svc/internal/data"
)

const retryPeriod = 30 * time.Second

func (s *service) worker(ctx context.Context) error {
	records, err := s.journal.SelectByState(data.ActionSplitState)
	if err != nil {
		return errors.Wrap(err, "failed to select split-state actions")
	}

	for _, rec := range records {
		log := s.log.WithFields(logan.F{
			"record_id": rec.ID,
			"order_id":  rec.OrderID,
			"action":    rec.Action,
			"tx_hash":   rec.TxHash,
		})

		recovered, err := s.redrive(ctx, rec)
		if err != nil {
			log.WithError(err).Warn("backend still rejects the update, will retry")
			continue
		}
		if !recovered {
			// The original request payload is not journaled for these
			// actions, so chain truth has to be restored by an operator.
			log.Warn("split-state action needs manual reconciliation")
			continue
		}

		if err = s.journal.UpdateState(rec.ID, data.ActionConfirmed, ""); err != nil {
			return errors.Wrap(err, "failed to mark action reconciled")
		}
		log.Info("reconciled split-state action")
	}

	return nil
}

// redrive retries the backend update for actions whose full request can be
// rebuilt from the journal record alone.
func (s *service) redrive(ctx context.Context, rec data.ActionRecord) (bool, error) {
	switch rec.Action {
	case "accept":
		return true, s.backend.AcceptOrder(ctx, rec.OrderID, rec.TxHash)
	case "confirm":
		return true, s.backend.ConfirmOrder(ctx, rec.OrderID, rec.TxHash)
	default:
		return false, nil
	}
}
