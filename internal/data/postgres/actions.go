package postgres

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/fatih/structs"
	"github.com/uplift-force/coordinator-svc/internal/data"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const actionsTable = "order_actions"

type actions struct {
	db *pgdb.DB
}

func NewActions(db *pgdb.DB) data.Actions {
	return actions{db: db}
}

func (q actions) Insert(rec data.ActionRecord) (int64, error) {
	var id int64
	stmt := squirrel.Insert(actionsTable).SetMap(structs.Map(rec)).Suffix("RETURNING id")
	err := q.db.Get(&id, stmt)
	return id, errors.Wrap(err, "failed to insert action record")
}

func (q actions) UpdateState(id int64, state data.ActionState, note string) error {
	stmt := squirrel.Update(actionsTable).
		SetMap(map[string]interface{}{"state": state, "note": note}).
		Where(squirrel.Eq{"id": id})
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to update action state")
}

func (q actions) UpdateTxHash(id int64, txHash string) error {
	stmt := squirrel.Update(actionsTable).
		Set("tx_hash", txHash).
		Where(squirrel.Eq{"id": id})
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to update action tx hash")
}

func (q actions) SelectByState(state data.ActionState) ([]data.ActionRecord, error) {
	var result []data.ActionRecord
	stmt := squirrel.Select("*").From(actionsTable).
		Where(squirrel.Eq{"state": state}).
		OrderBy("id")

	if err := q.db.Select(&result, stmt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to select action records")
	}

	return result, nil
}
