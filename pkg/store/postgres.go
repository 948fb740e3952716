package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	table     = "best_scores"
	playerKey = "player_key"
	bestScore = "best_score"
)

const schema = `CREATE TABLE IF NOT EXISTS ` + table + ` (
	` + playerKey + ` TEXT PRIMARY KEY,
	` + bestScore + ` INTEGER NOT NULL DEFAULT 0
)`

// querier is the part of *pgxpool.Pool the store uses.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres keeps one row per player key.
type Postgres struct {
	dbc querier
	key string
}

func NewPostgres(dbc querier, key string) *Postgres {
	return &Postgres{dbc: dbc, key: key}
}

// Migrate creates the table when it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.dbc.Exec(ctx, schema); err != nil {
		return fmt.Errorf("store: create %s: %w", table, err)
	}

	return nil
}

func (p *Postgres) Load(ctx context.Context) (int, error) {
	query := sq.Select(bestScore).
		From(table).
		Where(sq.Eq{playerKey: p.key}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var best int
	err = p.dbc.QueryRow(ctx, sqlStr, args...).Scan(&best)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNoBest
	} else if err != nil {
		return 0, fmt.Errorf("store: select best score: %w", err)
	}

	return checkValue(best)
}

// Save updates the player's row and inserts it when none was updated.
func (p *Postgres) Save(ctx context.Context, best int) error {
	if _, err := checkValue(best); err != nil {
		return err
	}

	query := sq.Update(table).
		Set(bestScore, best).
		Where(sq.Eq{playerKey: p.key}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := p.dbc.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("store: update best score: %w", err)
	}

	if res.RowsAffected() > 0 {
		return nil
	}

	insertQuery := sq.Insert(table).
		Columns(playerKey, bestScore).
		Values(p.key, best).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err = insertQuery.ToSql()
	if err != nil {
		return err
	}

	if _, err := p.dbc.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("store: insert best score: %w", err)
	}

	return nil
}
