package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"infoScope/internal/model"
)

// Store provides Postgres persistence for fetched info records.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// PutTransactions inserts pool transactions, ignoring ones already stored.
func (s *Store) PutTransactions(ctx context.Context, records []model.TransactionRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		ts, err := strconv.ParseInt(r.Timestamp, 10, 64)
		if err != nil {
			ts = 0
		}
		batch.Queue(`
			INSERT INTO pool_transactions (
				pool_address, entity_id, tx_hash, tx_type, tx_timestamp, sender,
				token0_symbol, token1_symbol, token0_address, token1_address,
				amount_usd, amount_token0, amount_token1, fetched_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
			ON CONFLICT (pool_address, entity_id)
			DO NOTHING
		`,
			r.Pool,
			r.ID,
			r.Hash,
			string(r.Type),
			ts,
			r.Sender,
			r.Token0Symbol,
			r.Token1Symbol,
			r.Token0Address,
			r.Token1Address,
			r.AmountUSD,
			r.AmountToken0,
			r.AmountToken1,
			r.FetchedAt,
		)
	}
	return s.sendBatch(ctx, batch)
}

// PutTokenPools upserts token to pool links.
func (s *Store) PutTokenPools(ctx context.Context, pools []model.TokenPool) error {
	if len(pools) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range pools {
		batch.Queue(`
			INSERT INTO token_pools (token_address, pool_address, fetched_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (token_address, pool_address)
			DO UPDATE SET fetched_at = EXCLUDED.fetched_at
		`, p.Token, p.Pool, p.FetchedAt)
	}
	return s.sendBatch(ctx, batch)
}

// PutPriceSnapshot stores one native price observation.
func (s *Store) PutPriceSnapshot(ctx context.Context, snap model.PriceSnapshot) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO native_price_snapshots (
			fetched_at, current, one_day, two_day, week, block_24h, block_48h, block_week
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (fetched_at) DO NOTHING
	`,
		snap.FetchedAt,
		snap.Current,
		snap.OneDay,
		snap.TwoDay,
		snap.Week,
		int64(snap.Block24),
		int64(snap.Block48),
		int64(snap.BlockWeek),
	)
	return err
}

// PutChart upserts daily chart points.
func (s *Store) PutChart(ctx context.Context, records []model.ChartRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
			INSERT INTO chart_entries (scope, subject, day_ts, volume_usd, liquidity_usd, updated_at)
			VALUES ($1, $2, $3, $4, $5, now())
			ON CONFLICT (scope, subject, day_ts)
			DO UPDATE SET
				volume_usd = EXCLUDED.volume_usd,
				liquidity_usd = EXCLUDED.liquidity_usd,
				updated_at = now()
		`, r.Scope, r.Subject, r.Date, r.VolumeUSD, r.LiquidityUSD)
	}
	return s.sendBatch(ctx, batch)
}

// PoolTransactions returns stored transactions of a pool, newest first.
func (s *Store) PoolTransactions(ctx context.Context, pool string, limit int) ([]model.TransactionRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT pool_address, entity_id, tx_hash, tx_type, tx_timestamp, sender,
			token0_symbol, token1_symbol, token0_address, token1_address,
			amount_usd, amount_token0, amount_token1, fetched_at
		FROM pool_transactions
		WHERE pool_address = $1
		ORDER BY tx_timestamp DESC, entity_id
		LIMIT $2
	`, pool, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TransactionRecord
	for rows.Next() {
		var (
			r      model.TransactionRecord
			txType string
			ts     int64
		)
		if err := rows.Scan(
			&r.Pool, &r.ID, &r.Hash, &txType, &ts, &r.Sender,
			&r.Token0Symbol, &r.Token1Symbol, &r.Token0Address, &r.Token1Address,
			&r.AmountUSD, &r.AmountToken0, &r.AmountToken1, &r.FetchedAt,
		); err != nil {
			return nil, err
		}
		r.Type = model.TransactionType(txType)
		r.Timestamp = strconv.FormatInt(ts, 10)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
