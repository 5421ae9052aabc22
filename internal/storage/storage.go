package storage

import (
	"context"

	"infoScope/internal/model"
)

// Sink persists fetched view-models.
type Sink interface {
	PutTransactions(ctx context.Context, records []model.TransactionRecord) error
	PutTokenPools(ctx context.Context, pools []model.TokenPool) error
	PutPriceSnapshot(ctx context.Context, snapshot model.PriceSnapshot) error
	PutChart(ctx context.Context, records []model.ChartRecord) error
}

// Multi fans every write out to each sink in order and stops at the first error.
type Multi []Sink

func (m Multi) PutTransactions(ctx context.Context, records []model.TransactionRecord) error {
	for _, s := range m {
		if err := s.PutTransactions(ctx, records); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) PutTokenPools(ctx context.Context, pools []model.TokenPool) error {
	for _, s := range m {
		if err := s.PutTokenPools(ctx, pools); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) PutPriceSnapshot(ctx context.Context, snapshot model.PriceSnapshot) error {
	for _, s := range m {
		if err := s.PutPriceSnapshot(ctx, snapshot); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) PutChart(ctx context.Context, records []model.ChartRecord) error {
	for _, s := range m {
		if err := s.PutChart(ctx, records); err != nil {
			return err
		}
	}
	return nil
}
