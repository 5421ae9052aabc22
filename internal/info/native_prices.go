package info

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"infoScope/internal/model"
)

const nativePricesQuery = `
  query prices($block24: Int!, $block48: Int!, $blockWeek: Int!) {
    current: bundle(id: "1") {
      nativePrice
    }
    oneDay: bundle(id: "1", block: { number: $block24 }) {
      nativePrice
    }
    twoDay: bundle(id: "1", block: { number: $block48 }) {
      nativePrice
    }
    oneWeek: bundle(id: "1", block: { number: $blockWeek }) {
      nativePrice
    }
  }
`

type nativePricesResponse struct {
	Current *model.BundleResponse `json:"current"`
	OneDay  *model.BundleResponse `json:"oneDay"`
	TwoDay  *model.BundleResponse `json:"twoDay"`
	OneWeek *model.BundleResponse `json:"oneWeek"`
}

// FetchNativePrices returns the native asset price now and at the three given blocks.
// A missing bundle yields a zero price.
func (f *Fetcher) FetchNativePrices(ctx context.Context, block24, block48, blockWeek uint64) (model.NativePrices, error) {
	variables := map[string]interface{}{
		"block24":   block24,
		"block48":   block48,
		"blockWeek": blockWeek,
	}

	var data nativePricesResponse
	if err := f.request(ctx, nativePricesQuery, variables, &data); err != nil {
		f.logger.Error("fetch native prices failed",
			zap.Uint64("block24", block24),
			zap.Uint64("block48", block48),
			zap.Uint64("block_week", blockWeek),
			zap.Error(err),
		)
		return model.NativePrices{}, failed(err)
	}

	return model.NativePrices{
		Current: bundlePrice(data.Current),
		OneDay:  bundlePrice(data.OneDay),
		TwoDay:  bundlePrice(data.TwoDay),
		Week:    bundlePrice(data.OneWeek),
	}, nil
}

// NativePricesAt resolves the 24h, 48h and 7d offsets from now to blocks and fetches prices there.
func (f *Fetcher) NativePricesAt(ctx context.Context, now time.Time) (model.PriceSnapshot, error) {
	if f.cfg.Blocks == nil {
		err := fmt.Errorf("block resolver is not configured")
		f.logger.Error("fetch native prices failed", zap.Error(err))
		return model.PriceSnapshot{}, failed(err)
	}

	t24, t48, tWeek := DeltaTimestamps(now)
	blocks, err := f.cfg.Blocks.BlocksFromTimestamps(ctx, []int64{t24, t48, tWeek})
	if err == nil && len(blocks) != 3 {
		err = fmt.Errorf("resolved %d blocks, want 3", len(blocks))
	}
	if err != nil {
		f.logger.Error("resolve blocks failed",
			zap.Int64("t24", t24),
			zap.Int64("t48", t48),
			zap.Int64("t_week", tWeek),
			zap.Error(err),
		)
		return model.PriceSnapshot{}, failed(err)
	}

	prices, err := f.FetchNativePrices(ctx, blocks[0].Number, blocks[1].Number, blocks[2].Number)
	if err != nil {
		return model.PriceSnapshot{}, err
	}

	return model.PriceSnapshot{
		NativePrices: prices,
		Block24:      blocks[0].Number,
		Block48:      blocks[1].Number,
		BlockWeek:    blocks[2].Number,
		FetchedAt:    f.now().UTC(),
	}, nil
}

// CurrentNativePrices is NativePricesAt for the current time.
func (f *Fetcher) CurrentNativePrices(ctx context.Context) (model.PriceSnapshot, error) {
	return f.NativePricesAt(ctx, f.now())
}

func bundlePrice(bundle *model.BundleResponse) float64 {
	if bundle == nil {
		return 0
	}
	return parseFloat(bundle.NativePrice)
}
