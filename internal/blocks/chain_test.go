package blocks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infoScope/internal/model"
)

// fakeHeaders produces block n at timestamp genesis + step*n (step defaults to 3).
type fakeHeaders struct {
	latest  uint64
	genesis uint64
	step    uint64
	calls   int
	failAt  uint64
}

func (f *fakeHeaders) LatestBlockNumber(context.Context) (uint64, error) {
	return f.latest, nil
}

func (f *fakeHeaders) BlockTimestamp(_ context.Context, number uint64) (uint64, error) {
	f.calls++
	if f.failAt != 0 && number == f.failAt {
		return 0, errors.New("header unavailable")
	}
	step := f.step
	if step == 0 {
		step = 3
	}
	return f.genesis + step*number, nil
}

func TestChainResolver(t *testing.T) {
	headers := &fakeHeaders{latest: 1_000_000, genesis: 1_600_000_000}
	resolver := NewChainResolver(headers)

	got, err := resolver.BlocksFromTimestamps(context.Background(), []int64{
		1_600_000_000,
		1_600_000_300,
		1_600_000_301,
		1_602_999_990,
	})
	require.NoError(t, err)
	assert.Equal(t, []model.Block{
		{Number: 199, Timestamp: 1_600_000_597},
		{Number: 299, Timestamp: 1_600_000_897},
		{Number: 300, Timestamp: 1_600_000_900},
		{Number: 1_000_000, Timestamp: 1_603_000_000},
	}, got)
	assert.Less(t, headers.calls, 4*25)
}

func TestChainResolverMatchesSubgraphWindow(t *testing.T) {
	headers := &fakeHeaders{latest: 1_000_000, genesis: 1_600_000_000}
	const ts = int64(1_600_000_000)

	got, err := NewChainResolver(headers).BlocksFromTimestamps(context.Background(), []int64{ts})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Greater(t, got[0].Timestamp, ts)
	assert.Less(t, got[0].Timestamp, ts+SearchWindowSeconds)

	next := got[0].Number + 1
	nextTs := int64(headers.genesis + 3*next)
	assert.GreaterOrEqual(t, nextTs, ts+SearchWindowSeconds)
}

func TestChainResolverMemoIsPerCall(t *testing.T) {
	const ts = int64(1_600_050_000)

	single := &fakeHeaders{latest: 1_000_000, genesis: 1_600_000_000}
	resolver := NewChainResolver(single)
	_, err := resolver.BlocksFromTimestamps(context.Background(), []int64{ts})
	require.NoError(t, err)

	repeated := &fakeHeaders{latest: 1_000_000, genesis: 1_600_000_000}
	_, err = NewChainResolver(repeated).BlocksFromTimestamps(context.Background(), []int64{ts, ts})
	require.NoError(t, err)
	assert.Equal(t, single.calls, repeated.calls)

	_, err = resolver.BlocksFromTimestamps(context.Background(), []int64{ts})
	require.NoError(t, err)
	assert.Equal(t, 2*repeated.calls, single.calls)
}

func TestChainResolverNoBlockInWindow(t *testing.T) {
	headers := &fakeHeaders{latest: 10, genesis: 100, step: 1000}
	_, err := NewChainResolver(headers).BlocksFromTimestamps(context.Background(), []int64{150})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no block found")
}

func TestChainResolverFuture(t *testing.T) {
	headers := &fakeHeaders{latest: 10, genesis: 100}
	_, err := NewChainResolver(headers).BlocksFromTimestamps(context.Background(), []int64{1000})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after latest block")
}

func TestChainResolverHeaderError(t *testing.T) {
	headers := &fakeHeaders{latest: 1000, genesis: 100, failAt: 500}
	_, err := NewChainResolver(headers).BlocksFromTimestamps(context.Background(), []int64{150})
	require.Error(t, err)
}
