package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"birthdayFundAPI/internal/contribution"
)

func newTestContributionService(store ContributionStore) *ContributionService {
	logger, _ := test.NewNullLogger()
	return NewContributionService(store, logger)
}

func TestRecordPreservesOrderAndTotal(t *testing.T) {
	ctx := context.Background()
	svc := newTestContributionService(NewMemoryStore())

	amounts := []int64{1000, 250, 4200, 5}
	var want int64
	for i, amt := range amounts {
		_, err := svc.Record(ctx, contribution.RecordRequest{
			Name:        fmt.Sprintf("colleague-%d", i),
			AmountCents: amt,
		})
		require.NoError(t, err)
		want += amt
	}

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(amounts), summary.Count)
	assert.Equal(t, want, summary.TotalCents)
	assert.Equal(t, "54.55", summary.Total)
	for i, c := range summary.Contributions {
		assert.Equal(t, fmt.Sprintf("colleague-%d", i), c.Name)
		assert.Equal(t, amounts[i], c.AmountCents)
	}

	budget, err := svc.Budget(ctx)
	require.NoError(t, err)
	assert.Equal(t, 54.55, budget)
}

func TestRecordDefaultsAnonymousAndStampsTime(t *testing.T) {
	svc := newTestContributionService(NewMemoryStore())
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	c, err := svc.Record(context.Background(), contribution.RecordRequest{Name: "   ", AmountCents: 500})
	require.NoError(t, err)
	assert.Equal(t, contribution.AnonymousName, c.Name)
	assert.Equal(t, "2026-05-01 12:00:00", c.Timestamp())
}

func TestRecordRejectsOutOfRangeAmounts(t *testing.T) {
	store := NewMemoryStore()
	svc := newTestContributionService(store)

	for _, amt := range []int64{0, -100, contribution.MaxAmountCents + 1, math.MaxInt64} {
		_, err := svc.Record(context.Background(), contribution.RecordRequest{Name: "x", AmountCents: amt})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}

	list, _ := store.List(context.Background())
	assert.Empty(t, list)
}

func TestRecordAcceptsMaximumAmount(t *testing.T) {
	ctx := context.Background()
	svc := newTestContributionService(NewMemoryStore())

	for i := 0; i < 2; i++ {
		_, err := svc.Record(ctx, contribution.RecordRequest{Name: "x", AmountCents: contribution.MaxAmountCents})
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2*contribution.MaxAmountCents, summary.TotalCents)
}

func TestSummaryFailsInsteadOfWrapping(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	half := int64(math.MaxInt64/2 + 1)
	require.NoError(t, store.Append(ctx, contribution.Contribution{AmountCents: half}))
	require.NoError(t, store.Append(ctx, contribution.Contribution{AmountCents: half}))
	svc := newTestContributionService(store)

	_, err := svc.Summary(ctx)
	assert.ErrorIs(t, err, contribution.ErrTotalOverflow)

	_, err = svc.Budget(ctx)
	assert.ErrorIs(t, err, contribution.ErrTotalOverflow)
}

type failingStore struct {
	MemoryStore
}

func (f *failingStore) Append(ctx context.Context, c contribution.Contribution) error {
	return errors.New("disk full")
}

func TestRecordWrapsStoreErrors(t *testing.T) {
	svc := newTestContributionService(&failingStore{})

	_, err := svc.Record(context.Background(), contribution.RecordRequest{Name: "x", AmountCents: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestMemoryStoreConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	const writers, perWriter = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_ = store.Append(ctx, contribution.Contribution{AmountCents: 100})
			}
		}()
	}
	wg.Wait()

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, writers*perWriter)

	total, err := store.TotalCents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(writers*perWriter*100), total)
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Append(ctx, contribution.Contribution{Name: "a", AmountCents: 1}))

	list, _ := store.List(ctx)
	list[0].Name = "changed"

	again, _ := store.List(ctx)
	assert.Equal(t, "a", again[0].Name)
}
