package dataset

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vizdash/internal/adapter/events"
	"vizdash/internal/domain/record"
)

type stubSource struct {
	mu      sync.Mutex
	records []record.Record
	err     error
	calls   int
}

func (s *stubSource) FindAll(context.Context) ([]record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.records, s.err
}

func (s *stubSource) set(records []record.Record) {
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
}

type stubBus struct {
	events.NopBus
	handler events.Handler
}

func (b *stubBus) SubscribeDatasetUpdated(fn events.Handler) (events.Subscription, error) {
	b.handler = fn
	return events.NopBus{}.SubscribeDatasetUpdated(fn)
}

func year(v int) *int { return &v }

func TestService_StartsEmpty(t *testing.T) {
	svc := NewService(&stubSource{})

	snap := svc.Snapshot()
	assert.NotNil(t, snap.Records)
	assert.Empty(t, snap.Records)
	assert.Empty(t, snap.Criteria.Country)
	assert.Zero(t, snap.Version)
}

func TestService_Load(t *testing.T) {
	src := &stubSource{records: []record.Record{
		{Country: "Nigeria", EndYear: year(2022)},
		{Country: "India", EndYear: year(2020)},
		{Country: "India"},
	}}
	svc := NewService(src)

	snap := svc.Load(context.Background())
	assert.Equal(t, uint64(1), snap.Version)
	assert.Len(t, snap.Records, 3)
	assert.Equal(t, []string{"India", "Nigeria"}, snap.Criteria.Country)
	assert.Equal(t, []int{2020, 2022}, snap.Criteria.EndYear)
	assert.Equal(t, snap.Records, svc.Records())
	assert.Equal(t, snap.Criteria, svc.Criteria())
}

func TestService_LoadFailureLeavesEmptyDataset(t *testing.T) {
	src := &stubSource{
		records: []record.Record{{Country: "India"}},
		err:     errors.New("connection refused"),
	}
	svc := NewService(src)

	snap := svc.Load(context.Background())
	assert.Empty(t, snap.Records)
	assert.NotNil(t, snap.Records)
	assert.Empty(t, snap.Criteria.Country)
	assert.Equal(t, 1, src.calls, "the initial load is never retried")
}

func TestService_ListenersSeeEverySwap(t *testing.T) {
	src := &stubSource{}
	svc := NewService(src)

	var versions []uint64
	stop := svc.Listen(func(s Snapshot) {
		versions = append(versions, s.Version)
	})

	svc.Load(context.Background())
	src.set([]record.Record{{Topic: "oil"}})
	svc.Reload(context.Background())
	assert.Equal(t, []uint64{1, 2}, versions)
	assert.Equal(t, []string{"oil"}, svc.Criteria().Topic)

	stop()
	svc.Reload(context.Background())
	assert.Equal(t, []uint64{1, 2}, versions)
}

func TestService_WatchReloadsOnNotification(t *testing.T) {
	src := &stubSource{}
	svc := NewService(src)
	svc.Load(context.Background())

	bus := &stubBus{}
	sub, err := svc.Watch(bus)
	require.NoError(t, err)
	require.NotNil(t, sub)
	require.NotNil(t, bus.handler)

	src.set([]record.Record{{Country: "Kenya"}})
	bus.handler(context.Background(), events.DatasetUpdated{Source: "seed", Inserted: 1})

	assert.Equal(t, uint64(2), svc.Snapshot().Version)
	assert.Equal(t, []string{"Kenya"}, svc.Criteria().Country)
}

func TestService_ConcurrentReads(t *testing.T) {
	src := &stubSource{records: []record.Record{{Country: "India"}}}
	svc := NewService(src)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.Reload(context.Background())
		}()
		go func() {
			defer wg.Done()
			_ = svc.Records()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(8), svc.Snapshot().Version)
}
