// internal/service/dataset/service.go

package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"vizdash/internal/adapter/events"
	"vizdash/internal/domain/record"
	"vizdash/internal/service/analytics"
)

// Snapshot is the immutable dataset currently served. Callers must not
// modify Records.
type Snapshot struct {
	Records  []record.Record
	Criteria record.FilterCriteria
	Version  uint64
	LoadedAt time.Time
}

// Listener is notified after every swap
type Listener func(Snapshot)

// Service holds the current snapshot and reloads it from the source
type Service struct {
	source   record.Source
	sortOpts []analytics.SortOption
	timeout  time.Duration

	mu   sync.RWMutex
	snap Snapshot

	listenersMu sync.Mutex
	listeners   map[uint64]Listener
	nextID      uint64
}

// Option configures the service
type Option func(*Service)

// WithSortOptions sets how criteria values are ordered
func WithSortOptions(opts ...analytics.SortOption) Option {
	return func(s *Service) {
		s.sortOpts = opts
	}
}

// WithReloadTimeout bounds reloads triggered by the event bus
func WithReloadTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// NewService creates an empty dataset service over source
func NewService(source record.Source, opts ...Option) *Service {
	s := &Service{
		source:    source,
		timeout:   30 * time.Second,
		listeners: make(map[uint64]Listener),
		snap: Snapshot{
			Records:  []record.Record{},
			Criteria: analytics.BuildFilterCriteria(nil),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the dataset once and swaps it in. A failed fetch is logged
// and leaves an empty dataset.
func (s *Service) Load(ctx context.Context) Snapshot {
	records, err := s.source.FindAll(ctx)
	if err != nil {
		zap.L().Error("error while fetching data", zap.Error(err))
		records = nil
	}
	if records == nil {
		records = []record.Record{}
	}

	criteria := analytics.BuildFilterCriteria(records, s.sortOpts...)

	s.mu.Lock()
	s.snap = Snapshot{
		Records:  records,
		Criteria: criteria,
		Version:  s.snap.Version + 1,
		LoadedAt: time.Now().UTC(),
	}
	snap := s.snap
	s.mu.Unlock()

	zap.L().Info("dataset loaded",
		zap.Int("records", len(records)),
		zap.Uint64("version", snap.Version),
	)

	s.notify(snap)
	return snap
}

// Reload is Load under the configured timeout
func (s *Service) Reload(ctx context.Context) Snapshot {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.Load(ctx)
}

// Snapshot returns the current dataset
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Records returns the current record slice
func (s *Service) Records() []record.Record {
	return s.Snapshot().Records
}

// Criteria returns the filter criteria of the current dataset
func (s *Service) Criteria() record.FilterCriteria {
	return s.Snapshot().Criteria
}

// Listen registers fn for snapshot changes. The returned func removes it.
func (s *Service) Listen(fn Listener) func() {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Service) notify(snap Snapshot) {
	s.listenersMu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Watch reloads the dataset on every dataset.updated notification
func (s *Service) Watch(bus events.Bus) (events.Subscription, error) {
	sub, err := bus.SubscribeDatasetUpdated(func(ctx context.Context, evt events.DatasetUpdated) {
		zap.L().Info("dataset update received",
			zap.String("source", evt.Source),
			zap.Int("inserted", evt.Inserted),
		)
		s.Reload(ctx)
	})
	if err != nil {
		return nil, eris.Wrap(err, "dataset: watch")
	}
	return sub, nil
}
