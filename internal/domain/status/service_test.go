package status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"storesync/internal/domain/batch"
	"storesync/internal/domain/store"
	"storesync/internal/domain/syncconfig"
)

// MockConfigReader is a mock implementation of the ConfigReader interface
type MockConfigReader struct {
	mock.Mock
}

func (m *MockConfigReader) GetByStore(ctx context.Context, storeID int64) (*syncconfig.SyncConfiguration, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncconfig.SyncConfiguration), args.Error(1)
}

func (m *MockConfigReader) ListEnabled(ctx context.Context) ([]syncconfig.SyncConfiguration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]syncconfig.SyncConfiguration), args.Error(1)
}

// MockBatchReader is a mock implementation of the BatchReader interface
type MockBatchReader struct {
	mock.Mock
}

func (m *MockBatchReader) CountByStatus(ctx context.Context, storeID int64) (map[batch.Status]int, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[batch.Status]int), args.Error(1)
}

func (m *MockBatchReader) SumSuccessRecords(ctx context.Context, storeID int64) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLogReader is a mock implementation of the LogReader interface
type MockLogReader struct {
	mock.Mock
}

func (m *MockLogReader) AvgDurationMs(ctx context.Context, storeID int64) (float64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(float64), args.Error(1)
}

// MockConflictReader is a mock implementation of the ConflictReader interface
type MockConflictReader struct {
	mock.Mock
}

func (m *MockConflictReader) CountUnresolvedByStore(ctx context.Context, storeID int64) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

// MockStoreRepository is a mock implementation of the store.Repository interface
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) List(ctx context.Context) ([]store.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Store), args.Error(1)
}

func (m *MockStoreRepository) GetByID(ctx context.Context, id int64) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) Add(ctx context.Context, s *store.Store) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoreRepository) Update(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type aggregatorMocks struct {
	configs   *MockConfigReader
	batches   *MockBatchReader
	logs      *MockLogReader
	conflicts *MockConflictReader
	stores    *MockStoreRepository
}

func newAggregator() (*Service, *aggregatorMocks) {
	m := &aggregatorMocks{
		configs:   new(MockConfigReader),
		batches:   new(MockBatchReader),
		logs:      new(MockLogReader),
		conflicts: new(MockConflictReader),
		stores:    new(MockStoreRepository),
	}
	service := NewService(m.configs, m.batches, m.logs, m.conflicts, m.stores, slog.Default())
	return service, m
}

func configWithLastSync(storeID int64, ago time.Duration, intervalSeconds int) *syncconfig.SyncConfiguration {
	last := time.Now().Add(-ago)
	return &syncconfig.SyncConfiguration{
		ID:                  10,
		StoreID:             storeID,
		SyncIntervalSeconds: intervalSeconds,
		IsEnabled:           true,
		LastSuccessfulSync:  &last,
	}
}

func TestService_IsOnline(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *syncconfig.SyncConfiguration
		expected bool
	}{
		{"synced a minute ago", configWithLastSync(1, time.Minute, 300), true},
		{"synced just inside the window", configWithLastSync(1, OnlineWindow-time.Second, 300), true},
		{"synced outside the window", configWithLastSync(1, OnlineWindow+time.Minute, 300), false},
		{"never synced", &syncconfig.SyncConfiguration{ID: 10, StoreID: 1, IsEnabled: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newAggregator()
			m.configs.On("GetByStore", mock.Anything, int64(1)).Return(tt.cfg, nil)

			online, err := service.IsOnline(context.Background(), 1)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, online)
		})
	}
}

func TestService_IsOnline_Unconfigured(t *testing.T) {
	service, m := newAggregator()
	m.configs.On("GetByStore", mock.Anything, int64(5)).Return(nil, syncconfig.ErrConfigNotFound)

	// A store without a configuration is offline, not an error
	online, err := service.IsOnline(context.Background(), 5)
	assert.NoError(t, err)
	assert.False(t, online)
}

func TestService_NeedsSync(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *syncconfig.SyncConfiguration
		expected bool
	}{
		{"interval elapsed", configWithLastSync(1, 10*time.Minute, 300), true},
		{"interval not elapsed", configWithLastSync(1, time.Minute, 300), false},
		{"never synced", &syncconfig.SyncConfiguration{ID: 10, StoreID: 1, IsEnabled: true, SyncIntervalSeconds: 300}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newAggregator()
			m.configs.On("GetByStore", mock.Anything, int64(1)).Return(tt.cfg, nil)

			needs, err := service.NeedsSync(context.Background(), 1)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, needs)
		})
	}
}

func TestService_NeedsSync_MonotonicOverTime(t *testing.T) {
	last := time.Now().Add(-10 * time.Minute)
	cfg := &syncconfig.SyncConfiguration{
		ID:                  10,
		StoreID:             1,
		IsEnabled:           true,
		SyncIntervalSeconds: 300,
		LastSuccessfulSync:  &last,
	}

	// Once the interval has elapsed the answer never flips back to false
	// until a new successful sync is recorded
	now := time.Now()
	for _, ahead := range []time.Duration{0, time.Minute, time.Hour, 24 * time.Hour} {
		assert.True(t, configNeedsSync(cfg, now.Add(ahead)), "at +%s", ahead)
	}
}

func TestService_NeedsSync_Disabled(t *testing.T) {
	service, m := newAggregator()

	cfg := configWithLastSync(1, 24*time.Hour, 300)
	cfg.IsEnabled = false
	m.configs.On("GetByStore", mock.Anything, int64(1)).Return(cfg, nil)

	// Disabled configurations never ask for a sync, however stale they are
	needs, err := service.NeedsSync(context.Background(), 1)
	assert.NoError(t, err)
	assert.False(t, needs)
}

func TestService_StoresNeedingSync(t *testing.T) {
	service, m := newAggregator()

	stale := *configWithLastSync(1, 10*time.Minute, 300)
	fresh := *configWithLastSync(2, time.Minute, 300)
	never := syncconfig.SyncConfiguration{ID: 12, StoreID: 3, IsEnabled: true, SyncIntervalSeconds: 300}

	m.configs.On("ListEnabled", mock.Anything).Return([]syncconfig.SyncConfiguration{stale, fresh, never}, nil)

	ids, err := service.StoresNeedingSync(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestService_StoreStatistics(t *testing.T) {
	service, m := newAggregator()

	m.stores.On("GetByID", mock.Anything, int64(1)).Return(&store.Store{ID: 1, Name: "Store One"}, nil)
	m.configs.On("GetByStore", mock.Anything, int64(1)).Return(configWithLastSync(1, time.Minute, 300), nil)
	m.batches.On("CountByStatus", mock.Anything, int64(1)).Return(map[batch.Status]int{
		batch.StatusCompleted: 2,
		batch.StatusFailed:    1,
	}, nil)
	m.batches.On("SumSuccessRecords", mock.Anything, int64(1)).Return(int64(150), nil)
	m.logs.On("AvgDurationMs", mock.Anything, int64(1)).Return(420.5, nil)
	m.conflicts.On("CountUnresolvedByStore", mock.Anything, int64(1)).Return(int64(3), nil)

	stats, err := service.StoreStatistics(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "Store One", stats.StoreName)
	assert.True(t, stats.IsOnline)
	assert.Equal(t, 3, stats.TotalBatches)
	assert.InDelta(t, 66.67, stats.SuccessRate, 0.001)
	assert.Equal(t, int64(150), stats.TotalRecordsSynced)
	assert.Equal(t, 420.5, stats.AvgDurationMs)
	assert.Equal(t, int64(3), stats.UnresolvedConflicts)
}

func TestService_StoreStatistics_NoBatches(t *testing.T) {
	service, m := newAggregator()

	m.stores.On("GetByID", mock.Anything, int64(2)).Return(&store.Store{ID: 2, Name: "Store Two"}, nil)
	m.configs.On("GetByStore", mock.Anything, int64(2)).Return(nil, syncconfig.ErrConfigNotFound)
	m.batches.On("CountByStatus", mock.Anything, int64(2)).Return(map[batch.Status]int{}, nil)
	m.batches.On("SumSuccessRecords", mock.Anything, int64(2)).Return(int64(0), nil)
	m.logs.On("AvgDurationMs", mock.Anything, int64(2)).Return(0.0, nil)
	m.conflicts.On("CountUnresolvedByStore", mock.Anything, int64(2)).Return(int64(0), nil)

	stats, err := service.StoreStatistics(context.Background(), 2)
	assert.NoError(t, err)
	assert.False(t, stats.IsOnline)
	assert.Equal(t, 0, stats.TotalBatches)
	assert.Equal(t, 0.0, stats.SuccessRate)
}

func TestService_StoreStatistics_StoreNotFound(t *testing.T) {
	service, m := newAggregator()

	m.stores.On("GetByID", mock.Anything, int64(99)).Return(nil, store.ErrStoreNotFound)

	_, err := service.StoreStatistics(context.Background(), 99)
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestService_ChainDashboard(t *testing.T) {
	service, m := newAggregator()

	stores := []store.Store{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}
	m.stores.On("List", mock.Anything).Return(stores, nil)

	// 1 online and fresh, 2 offline and stale, 3 unconfigured
	m.configs.On("GetByStore", mock.Anything, int64(1)).Return(configWithLastSync(1, time.Minute, 300), nil)
	m.configs.On("GetByStore", mock.Anything, int64(2)).Return(configWithLastSync(2, time.Hour, 300), nil)
	m.configs.On("GetByStore", mock.Anything, int64(3)).Return(nil, syncconfig.ErrConfigNotFound)

	m.batches.On("CountByStatus", mock.Anything, int64(1)).Return(map[batch.Status]int{batch.StatusCompleted: 4}, nil)
	m.batches.On("CountByStatus", mock.Anything, int64(2)).Return(map[batch.Status]int{batch.StatusFailed: 2}, nil)

	m.conflicts.On("CountUnresolvedByStore", mock.Anything, int64(1)).Return(int64(1), nil)
	m.conflicts.On("CountUnresolvedByStore", mock.Anything, int64(2)).Return(int64(2), nil)

	dash, err := service.ChainDashboard(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 3, dash.TotalStores)
	assert.Equal(t, 1, dash.OnlineStores)
	assert.Equal(t, 2, dash.OfflineStores)
	assert.Equal(t, dash.TotalStores, dash.OnlineStores+dash.OfflineStores)
	assert.Equal(t, 1, dash.StoresNeedingSync)
	assert.Equal(t, 6, dash.TotalBatches)
	assert.Equal(t, int64(3), dash.UnresolvedConflicts)
}

func TestService_ChainStatistics(t *testing.T) {
	service, m := newAggregator()

	stores := []store.Store{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	m.stores.On("List", mock.Anything).Return(stores, nil)
	m.stores.On("GetByID", mock.Anything, int64(1)).Return(&stores[0], nil)
	m.stores.On("GetByID", mock.Anything, int64(2)).Return(&stores[1], nil)

	m.configs.On("GetByStore", mock.Anything, int64(1)).Return(configWithLastSync(1, time.Minute, 300), nil)
	m.configs.On("GetByStore", mock.Anything, int64(2)).Return(nil, syncconfig.ErrConfigNotFound)

	m.batches.On("CountByStatus", mock.Anything, int64(1)).Return(map[batch.Status]int{batch.StatusCompleted: 3, batch.StatusFailed: 1}, nil)
	m.batches.On("CountByStatus", mock.Anything, int64(2)).Return(map[batch.Status]int{batch.StatusCompleted: 1}, nil)
	m.batches.On("SumSuccessRecords", mock.Anything, int64(1)).Return(int64(100), nil)
	m.batches.On("SumSuccessRecords", mock.Anything, int64(2)).Return(int64(50), nil)
	m.logs.On("AvgDurationMs", mock.Anything, mock.AnythingOfType("int64")).Return(100.0, nil)
	m.conflicts.On("CountUnresolvedByStore", mock.Anything, mock.AnythingOfType("int64")).Return(int64(0), nil)

	chain, err := service.ChainStatistics(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, chain.TotalStores)
	assert.Equal(t, 5, chain.TotalBatches)
	assert.Equal(t, int64(150), chain.TotalRecordsSynced)
	assert.InDelta(t, 80.0, chain.SuccessRate, 0.001)
	assert.Len(t, chain.Stores, 2)
}

func TestSuccessRate_Rounding(t *testing.T) {
	assert.Equal(t, 0.0, successRate(0, 0))
	assert.Equal(t, 100.0, successRate(3, 3))
	assert.Equal(t, 66.67, successRate(2, 3))
	assert.Equal(t, 33.33, successRate(1, 3))
	assert.Equal(t, 50.0, successRate(1, 2))
}
