package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"storesync/internal/domain/conflict"
	"storesync/internal/domain/syncconfig"
	"storesync/internal/domain/synclog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, b *SyncBatch) (int64, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*SyncBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SyncBatch), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int64, from, to Status) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Finish(ctx context.Context, b *SyncBatch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepository) AddRecord(ctx context.Context, r *SyncRecord) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListRecords(ctx context.Context, batchID int64) ([]SyncRecord, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SyncRecord), args.Error(1)
}

func (m *MockRepository) DeactivateOld(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockConfigResolver is a mock implementation of the ConfigResolver interface
type MockConfigResolver struct {
	mock.Mock
}

func (m *MockConfigResolver) GetConfiguration(ctx context.Context, storeID int64) (*syncconfig.SyncConfiguration, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncconfig.SyncConfiguration), args.Error(1)
}

func (m *MockConfigResolver) ResolveDirection(ctx context.Context, configID int64, entity syncconfig.EntityType) (syncconfig.Direction, error) {
	args := m.Called(ctx, configID, entity)
	return args.Get(0).(syncconfig.Direction), args.Error(1)
}

func (m *MockConfigResolver) ResolvePolicy(ctx context.Context, configID int64, entity syncconfig.EntityType) (syncconfig.ConflictPolicy, error) {
	args := m.Called(ctx, configID, entity)
	return args.Get(0).(syncconfig.ConflictPolicy), args.Error(1)
}

func (m *MockConfigResolver) MarkSyncSuccess(ctx context.Context, configID int64, t time.Time) error {
	args := m.Called(ctx, configID, t)
	return args.Error(0)
}

// MockConflictRecorder is a mock implementation of the ConflictRecorder interface
type MockConflictRecorder struct {
	mock.Mock
}

func (m *MockConflictRecorder) Record(ctx context.Context, c *conflict.SyncConflict) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConflictRecorder) Resolve(ctx context.Context, id int64, winner conflict.Winner, notes, resolvedBy string) error {
	args := m.Called(ctx, id, winner, notes, resolvedBy)
	return args.Error(0)
}

// MockOperationLogger is a mock implementation of the OperationLogger interface
type MockOperationLogger struct {
	mock.Mock
}

func (m *MockOperationLogger) Append(ctx context.Context, e *synclog.SyncLog) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// MockTransport is a mock implementation of the Transport interface
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) UploadRecords(ctx context.Context, storeID int64, entity syncconfig.EntityType, since time.Time, limit int) ([]RecordResult, error) {
	args := m.Called(ctx, storeID, entity, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RecordResult), args.Error(1)
}

func (m *MockTransport) DownloadRecords(ctx context.Context, storeID int64, entity syncconfig.EntityType, since time.Time, limit int) ([]RecordResult, error) {
	args := m.Called(ctx, storeID, entity, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RecordResult), args.Error(1)
}

type engineMocks struct {
	repo      *MockRepository
	configs   *MockConfigResolver
	conflicts *MockConflictRecorder
	logs      *MockOperationLogger
	transport *MockTransport
}

func newEngine() (*Service, *engineMocks) {
	m := &engineMocks{
		repo:      new(MockRepository),
		configs:   new(MockConfigResolver),
		conflicts: new(MockConflictRecorder),
		logs:      new(MockOperationLogger),
		transport: new(MockTransport),
	}
	service := NewService(m.repo, m.configs, m.conflicts, m.logs, m.transport, slog.Default())
	return service, m
}

func enabledConfig(storeID int64) *syncconfig.SyncConfiguration {
	return &syncconfig.SyncConfiguration{
		ID:           10,
		StoreID:      storeID,
		IsEnabled:    true,
		MaxBatchSize: 100,
		IsActive:     true,
	}
}

func TestService_StartUpload(t *testing.T) {
	service, m := newEngine()

	cfg := enabledConfig(42)
	records := []RecordResult{
		{EntityID: 1, LocalModifiedAt: time.Now()},
		{EntityID: 2, LocalModifiedAt: time.Now()},
	}

	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)
	m.configs.On("ResolveDirection", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.DirectionBidirectional, nil)
	m.configs.On("ResolvePolicy", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.PolicyManual, nil)
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(int64(1), nil)
	m.repo.On("UpdateStatus", mock.Anything, int64(1), StatusPending, StatusInProgress).Return(true, nil)
	m.transport.On("UploadRecords", mock.Anything, int64(42), syncconfig.EntityProduct, time.Time{}, 100).Return(records, nil)
	m.repo.On("AddRecord", mock.Anything, mock.MatchedBy(func(r *SyncRecord) bool {
		return r.BatchID == 1 && r.IsSuccess
	})).Return(int64(0), nil)
	m.repo.On("Finish", mock.Anything, mock.MatchedBy(func(b *SyncBatch) bool {
		return b.Status == StatusCompleted && b.TotalRecords == 2 && b.SuccessRecords == 2
	})).Return(nil)
	m.configs.On("MarkSyncSuccess", mock.Anything, int64(10), mock.AnythingOfType("time.Time")).Return(nil)
	m.logs.On("Append", mock.Anything, mock.MatchedBy(func(e *synclog.SyncLog) bool {
		return e.StoreID == 42 && e.Operation == "upload" && e.IsSuccess
	})).Return(nil)

	b, err := service.StartUpload(context.Background(), 42, syncconfig.EntityProduct, false)
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, b.Status)
	assert.Equal(t, 2, b.TotalRecords)
	assert.Equal(t, 2, b.SuccessRecords)
	assert.Equal(t, 0, b.FailedRecords)
	assert.NotNil(t, b.CompletedAt)

	m.repo.AssertExpectations(t)
	m.configs.AssertExpectations(t)
	m.logs.AssertExpectations(t)
}

func TestService_StartUpload_TransportFailure(t *testing.T) {
	service, m := newEngine()

	cfg := enabledConfig(42)
	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)
	m.configs.On("ResolveDirection", mock.Anything, int64(10), syncconfig.EntityOrder).Return(syncconfig.DirectionUpload, nil)
	m.configs.On("ResolvePolicy", mock.Anything, int64(10), syncconfig.EntityOrder).Return(syncconfig.PolicyManual, nil)
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(int64(1), nil)
	m.repo.On("UpdateStatus", mock.Anything, int64(1), StatusPending, StatusInProgress).Return(true, nil)
	m.transport.On("UploadRecords", mock.Anything, int64(42), syncconfig.EntityOrder, time.Time{}, 100).Return(nil, errors.New("gateway unreachable"))
	m.repo.On("Finish", mock.Anything, mock.MatchedBy(func(b *SyncBatch) bool {
		return b.Status == StatusFailed && b.ErrorMessage == "gateway unreachable"
	})).Return(nil)
	m.logs.On("Append", mock.Anything, mock.MatchedBy(func(e *synclog.SyncLog) bool {
		return !e.IsSuccess && e.ErrorMessage == "gateway unreachable"
	})).Return(nil)

	// Transport failure is not an engine error: the failed batch is the result
	b, err := service.StartUpload(context.Background(), 42, syncconfig.EntityOrder, false)
	assert.NoError(t, err)
	assert.Equal(t, StatusFailed, b.Status)
	assert.Equal(t, "gateway unreachable", b.ErrorMessage)

	m.configs.AssertNotCalled(t, "MarkSyncSuccess", mock.Anything, mock.Anything, mock.Anything)
	m.repo.AssertExpectations(t)
	m.logs.AssertExpectations(t)
}

func TestService_StartUpload_PartialRecordFailure(t *testing.T) {
	service, m := newEngine()

	cfg := enabledConfig(42)
	records := []RecordResult{
		{EntityID: 1, LocalModifiedAt: time.Now()},
		{EntityID: 2, LocalModifiedAt: time.Now(), Err: "validation failed"},
	}

	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)
	m.configs.On("ResolveDirection", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.DirectionBidirectional, nil)
	m.configs.On("ResolvePolicy", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.PolicyManual, nil)
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(int64(1), nil)
	m.repo.On("UpdateStatus", mock.Anything, int64(1), StatusPending, StatusInProgress).Return(true, nil)
	m.transport.On("UploadRecords", mock.Anything, int64(42), syncconfig.EntityProduct, time.Time{}, 100).Return(records, nil)
	m.repo.On("AddRecord", mock.Anything, mock.AnythingOfType("*batch.SyncRecord")).Return(int64(0), nil)
	m.repo.On("Finish", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(nil)
	m.configs.On("MarkSyncSuccess", mock.Anything, int64(10), mock.AnythingOfType("time.Time")).Return(nil)
	m.logs.On("Append", mock.Anything, mock.AnythingOfType("*synclog.SyncLog")).Return(nil)

	// A failed record does not fail the batch
	b, err := service.StartUpload(context.Background(), 42, syncconfig.EntityProduct, false)
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, b.Status)
	assert.Equal(t, 2, b.TotalRecords)
	assert.Equal(t, 1, b.SuccessRecords)
	assert.Equal(t, 1, b.FailedRecords)
}

func TestService_StartUpload_SyncDisabled(t *testing.T) {
	service, m := newEngine()

	cfg := enabledConfig(42)
	cfg.IsEnabled = false
	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)

	_, err := service.StartUpload(context.Background(), 42, syncconfig.EntityProduct, false)
	assert.ErrorIs(t, err, ErrSyncDisabled)

	m.repo.AssertNotCalled(t, "Create")
}

func TestService_StartUpload_ForceOverridesDisabled(t *testing.T) {
	service, m := newEngine()

	cfg := enabledConfig(42)
	cfg.IsEnabled = false

	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)
	m.configs.On("ResolveDirection", mock.Anything, int64(10), syncconfig.EntityPrice).Return(syncconfig.DirectionUpload, nil)
	m.configs.On("ResolvePolicy", mock.Anything, int64(10), syncconfig.EntityPrice).Return(syncconfig.PolicyManual, nil)
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(int64(1), nil)
	m.repo.On("UpdateStatus", mock.Anything, int64(1), StatusPending, StatusInProgress).Return(true, nil)
	m.transport.On("UploadRecords", mock.Anything, int64(42), syncconfig.EntityPrice, time.Time{}, 100).Return([]RecordResult{}, nil)
	m.repo.On("Finish", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(nil)
	m.configs.On("MarkSyncSuccess", mock.Anything, int64(10), mock.AnythingOfType("time.Time")).Return(nil)
	m.logs.On("Append", mock.Anything, mock.AnythingOfType("*synclog.SyncLog")).Return(nil)

	b, err := service.StartUpload(context.Background(), 42, syncconfig.EntityPrice, true)
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, b.Status)
	assert.Equal(t, 0, b.TotalRecords)
}

func TestService_StartDownload_DirectionNotAllowed(t *testing.T) {
	service, m := newEngine()

	cfg := enabledConfig(42)
	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)
	m.configs.On("ResolveDirection", mock.Anything, int64(10), syncconfig.EntityInventory).Return(syncconfig.DirectionUpload, nil)

	_, err := service.StartDownload(context.Background(), 42, syncconfig.EntityInventory, false)
	assert.ErrorIs(t, err, ErrDirectionNotAllowed)

	m.repo.AssertNotCalled(t, "Create")
}

func TestService_StartUpload_UnknownEntityType(t *testing.T) {
	service, m := newEngine()

	_, err := service.StartUpload(context.Background(), 42, "warehouse", false)
	assert.ErrorIs(t, err, ErrUnknownEntityType)

	m.configs.AssertNotCalled(t, "GetConfiguration")
}

func TestService_StartUpload_AlreadyInFlight(t *testing.T) {
	service, m := newEngine()

	cfg := enabledConfig(42)
	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)
	m.configs.On("ResolveDirection", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.DirectionBidirectional, nil)

	// Another goroutine is holding this (store, entity, direction) slot
	service.inFlight[flightKey{storeID: 42, entity: syncconfig.EntityProduct, direction: syncconfig.DirectionUpload}] = struct{}{}

	_, err := service.StartUpload(context.Background(), 42, syncconfig.EntityProduct, false)
	assert.ErrorIs(t, err, ErrBatchInFlight)

	m.repo.AssertNotCalled(t, "Create")
}

func TestService_StartUpload_CancelledBeforeStart(t *testing.T) {
	service, m := newEngine()

	cfg := enabledConfig(42)
	cancelled := &SyncBatch{ID: 1, StoreID: 42, Status: StatusCancelled}

	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)
	m.configs.On("ResolveDirection", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.DirectionBidirectional, nil)
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(int64(1), nil)
	m.repo.On("UpdateStatus", mock.Anything, int64(1), StatusPending, StatusInProgress).Return(false, nil)
	m.repo.On("GetByID", mock.Anything, int64(1)).Return(cancelled, nil)

	b, err := service.StartUpload(context.Background(), 42, syncconfig.EntityProduct, false)
	assert.NoError(t, err)
	assert.Equal(t, StatusCancelled, b.Status)

	m.transport.AssertNotCalled(t, "UploadRecords", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_RunSync_Bidirectional(t *testing.T) {
	service, m := newEngine()

	cfg := enabledConfig(42)
	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)
	m.configs.On("ResolveDirection", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.DirectionBidirectional, nil)
	m.configs.On("ResolvePolicy", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.PolicyManual, nil)

	ids := []int64{1, 2}
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(ids[0], nil).Once()
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(ids[1], nil).Once()
	m.repo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("int64"), StatusPending, StatusInProgress).Return(true, nil)
	m.transport.On("UploadRecords", mock.Anything, int64(42), syncconfig.EntityProduct, time.Time{}, 100).Return([]RecordResult{}, nil)
	m.transport.On("DownloadRecords", mock.Anything, int64(42), syncconfig.EntityProduct, time.Time{}, 100).Return([]RecordResult{}, nil)
	m.repo.On("Finish", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(nil)
	m.configs.On("MarkSyncSuccess", mock.Anything, int64(10), mock.AnythingOfType("time.Time")).Return(nil)
	m.logs.On("Append", mock.Anything, mock.AnythingOfType("*synclog.SyncLog")).Return(nil)

	batches, err := service.RunSync(context.Background(), 42, syncconfig.EntityProduct, false)
	assert.NoError(t, err)
	assert.Len(t, batches, 2)
	assert.Equal(t, syncconfig.DirectionUpload, batches[0].Direction)
	assert.Equal(t, syncconfig.DirectionDownload, batches[1].Direction)

	m.transport.AssertExpectations(t)
}

func TestService_RunSync_Bidirectional_OneDirectionFails(t *testing.T) {
	service, m := newEngine()

	cfg := enabledConfig(42)
	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)
	m.configs.On("ResolveDirection", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.DirectionBidirectional, nil)
	m.configs.On("ResolvePolicy", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.PolicyManual, nil)

	// Upload direction dies at batch creation, download still runs
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(int64(0), errors.New("insert failed")).Once()
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(int64(2), nil).Once()
	m.repo.On("UpdateStatus", mock.Anything, int64(2), StatusPending, StatusInProgress).Return(true, nil)
	m.transport.On("DownloadRecords", mock.Anything, int64(42), syncconfig.EntityProduct, time.Time{}, 100).Return([]RecordResult{}, nil)
	m.repo.On("Finish", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(nil)
	m.configs.On("MarkSyncSuccess", mock.Anything, int64(10), mock.AnythingOfType("time.Time")).Return(nil)
	m.logs.On("Append", mock.Anything, mock.AnythingOfType("*synclog.SyncLog")).Return(nil)

	batches, err := service.RunSync(context.Background(), 42, syncconfig.EntityProduct, false)
	assert.NoError(t, err)
	assert.Len(t, batches, 1)
	assert.Equal(t, syncconfig.DirectionDownload, batches[0].Direction)
}

func TestService_RunSync_SingleDirection(t *testing.T) {
	service, m := newEngine()

	cfg := enabledConfig(42)
	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)
	m.configs.On("ResolveDirection", mock.Anything, int64(10), syncconfig.EntityOrder).Return(syncconfig.DirectionDownload, nil)
	m.configs.On("ResolvePolicy", mock.Anything, int64(10), syncconfig.EntityOrder).Return(syncconfig.PolicyManual, nil)
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(int64(1), nil)
	m.repo.On("UpdateStatus", mock.Anything, int64(1), StatusPending, StatusInProgress).Return(true, nil)
	m.transport.On("DownloadRecords", mock.Anything, int64(42), syncconfig.EntityOrder, time.Time{}, 100).Return([]RecordResult{}, nil)
	m.repo.On("Finish", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(nil)
	m.configs.On("MarkSyncSuccess", mock.Anything, int64(10), mock.AnythingOfType("time.Time")).Return(nil)
	m.logs.On("Append", mock.Anything, mock.AnythingOfType("*synclog.SyncLog")).Return(nil)

	batches, err := service.RunSync(context.Background(), 42, syncconfig.EntityOrder, false)
	assert.NoError(t, err)
	assert.Len(t, batches, 1)
	assert.Equal(t, syncconfig.DirectionDownload, batches[0].Direction)

	m.transport.AssertNotCalled(t, "UploadRecords", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Conflict_ManualPolicy(t *testing.T) {
	service, m := newEngine()

	since := time.Now().Add(-1 * time.Hour)
	cfg := enabledConfig(42)
	cfg.LastSuccessfulSync = &since

	// Both sides modified the entity after the last successful sync
	records := []RecordResult{{
		EntityID:         7,
		LocalModifiedAt:  since.Add(10 * time.Minute),
		RemoteModifiedAt: since.Add(20 * time.Minute),
	}}

	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)
	m.configs.On("ResolveDirection", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.DirectionBidirectional, nil)
	m.configs.On("ResolvePolicy", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.PolicyManual, nil)
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(int64(1), nil)
	m.repo.On("UpdateStatus", mock.Anything, int64(1), StatusPending, StatusInProgress).Return(true, nil)
	m.transport.On("UploadRecords", mock.Anything, int64(42), syncconfig.EntityProduct, since, 100).Return(records, nil)
	m.conflicts.On("Record", mock.Anything, mock.MatchedBy(func(c *conflict.SyncConflict) bool {
		return c.BatchID == 1 && c.EntityID == 7 && c.HQTimestamp == records[0].RemoteModifiedAt
	})).Return(int64(5), nil)
	m.repo.On("AddRecord", mock.Anything, mock.MatchedBy(func(r *SyncRecord) bool {
		return !r.IsSuccess && r.ErrorText == "unresolved conflict: awaiting manual resolution"
	})).Return(int64(0), nil)
	m.repo.On("Finish", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(nil)
	m.configs.On("MarkSyncSuccess", mock.Anything, int64(10), mock.AnythingOfType("time.Time")).Return(nil)
	m.logs.On("Append", mock.Anything, mock.AnythingOfType("*synclog.SyncLog")).Return(nil)

	b, err := service.StartUpload(context.Background(), 42, syncconfig.EntityProduct, false)
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, b.Status)
	assert.Equal(t, 1, b.FailedRecords)

	m.conflicts.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.conflicts.AssertExpectations(t)
}

func TestService_Conflict_HQWinsAutoResolve(t *testing.T) {
	service, m := newEngine()

	since := time.Now().Add(-1 * time.Hour)
	cfg := enabledConfig(42)
	cfg.LastSuccessfulSync = &since

	records := []RecordResult{{
		EntityID:         7,
		LocalModifiedAt:  since.Add(10 * time.Minute),
		RemoteModifiedAt: since.Add(20 * time.Minute),
	}}

	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)
	m.configs.On("ResolveDirection", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.DirectionBidirectional, nil)
	m.configs.On("ResolvePolicy", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.PolicyHQWins, nil)
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(int64(1), nil)
	m.repo.On("UpdateStatus", mock.Anything, int64(1), StatusPending, StatusInProgress).Return(true, nil)
	m.transport.On("UploadRecords", mock.Anything, int64(42), syncconfig.EntityProduct, since, 100).Return(records, nil)
	m.conflicts.On("Record", mock.Anything, mock.AnythingOfType("*conflict.SyncConflict")).Return(int64(5), nil)
	m.conflicts.On("Resolve", mock.Anything, int64(5), conflict.WinnerHQ, mock.AnythingOfType("string"), "policy:hq_wins").Return(nil)
	m.repo.On("AddRecord", mock.Anything, mock.MatchedBy(func(r *SyncRecord) bool {
		return r.IsSuccess
	})).Return(int64(0), nil)
	m.repo.On("Finish", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(nil)
	m.configs.On("MarkSyncSuccess", mock.Anything, int64(10), mock.AnythingOfType("time.Time")).Return(nil)
	m.logs.On("Append", mock.Anything, mock.AnythingOfType("*synclog.SyncLog")).Return(nil)

	// Auto-resolved conflict keeps the record successful
	b, err := service.StartUpload(context.Background(), 42, syncconfig.EntityProduct, false)
	assert.NoError(t, err)
	assert.Equal(t, 1, b.SuccessRecords)
	assert.Equal(t, 0, b.FailedRecords)

	m.conflicts.AssertExpectations(t)
}

func TestService_Conflict_StoreWinsAutoResolve(t *testing.T) {
	service, m := newEngine()

	since := time.Now().Add(-1 * time.Hour)
	cfg := enabledConfig(42)
	cfg.LastSuccessfulSync = &since

	records := []RecordResult{{
		EntityID:         7,
		LocalModifiedAt:  since.Add(10 * time.Minute),
		RemoteModifiedAt: since.Add(20 * time.Minute),
	}}

	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)
	m.configs.On("ResolveDirection", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.DirectionBidirectional, nil)
	m.configs.On("ResolvePolicy", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.PolicyStoreWins, nil)
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(int64(1), nil)
	m.repo.On("UpdateStatus", mock.Anything, int64(1), StatusPending, StatusInProgress).Return(true, nil)
	m.transport.On("UploadRecords", mock.Anything, int64(42), syncconfig.EntityProduct, since, 100).Return(records, nil)
	m.conflicts.On("Record", mock.Anything, mock.AnythingOfType("*conflict.SyncConflict")).Return(int64(5), nil)
	m.conflicts.On("Resolve", mock.Anything, int64(5), conflict.WinnerStore, mock.AnythingOfType("string"), "policy:store_wins").Return(nil)
	m.repo.On("AddRecord", mock.Anything, mock.MatchedBy(func(r *SyncRecord) bool {
		return r.IsSuccess
	})).Return(int64(0), nil)
	m.repo.On("Finish", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(nil)
	m.configs.On("MarkSyncSuccess", mock.Anything, int64(10), mock.AnythingOfType("time.Time")).Return(nil)
	m.logs.On("Append", mock.Anything, mock.AnythingOfType("*synclog.SyncLog")).Return(nil)

	// The store version wins and the record stays successful
	b, err := service.StartUpload(context.Background(), 42, syncconfig.EntityProduct, false)
	assert.NoError(t, err)
	assert.Equal(t, 1, b.SuccessRecords)
	assert.Equal(t, 0, b.FailedRecords)

	m.conflicts.AssertExpectations(t)
}

func TestService_NoConflictBeforeFirstSync(t *testing.T) {
	service, m := newEngine()

	// No successful sync yet: since is zero and conflicts are not detected
	cfg := enabledConfig(42)
	records := []RecordResult{{
		EntityID:         7,
		LocalModifiedAt:  time.Now(),
		RemoteModifiedAt: time.Now(),
	}}

	m.configs.On("GetConfiguration", mock.Anything, int64(42)).Return(cfg, nil)
	m.configs.On("ResolveDirection", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.DirectionBidirectional, nil)
	m.configs.On("ResolvePolicy", mock.Anything, int64(10), syncconfig.EntityProduct).Return(syncconfig.PolicyManual, nil)
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(int64(1), nil)
	m.repo.On("UpdateStatus", mock.Anything, int64(1), StatusPending, StatusInProgress).Return(true, nil)
	m.transport.On("UploadRecords", mock.Anything, int64(42), syncconfig.EntityProduct, time.Time{}, 100).Return(records, nil)
	m.repo.On("AddRecord", mock.Anything, mock.MatchedBy(func(r *SyncRecord) bool {
		return r.IsSuccess
	})).Return(int64(0), nil)
	m.repo.On("Finish", mock.Anything, mock.AnythingOfType("*batch.SyncBatch")).Return(nil)
	m.configs.On("MarkSyncSuccess", mock.Anything, int64(10), mock.AnythingOfType("time.Time")).Return(nil)
	m.logs.On("Append", mock.Anything, mock.AnythingOfType("*synclog.SyncLog")).Return(nil)

	b, err := service.StartUpload(context.Background(), 42, syncconfig.EntityProduct, false)
	assert.NoError(t, err)
	assert.Equal(t, 1, b.SuccessRecords)

	m.conflicts.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestService_CancelBatch(t *testing.T) {
	service, m := newEngine()

	pending := &SyncBatch{ID: 1, Status: StatusPending}
	m.repo.On("GetByID", mock.Anything, int64(1)).Return(pending, nil)
	m.repo.On("UpdateStatus", mock.Anything, int64(1), StatusPending, StatusCancelled).Return(true, nil)

	ok, err := service.CancelBatch(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, ok)

	m.repo.AssertExpectations(t)
}

func TestService_CancelBatch_NotPending(t *testing.T) {
	service, m := newEngine()

	completed := &SyncBatch{ID: 2, Status: StatusCompleted}
	m.repo.On("GetByID", mock.Anything, int64(2)).Return(completed, nil)
	m.repo.On("UpdateStatus", mock.Anything, int64(2), StatusPending, StatusCancelled).Return(false, nil)

	// Completed batches cannot be cancelled, but the call is not an error
	ok, err := service.CancelBatch(context.Background(), 2)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestService_CancelBatch_NotFound(t *testing.T) {
	service, m := newEngine()

	m.repo.On("GetByID", mock.Anything, int64(99)).Return(nil, ErrBatchNotFound)

	_, err := service.CancelBatch(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBatchNotFound)

	m.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CleanupOldBatches(t *testing.T) {
	service, m := newEngine()

	m.repo.On("DeactivateOld", mock.Anything, mock.MatchedBy(func(before time.Time) bool {
		return before.Before(time.Now())
	})).Return(int64(12), nil)

	count, err := service.CleanupOldBatches(context.Background(), 30)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), count)

	m.repo.AssertExpectations(t)
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusInProgress.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}
