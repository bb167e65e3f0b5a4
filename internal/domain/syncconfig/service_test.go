package syncconfig

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, cfg *SyncConfiguration) (int64, error) {
	args := m.Called(ctx, cfg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetByStore(ctx context.Context, storeID int64) (*SyncConfiguration, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SyncConfiguration), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*SyncConfiguration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SyncConfiguration), args.Error(1)
}

func (m *MockRepository) SetEnabled(ctx context.Context, storeID int64, enabled bool) error {
	args := m.Called(ctx, storeID, enabled)
	return args.Error(0)
}

func (m *MockRepository) SetLastSuccessfulSync(ctx context.Context, configID int64, t time.Time) error {
	args := m.Called(ctx, configID, t)
	return args.Error(0)
}

func (m *MockRepository) ListEnabled(ctx context.Context) ([]SyncConfiguration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SyncConfiguration), args.Error(1)
}

func (m *MockRepository) AddRule(ctx context.Context, rule *SyncEntityRule) (int64, error) {
	args := m.Called(ctx, rule)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetEnabledRule(ctx context.Context, configID int64, entity EntityType) (*SyncEntityRule, error) {
	args := m.Called(ctx, configID, entity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SyncEntityRule), args.Error(1)
}

func (m *MockRepository) ListRules(ctx context.Context, configID int64) ([]SyncEntityRule, error) {
	args := m.Called(ctx, configID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SyncEntityRule), args.Error(1)
}

func (m *MockRepository) SetRuleEnabled(ctx context.Context, ruleID int64, enabled bool) error {
	args := m.Called(ctx, ruleID, enabled)
	return args.Error(0)
}

func TestService_CreateConfiguration(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	params := CreateParams{
		StoreID:             42,
		SyncIntervalSeconds: 300,
		MaxBatchSize:        500,
		IsEnabled:           true,
	}

	mockRepo.On("GetByStore", mock.Anything, int64(42)).Return(nil, ErrConfigNotFound)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(cfg *SyncConfiguration) bool {
		return cfg.StoreID == 42 && cfg.IsActive && cfg.IsEnabled
	})).Return(int64(7), nil)

	cfg, err := service.CreateConfiguration(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), cfg.ID)
	assert.Equal(t, int64(42), cfg.StoreID)
	assert.Nil(t, cfg.LastSuccessfulSync)

	mockRepo.AssertExpectations(t)
}

func TestService_CreateConfiguration_Duplicate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	existing := &SyncConfiguration{ID: 1, StoreID: 42}
	mockRepo.On("GetByStore", mock.Anything, int64(42)).Return(existing, nil)

	_, err := service.CreateConfiguration(context.Background(), CreateParams{
		StoreID:             42,
		SyncIntervalSeconds: 300,
		MaxBatchSize:        500,
	})
	assert.ErrorIs(t, err, ErrConfigExists)

	mockRepo.AssertExpectations(t)
}

func TestService_CreateConfiguration_InvalidParams(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	tests := []struct {
		name   string
		params CreateParams
	}{
		{"zero interval", CreateParams{StoreID: 1, SyncIntervalSeconds: 0, MaxBatchSize: 100}},
		{"negative interval", CreateParams{StoreID: 1, SyncIntervalSeconds: -5, MaxBatchSize: 100}},
		{"zero batch size", CreateParams{StoreID: 1, SyncIntervalSeconds: 300, MaxBatchSize: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateConfiguration(context.Background(), tt.params)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}

	// Validation fails before the repository is touched
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_AddEntityRule(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	params := AddRuleParams{
		ConfigID:       1,
		EntityType:     EntityProduct,
		Direction:      DirectionDownload,
		ConflictPolicy: PolicyHQWins,
		Priority:       10,
	}

	mockRepo.On("GetEnabledRule", mock.Anything, int64(1), EntityProduct).Return(nil, ErrRuleNotFound)
	mockRepo.On("AddRule", mock.Anything, mock.MatchedBy(func(r *SyncEntityRule) bool {
		return r.ConfigID == 1 && r.EntityType == EntityProduct && r.IsEnabled
	})).Return(int64(3), nil)

	rule, err := service.AddEntityRule(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), rule.ID)
	assert.Equal(t, DirectionDownload, rule.Direction)
	assert.True(t, rule.IsEnabled)

	mockRepo.AssertExpectations(t)
}

func TestService_AddEntityRule_DuplicateEnabled(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	existing := &SyncEntityRule{ID: 5, ConfigID: 1, EntityType: EntityOrder, IsEnabled: true}
	mockRepo.On("GetEnabledRule", mock.Anything, int64(1), EntityOrder).Return(existing, nil)

	_, err := service.AddEntityRule(context.Background(), AddRuleParams{
		ConfigID:       1,
		EntityType:     EntityOrder,
		Direction:      DirectionUpload,
		ConflictPolicy: PolicyManual,
	})
	assert.ErrorIs(t, err, ErrRuleExists)

	mockRepo.AssertNotCalled(t, "AddRule")
}

func TestService_AddEntityRule_InvalidParams(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	tests := []struct {
		name   string
		params AddRuleParams
	}{
		{"unknown entity", AddRuleParams{ConfigID: 1, EntityType: "warehouse", Direction: DirectionUpload, ConflictPolicy: PolicyManual}},
		{"unknown direction", AddRuleParams{ConfigID: 1, EntityType: EntityPrice, Direction: "sideways", ConflictPolicy: PolicyManual}},
		{"unknown policy", AddRuleParams{ConfigID: 1, EntityType: EntityPrice, Direction: DirectionUpload, ConflictPolicy: "newest_wins"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AddEntityRule(context.Background(), tt.params)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestService_SetRuleEnabled(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("SetRuleEnabled", mock.Anything, int64(3), false).Return(nil)

	err := service.SetRuleEnabled(context.Background(), 3, false)
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestService_SetRuleEnabled_NotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("SetRuleEnabled", mock.Anything, int64(99), true).Return(ErrRuleNotFound)

	err := service.SetRuleEnabled(context.Background(), 99, true)
	assert.ErrorIs(t, err, ErrRuleNotFound)

	mockRepo.AssertExpectations(t)
}

func TestService_ResolveDirection_Defaults(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("GetEnabledRule", mock.Anything, int64(1), EntityCustomer).Return(nil, ErrRuleNotFound)

	direction, err := service.ResolveDirection(context.Background(), 1, EntityCustomer)
	assert.NoError(t, err)
	assert.Equal(t, DefaultDirection, direction)
	assert.Equal(t, DirectionBidirectional, direction)

	mockRepo.AssertExpectations(t)
}

func TestService_ResolveDirection_FromRule(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	rule := &SyncEntityRule{ID: 2, ConfigID: 1, EntityType: EntityInventory, Direction: DirectionUpload, IsEnabled: true}
	mockRepo.On("GetEnabledRule", mock.Anything, int64(1), EntityInventory).Return(rule, nil)

	direction, err := service.ResolveDirection(context.Background(), 1, EntityInventory)
	assert.NoError(t, err)
	assert.Equal(t, DirectionUpload, direction)

	mockRepo.AssertExpectations(t)
}

func TestService_ResolvePolicy_Defaults(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("GetEnabledRule", mock.Anything, int64(1), EntityProduct).Return(nil, ErrRuleNotFound)

	policy, err := service.ResolvePolicy(context.Background(), 1, EntityProduct)
	assert.NoError(t, err)
	assert.Equal(t, DefaultPolicy, policy)
	assert.Equal(t, PolicyManual, policy)

	mockRepo.AssertExpectations(t)
}

func TestService_ResolvePolicy_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("GetEnabledRule", mock.Anything, int64(1), EntityProduct).Return(nil, errors.New("database error"))

	_, err := service.ResolvePolicy(context.Background(), 1, EntityProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
}

func TestService_MarkSyncSuccess(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	at := time.Now()
	mockRepo.On("SetLastSuccessfulSync", mock.Anything, int64(1), at).Return(nil)

	err := service.MarkSyncSuccess(context.Background(), 1, at)
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestDirection_Allows(t *testing.T) {
	assert.True(t, DirectionBidirectional.Allows(DirectionUpload))
	assert.True(t, DirectionBidirectional.Allows(DirectionDownload))
	assert.True(t, DirectionUpload.Allows(DirectionUpload))
	assert.False(t, DirectionUpload.Allows(DirectionDownload))
	assert.False(t, DirectionDownload.Allows(DirectionUpload))
}
