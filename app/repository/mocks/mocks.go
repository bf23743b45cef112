package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	modelMongo "grade-analytics/app/models/mongodb"
	models "grade-analytics/app/models/postgresql"
	model "grade-analytics/app/models/stats"
)

// --- Dataset registry (Postgres) ---

type MockDatasetRepo struct {
	mock.Mock
}

func (m *MockDatasetRepo) Create(ctx context.Context, ds models.Dataset) (uuid.UUID, error) {
	args := m.Called(ctx, ds)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockDatasetRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Dataset, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Dataset), args.Error(1)
}

func (m *MockDatasetRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Dataset, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Dataset), args.Error(1)
}

func (m *MockDatasetRepo) List(ctx context.Context, search string, limit, offset int, sort string) ([]models.Dataset, int64, error) {
	args := m.Called(ctx, search, limit, offset, sort)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Dataset), args.Get(1).(int64), args.Error(2)
}

func (m *MockDatasetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Report archive (Mongo) ---

type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) InsertOne(ctx context.Context, report modelMongo.ArchivedReport) (string, error) {
	args := m.Called(ctx, report)
	return args.String(0), args.Error(1)
}

func (m *MockReportRepo) FindByStudent(ctx context.Context, studentID string, limit int64) ([]modelMongo.ArchivedReport, error) {
	args := m.Called(ctx, studentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]modelMongo.ArchivedReport), args.Error(1)
}

// --- Dataset source & cache ---

type MockDatasetSource struct {
	mock.Mock
}

func (m *MockDatasetSource) Load(ctx context.Context, datasetID uuid.UUID) ([]model.GradeRecord, error) {
	args := m.Called(ctx, datasetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GradeRecord), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, datasetID uuid.UUID) ([]model.GradeRecord, bool) {
	args := m.Called(ctx, datasetID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]model.GradeRecord), args.Bool(1)
}

func (m *MockCache) Set(ctx context.Context, datasetID uuid.UUID, records []model.GradeRecord) {
	m.Called(ctx, datasetID, records)
}

func (m *MockCache) Invalidate(ctx context.Context, datasetID uuid.UUID) {
	m.Called(ctx, datasetID)
}
