package loader

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	model "grade-analytics/app/models/stats"
	repoPg "grade-analytics/app/repository/postgresql"
)

// Cache menyimpan record yang sudah diparse per dataset. Cache nil berarti caching dimatikan.
type Cache interface {
	Get(ctx context.Context, datasetID uuid.UUID) ([]model.GradeRecord, bool)
	Set(ctx context.Context, datasetID uuid.UUID, records []model.GradeRecord)
	Invalidate(ctx context.Context, datasetID uuid.UUID)
}

// DatasetSource is what the statistics handlers depend on.
type DatasetSource interface {
	Load(ctx context.Context, datasetID uuid.UUID) ([]model.GradeRecord, error)
}

type Source struct {
	datasets repoPg.DatasetRepository
	cache    Cache
}

func NewSource(datasets repoPg.DatasetRepository, cache Cache) *Source {
	return &Source{datasets: datasets, cache: cache}
}

// Load resolves the dataset file through the registry and parses it, unless a
// cached copy exists. Rejected rows are logged, not returned.
func (s *Source) Load(ctx context.Context, datasetID uuid.UUID) ([]model.GradeRecord, error) {
	if s.cache != nil {
		if records, ok := s.cache.Get(ctx, datasetID); ok {
			return records, nil
		}
	}

	ds, err := s.datasets.GetByID(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	result, err := LoadFile(ds.FilePath)
	if err != nil {
		return nil, err
	}
	if len(result.Rejected) > 0 {
		slog.Warn("dataset rows quarantined", "dataset_id", datasetID, "rejected", len(result.Rejected))
	}

	if s.cache != nil {
		s.cache.Set(ctx, datasetID, result.Records)
	}
	return result.Records, nil
}
