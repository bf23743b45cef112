package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	models "grade-analytics/app/models/postgresql"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrDatasetNotFound = errors.New("dataset not found")

type DatasetRepository interface {
	Create(ctx context.Context, ds models.Dataset) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Dataset, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Dataset, error)
	List(ctx context.Context, search string, limit, offset int, sort string) ([]models.Dataset, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type datasetRepository struct {
	db *sql.DB
}

func NewDatasetRepository(db *sql.DB) DatasetRepository {
	return &datasetRepository{db: db}
}

func (r *datasetRepository) Create(ctx context.Context, ds models.Dataset) (uuid.UUID, error) {
	query := `
        INSERT INTO datasets (id, name, file_path, row_count, rejected_count, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id
    `
	if ds.ID == uuid.Nil {
		ds.ID = uuid.New()
	}
	var newID uuid.UUID
	err := r.db.QueryRowContext(ctx, query,
		ds.ID,
		ds.Name,
		ds.FilePath,
		ds.RowCount,
		ds.RejectedCount,
	).Scan(&newID)

	return newID, err
}

func (r *datasetRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Dataset, error) {
	query := `
        SELECT id, name, file_path, row_count, rejected_count, created_at
        FROM datasets
        WHERE id = $1
    `
	var ds models.Dataset
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ds.ID,
		&ds.Name,
		&ds.FilePath,
		&ds.RowCount,
		&ds.RejectedCount,
		&ds.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ds, fmt.Errorf("%w: %s", ErrDatasetNotFound, id)
	}
	return ds, err
}

func (r *datasetRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Dataset, error) {
	query := `
        SELECT id, name, file_path, row_count, rejected_count, created_at
        FROM datasets
        WHERE id = ANY($1::uuid[])
    `
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	rows, err := r.db.QueryContext(ctx, query, pq.Array(raw))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.Dataset
	for rows.Next() {
		var ds models.Dataset
		if err := rows.Scan(&ds.ID, &ds.Name, &ds.FilePath, &ds.RowCount, &ds.RejectedCount, &ds.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, ds)
	}
	return results, rows.Err()
}

func (r *datasetRepository) List(ctx context.Context, search string, limit, offset int, sort string) ([]models.Dataset, int64, error) {
	// WHERE dipisah supaya bisa dipakai untuk COUNT dan SELECT
	whereClause := ""
	var args []interface{}
	argCount := 1

	if search != "" {
		whereClause = fmt.Sprintf(" WHERE name ILIKE $%d", argCount)
		args = append(args, "%"+search+"%")
		argCount++
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM datasets` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `
        SELECT id, name, file_path, row_count, rejected_count, created_at
        FROM datasets
    ` + whereClause

	if sort == "oldest" {
		query += ` ORDER BY created_at ASC`
	} else {
		query += ` ORDER BY created_at DESC`
	}

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
		args = append(args, limit, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []models.Dataset
	for rows.Next() {
		var ds models.Dataset
		err := rows.Scan(
			&ds.ID,
			&ds.Name,
			&ds.FilePath,
			&ds.RowCount,
			&ds.RejectedCount,
			&ds.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, ds)
	}

	return results, totalCount, rows.Err()
}

func (r *datasetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrDatasetNotFound, id)
	}
	return nil
}
