package service

import (
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"grade-analytics/app/loader"
	"grade-analytics/app/metrics"
	models "grade-analytics/app/models/postgresql"
	repoPg "grade-analytics/app/repository/postgresql"
	"grade-analytics/utils"
)

// maxRejectedInResponse membatasi jumlah baris ditolak yang dikirim balik saat upload.
const maxRejectedInResponse = 50

type DatasetService struct {
	repo      repoPg.DatasetRepository
	cache     loader.Cache
	uploadDir string
}

func NewDatasetService(repo repoPg.DatasetRepository, cache loader.Cache, uploadDir string) *DatasetService {
	return &DatasetService{repo: repo, cache: cache, uploadDir: uploadDir}
}

// POST /datasets (multipart: file, name)
func (s *DatasetService) UploadDataset(c *fiber.Ctx) error {
	ctx := c.UserContext()

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No file uploaded"})
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".csv") {
		return c.Status(400).JSON(fiber.Map{"error": "Only .csv files are accepted"})
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to prepare upload directory"})
	}

	// Nama file unik supaya tidak saling menimpa
	id := uuid.New()
	filePath := filepath.Join(s.uploadDir, id.String()+".csv")
	if err := c.SaveFile(file, filePath); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save file to disk"})
	}

	result, err := loader.LoadFile(filePath)
	if err != nil {
		_ = os.Remove(filePath)
		return c.Status(utils.StatusFor(err)).JSON(fiber.Map{
			"error":    err.Error(),
			"rejected": truncateRejected(result.Rejected),
		})
	}
	metrics.AddRejectedRows(len(result.Rejected))

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		name = file.Filename
	}

	ds := models.Dataset{
		ID:            id,
		Name:          name,
		FilePath:      filePath,
		RowCount:      len(result.Records),
		RejectedCount: len(result.Rejected),
	}
	if _, err := s.repo.Create(ctx, ds); err != nil {
		_ = os.Remove(filePath)
		slog.Error("Gagal mendaftarkan dataset", "error", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to register dataset"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":  "Dataset uploaded successfully",
		"data":     ds,
		"rejected": truncateRejected(result.Rejected),
	})
}

func truncateRejected(rows []loader.RejectedRow) []loader.RejectedRow {
	if rows == nil {
		return []loader.RejectedRow{}
	}
	if len(rows) > maxRejectedInResponse {
		return rows[:maxRejectedInResponse]
	}
	return rows
}

// GET /datasets?page=&limit=&search=&sort=
func (s *DatasetService) GetAllDatasets(c *fiber.Ctx) error {
	var query models.PaginationQuery
	if err := c.QueryParser(&query); err != nil {
		query.Page = 1
		query.Limit = 10
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}
	if query.Limit > 100 {
		query.Limit = 100
	}
	offset := (query.Page - 1) * query.Limit

	datasets, total, err := s.repo.List(c.UserContext(), query.Search, query.Limit, offset, query.Sort)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error: " + err.Error()})
	}

	data := make([]interface{}, 0, len(datasets))
	for _, ds := range datasets {
		data = append(data, ds)
	}

	return c.JSON(models.PaginatedResponse{
		Data: data,
		Meta: models.PaginationMeta{
			CurrentPage: query.Page,
			TotalPage:   int(math.Ceil(float64(total) / float64(query.Limit))),
			TotalData:   int(total),
			Limit:       query.Limit,
		},
	})
}

// GET /datasets/:id
func (s *DatasetService) GetDataset(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid dataset ID"})
	}

	ds, err := s.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, ds)
}

// DELETE /datasets/:id
func (s *DatasetService) DeleteDataset(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid dataset ID"})
	}

	ds, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return utils.Fail(c, err)
	}

	s.cleanup(ctx, ds)
	return c.JSON(fiber.Map{"message": "Dataset deleted successfully"})
}

// cleanup: registry sudah terhapus, file dan cache dibersihkan sebisanya.
func (s *DatasetService) cleanup(ctx context.Context, ds models.Dataset) {
	if err := os.Remove(ds.FilePath); err != nil && !os.IsNotExist(err) {
		slog.Warn("Gagal menghapus file dataset", "path", ds.FilePath, "error", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, ds.ID)
	}
}
