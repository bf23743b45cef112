package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"grade-analytics/app/analysis"
	"grade-analytics/app/loader"
	modelMongo "grade-analytics/app/models/mongodb"
	model "grade-analytics/app/models/stats"
	repoMongo "grade-analytics/app/repository/mongodb"
	repoPg "grade-analytics/app/repository/postgresql"
	"grade-analytics/utils"
)

type ReportService struct {
	reports  repoMongo.ReportRepository
	datasets repoPg.DatasetRepository
	source   loader.DatasetSource
	now      func() time.Time
}

func NewReportService(reports repoMongo.ReportRepository, datasets repoPg.DatasetRepository, source loader.DatasetSource) *ReportService {
	return &ReportService{reports: reports, datasets: datasets, source: source, now: time.Now}
}

// POST /datasets/:id/stats/students/:studentId/archive
// Menghitung ulang bulletin mahasiswa lalu menyimpan snapshot-nya ke MongoDB.
func (s *ReportService) ArchiveStudentReport(c *fiber.Ctx) error {
	ctx := c.UserContext()

	datasetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid dataset ID"})
	}
	studentID := utils.PathParam(c, "studentId")

	records, err := s.source.Load(ctx, datasetID)
	if err != nil {
		return utils.Fail(c, err)
	}

	report, err := analysis.StudentReport(records, studentID)
	if err != nil {
		return utils.Fail(c, err)
	}

	doc := modelMongo.NewArchivedReport(datasetID.String(), report, s.now())
	id, err := s.reports.InsertOne(ctx, doc)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to archive report"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Report archived",
		"id":      id,
		"data":    report,
	})
}

// GET /reports/students/:studentId?limit=
func (s *ReportService) GetStudentArchives(c *fiber.Ctx) error {
	ctx := c.UserContext()
	studentID := model.CanonicalID(utils.PathParam(c, "studentId"))

	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	archives, err := s.reports.FindByStudent(ctx, studentID, int64(limit))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch archived reports"})
	}

	// Lengkapi nama dataset; dataset yang sudah dihapus dibiarkan tanpa nama.
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, a := range archives {
		id, err := uuid.Parse(a.DatasetID)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		datasets, err := s.datasets.GetByIDs(ctx, ids)
		if err == nil {
			names := make(map[string]string, len(datasets))
			for _, ds := range datasets {
				names[ds.ID.String()] = ds.Name
			}
			for i := range archives {
				archives[i].DatasetName = names[archives[i].DatasetID]
			}
		}
	}

	return utils.Success(c, archives)
}
