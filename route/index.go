package route

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"

	"grade-analytics/app/loader"
	repoMongo "grade-analytics/app/repository/mongodb"
	repoPg "grade-analytics/app/repository/postgresql"
	mongoService "grade-analytics/app/service/mongodb"
	postgreService "grade-analytics/app/service/postgresql"
	statsService "grade-analytics/app/service/statistics"
)

type Deps struct {
	Postgres  *sql.DB
	Mongo     *mongo.Database
	Cache     loader.Cache
	UploadDir string
}

func SetupRoutes(app *fiber.App, deps Deps) {
	// Repositories
	datasetRepo := repoPg.NewDatasetRepository(deps.Postgres)
	reportRepo := repoMongo.NewReportRepository(deps.Mongo)

	source := loader.NewSource(datasetRepo, deps.Cache)

	// Services
	datasetService := postgreService.NewDatasetService(datasetRepo, deps.Cache, deps.UploadDir)
	statisticsService := statsService.NewStatisticsService(source)
	reportService := mongoService.NewReportService(reportRepo, datasetRepo, source)

	Register(app, datasetService, statisticsService, reportService)
}

// Register memasang semua endpoint; dipisah dari SetupRoutes supaya bisa dites tanpa database.
func Register(app *fiber.App, datasets *postgreService.DatasetService, statistics *statsService.StatisticsService, reports *mongoService.ReportService) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// Datasets
	ds := api.Group("/datasets")
	ds.Get("/", datasets.GetAllDatasets)
	ds.Post("/", datasets.UploadDataset)
	ds.Get("/:id", datasets.GetDataset)
	ds.Delete("/:id", datasets.DeleteDataset)

	// Statistics
	st := ds.Group("/:id/stats")
	st.Get("/global", statistics.GetGlobalStats)
	st.Get("/departments", statistics.GetDepartmentStats)
	st.Get("/subjects", statistics.GetSubjectStats)
	st.Get("/subjects/:subject", statistics.GetSubjectStats)
	st.Get("/teachers", statistics.GetTeacherStats)
	st.Get("/teachers/:teacher", statistics.GetTeacherStats)
	st.Get("/students/:studentId", statistics.GetStudentReport)
	st.Post("/students/:studentId/archive", reports.ArchiveStudentReport)
	st.Get("/top-flop", statistics.GetTopFlop)

	ds.Get("/:id/export/departments.xlsx", statistics.ExportDepartmentStats)

	// Report archive
	api.Get("/reports/students/:studentId", reports.GetStudentArchives)
}
