package route_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	model "grade-analytics/app/models/stats"
	"grade-analytics/app/repository/mocks"
	mongoService "grade-analytics/app/service/mongodb"
	postgreService "grade-analytics/app/service/postgresql"
	statsService "grade-analytics/app/service/statistics"
	FiberApp "grade-analytics/fiber"
	"grade-analytics/route"
)

func TestRegister(t *testing.T) {
	source := new(mocks.MockDatasetSource)
	datasetRepo := new(mocks.MockDatasetRepo)
	reportRepo := new(mocks.MockReportRepo)

	app := FiberApp.SetupFiber(4)
	route.Register(app,
		postgreService.NewDatasetService(datasetRepo, nil, t.TempDir()),
		statsService.NewStatisticsService(source),
		mongoService.NewReportService(reportRepo, datasetRepo, source),
	)

	id := uuid.New()
	source.On("Load", mock.Anything, id).Return([]model.GradeRecord{
		{StudentID: "1", Department: "INFO", SubjectCode: "M1", SubjectName: "Math", Teacher: "Dupont", HasTeacher: true, Grade: 12},
	}, nil)

	t.Run("Success: health check", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Success: metrics endpoint", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "go_goroutines")
	})

	t.Run("Success: subject path is unescaped", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/datasets/"+id.String()+"/stats/subjects/Math", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Error: unknown route", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/nope", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}
