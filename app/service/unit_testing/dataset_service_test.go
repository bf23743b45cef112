package service_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	models "grade-analytics/app/models/postgresql"
	"grade-analytics/app/repository/mocks"
	repoPg "grade-analytics/app/repository/postgresql"
	service "grade-analytics/app/service/postgresql"
)

const uploadCSV = "student_id,departement,Code_ue,intitulé_matière,enseignant,note\n1,INFO,UE1,Algo,Smith,12\n2,INFO,UE1,Algo,Smith,30\n"

func setupDatasetTest(t *testing.T) (*fiber.App, *mocks.MockDatasetRepo, *mocks.MockCache, string) {
	repo := new(mocks.MockDatasetRepo)
	cache := new(mocks.MockCache)
	dir := t.TempDir()
	svc := service.NewDatasetService(repo, cache, dir)

	app := fiber.New()
	app.Get("/datasets", svc.GetAllDatasets)
	app.Post("/datasets", svc.UploadDataset)
	app.Get("/datasets/:id", svc.GetDataset)
	app.Delete("/datasets/:id", svc.DeleteDataset)
	return app, repo, cache, dir
}

func multipartUpload(t *testing.T, filename, content, name string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	if name != "" {
		require.NoError(t, w.WriteField("name", name))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUploadDataset(t *testing.T) {
	t.Run("Success: registers parsed dataset", func(t *testing.T) {
		app, repo, _, dir := setupDatasetTest(t)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(ds models.Dataset) bool {
			return ds.Name == "Semestre 1" && ds.RowCount == 1 && ds.RejectedCount == 1
		})).Return(uuid.New(), nil)

		body, contentType := multipartUpload(t, "grades.csv", uploadCSV, "Semestre 1")
		req := httptest.NewRequest("POST", "/datasets", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		var out struct {
			Rejected []struct {
				Line int `json:"line"`
			} `json:"rejected"`
		}
		raw, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(raw, &out))
		require.Len(t, out.Rejected, 1)
		assert.Equal(t, 3, out.Rejected[0].Line)

		files, _ := os.ReadDir(dir)
		assert.Len(t, files, 1)
		repo.AssertExpectations(t)
	})

	t.Run("Error: missing column removes file", func(t *testing.T) {
		app, repo, _, dir := setupDatasetTest(t)

		body, contentType := multipartUpload(t, "grades.csv", "student_id,note\n1,12\n", "")
		req := httptest.NewRequest("POST", "/datasets", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		files, _ := os.ReadDir(dir)
		assert.Empty(t, files)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error: no valid rows", func(t *testing.T) {
		app, _, _, _ := setupDatasetTest(t)

		csv := "student_id,departement,Code_ue,intitulé_matière,enseignant,note\n1,INFO,UE1,Algo,Smith,-1\n"
		body, contentType := multipartUpload(t, "grades.csv", csv, "")
		req := httptest.NewRequest("POST", "/datasets", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 422, resp.StatusCode)
	})

	t.Run("Error: header only", func(t *testing.T) {
		app, repo, _, dir := setupDatasetTest(t)

		csv := "student_id,departement,Code_ue,intitulé_matière,enseignant,note\n"
		body, contentType := multipartUpload(t, "grades.csv", csv, "")
		req := httptest.NewRequest("POST", "/datasets", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 422, resp.StatusCode)

		files, _ := os.ReadDir(dir)
		assert.Empty(t, files)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Success: ragged row reported as rejected", func(t *testing.T) {
		app, repo, _, _ := setupDatasetTest(t)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(ds models.Dataset) bool {
			return ds.RowCount == 1 && ds.RejectedCount == 1
		})).Return(uuid.New(), nil)

		csv := "student_id,departement,Code_ue,intitulé_matière,enseignant,note\n1,INFO,UE1,Algo,Smith,12\n2,INFO,UE1,Algo,15\n"
		body, contentType := multipartUpload(t, "grades.csv", csv, "")
		req := httptest.NewRequest("POST", "/datasets", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
		repo.AssertExpectations(t)
	})

	t.Run("Error: not a csv", func(t *testing.T) {
		app, _, _, _ := setupDatasetTest(t)

		body, contentType := multipartUpload(t, "grades.xlsx", "x", "")
		req := httptest.NewRequest("POST", "/datasets", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestGetAllDatasets(t *testing.T) {
	t.Run("Success: paginated list", func(t *testing.T) {
		app, repo, _, _ := setupDatasetTest(t)
		list := []models.Dataset{{ID: uuid.New(), Name: "A"}, {ID: uuid.New(), Name: "B"}}
		repo.On("List", mock.Anything, "sem", 2, 2, "").Return(list, int64(5), nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/datasets?page=2&limit=2&search=sem", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var out models.PaginatedResponse
		raw, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Len(t, out.Data, 2)
		assert.Equal(t, 3, out.Meta.TotalPage)
		assert.Equal(t, 5, out.Meta.TotalData)
		repo.AssertExpectations(t)
	})

	t.Run("Error: database failure", func(t *testing.T) {
		app, repo, _, _ := setupDatasetTest(t)
		repo.On("List", mock.Anything, "", 10, 0, "").Return(nil, int64(0), assert.AnError)

		resp, err := app.Test(httptest.NewRequest("GET", "/datasets", nil))
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
	})
}

func TestGetDataset(t *testing.T) {
	t.Run("Error: not found", func(t *testing.T) {
		app, repo, _, _ := setupDatasetTest(t)
		id := uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(models.Dataset{}, repoPg.ErrDatasetNotFound)

		resp, err := app.Test(httptest.NewRequest("GET", "/datasets/"+id.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("Error: invalid UUID format", func(t *testing.T) {
		app, _, _, _ := setupDatasetTest(t)
		resp, err := app.Test(httptest.NewRequest("GET", "/datasets/invalid-uuid", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestDeleteDataset(t *testing.T) {
	app, repo, cache, dir := setupDatasetTest(t)
	id := uuid.New()
	path := filepath.Join(dir, id.String()+".csv")
	require.NoError(t, os.WriteFile(path, []byte(uploadCSV), 0o644))

	repo.On("GetByID", mock.Anything, id).Return(models.Dataset{ID: id, FilePath: path}, nil)
	repo.On("Delete", mock.Anything, id).Return(nil)
	cache.On("Invalidate", mock.Anything, id).Return()

	resp, err := app.Test(httptest.NewRequest("DELETE", "/datasets/"+id.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
