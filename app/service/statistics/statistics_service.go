package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"grade-analytics/app/analysis"
	"grade-analytics/app/loader"
	"grade-analytics/app/metrics"
	model "grade-analytics/app/models/stats"
	"grade-analytics/utils"
)

type StatisticsService struct {
	source loader.DatasetSource
}

func NewStatisticsService(source loader.DatasetSource) *StatisticsService {
	return &StatisticsService{source: source}
}

// load membaca dataset dari parameter :id. Dataset yang tidak ada ditandai not_found di metrik.
func (s *StatisticsService) load(c *fiber.Ctx, result *string) (uuid.UUID, []model.GradeRecord, error) {
	datasetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid dataset ID")
	}

	records, err := s.source.Load(c.UserContext(), datasetID)
	if err != nil {
		markNotFound(err, result)
		return datasetID, nil, err
	}
	return datasetID, records, nil
}

func markNotFound(err error, result *string) {
	if utils.StatusFor(err) == fiber.StatusNotFound {
		*result = metrics.ResultNotFound
	}
}

// withRecords menjalankan fn atas dataset :id.
// Semua handler statistik lewat sini supaya metrik dan mapping error seragam.
func (s *StatisticsService) withRecords(c *fiber.Ctx, operation string, fn func([]model.GradeRecord) (interface{}, error)) error {
	result := metrics.ResultError
	defer metrics.Observe(operation, time.Now(), &result)

	_, records, err := s.load(c, &result)
	if err != nil {
		return utils.Fail(c, err)
	}

	data, err := fn(records)
	if err != nil {
		markNotFound(err, &result)
		return utils.Fail(c, err)
	}

	result = metrics.ResultOK
	return utils.Success(c, data)
}

// GET /datasets/:id/stats/global
func (s *StatisticsService) GetGlobalStats(c *fiber.Ctx) error {
	return s.withRecords(c, "global", func(records []model.GradeRecord) (interface{}, error) {
		return analysis.GlobalStats(records)
	})
}

// GET /datasets/:id/stats/departments
func (s *StatisticsService) GetDepartmentStats(c *fiber.Ctx) error {
	return s.withRecords(c, "departments", func(records []model.GradeRecord) (interface{}, error) {
		return analysis.StatsByGroup(records), nil
	})
}

// GET /datasets/:id/stats/subjects/:subject (atau ?subject=)
func (s *StatisticsService) GetSubjectStats(c *fiber.Ctx) error {
	subject := utils.PathParam(c, "subject")
	if subject == "" {
		subject = c.Query("subject")
	}
	if subject == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Subject is required"})
	}

	return s.withRecords(c, "subject", func(records []model.GradeRecord) (interface{}, error) {
		return analysis.StatsBySubject(records, subject)
	})
}

// GET /datasets/:id/stats/teachers/:teacher (atau ?teacher=)
func (s *StatisticsService) GetTeacherStats(c *fiber.Ctx) error {
	teacher := utils.PathParam(c, "teacher")
	if teacher == "" {
		teacher = c.Query("teacher")
	}
	if teacher == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Teacher is required"})
	}

	return s.withRecords(c, "teacher", func(records []model.GradeRecord) (interface{}, error) {
		return analysis.StatsByTeacher(records, teacher)
	})
}

// GET /datasets/:id/stats/students/:studentId
func (s *StatisticsService) GetStudentReport(c *fiber.Ctx) error {
	studentID := utils.PathParam(c, "studentId")
	if studentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student ID is required"})
	}

	return s.withRecords(c, "student", func(records []model.GradeRecord) (interface{}, error) {
		return analysis.StudentReport(records, studentID)
	})
}

// GET /datasets/:id/stats/top-flop?category=subject|teacher
func (s *StatisticsService) GetTopFlop(c *fiber.Ctx) error {
	category := c.Query("category", analysis.CategorySubject)

	return s.withRecords(c, "topflop", func(records []model.GradeRecord) (interface{}, error) {
		return fiber.Map{
			"category": category,
			"ranking":  analysis.TopFlop(records, category),
		}, nil
	})
}

var departmentHeaders = []string{"Department", "Subject code", "Subject", "Mean", "Median", "Std dev", "Students", "Pass rate %", "Grades"}

// GET /datasets/:id/export/departments.xlsx
func (s *StatisticsService) ExportDepartmentStats(c *fiber.Ctx) error {
	result := metrics.ResultError
	defer metrics.Observe("export_departments", time.Now(), &result)

	datasetID, records, err := s.load(c, &result)
	if err != nil {
		return utils.Fail(c, err)
	}

	buf, err := DepartmentWorkbook(analysis.StatsByGroup(records))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to write Excel file"})
	}

	result = metrics.ResultOK
	fileName := fmt.Sprintf("departments_%s_%s.xlsx", datasetID, time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+fileName)
	return c.Send(buf.Bytes())
}

// DepartmentWorkbook menulis satu baris per grup; stddev yang tidak terdefinisi dibiarkan kosong.
func DepartmentWorkbook(rows []model.GroupedStats) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Departments"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, header := range departmentHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		values := []interface{}{
			r.Department, r.SubjectCode, r.SubjectName,
			r.Mean, r.Median, float64(r.StdDev),
			r.TotalStudents, r.PassRate, r.Count,
		}
		for col, v := range values {
			if col == 5 && r.StdDev.IsNaN() {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	return f.WriteToBuffer()
}
