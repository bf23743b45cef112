package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	model "grade-analytics/app/models/stats"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrNoValidRows   = errors.New("dataset has no valid rows")
	ErrMalformedCSV  = errors.New("malformed csv")
)

// Nama kolom yang diterima untuk setiap field. Header asli dataset berbahasa Prancis.
var columnAliases = map[string][]string{
	"student_id":   {"student_id", "studentId", "etudiant_id"},
	"department":   {"departement", "department", "département"},
	"subject_code": {"Code_ue", "code_ue", "subject_code"},
	"subject_name": {"intitulé_matière", "intitule_matiere", "subject_name", "subject"},
	"teacher":      {"enseignant", "teacher"},
	"grade":        {"note", "grade"},
}

var requiredColumns = []string{"student_id", "department", "subject_code", "subject_name", "teacher", "grade"}

type RejectedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type LoadResult struct {
	Records  []model.GradeRecord `json:"-"`
	Rejected []RejectedRow       `json:"rejected"`
}

// LoadFile membaca dataset CSV dari disk.
func LoadFile(path string) (LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV parses a grade CSV. Malformed rows are quarantined in Rejected
// rather than coerced; an error is returned only when the file itself is unusable
// or when no row survives.
func ParseCSV(r io.Reader) (LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return LoadResult{}, ErrNoValidRows
	}
	if err != nil {
		return LoadResult{}, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	for i := range header {
		header[i] = normalizeHeader(header[i])
	}

	names := make(map[string]string, len(requiredColumns))
	for _, field := range requiredColumns {
		name, ok := resolveColumn(header, columnAliases[field])
		if !ok {
			return LoadResult{}, fmt.Errorf("%w: %s", ErrMissingColumn, field)
		}
		names[field] = name
	}

	var result LoadResult

	// Baris dengan jumlah kolom salah dikarantina sebelum masuk ke dataframe.
	rows := [][]string{header}
	var lines []int
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}
		line, _ := reader.FieldPos(0)
		if len(row) != len(header) {
			result.Rejected = append(result.Rejected, RejectedRow{
				Line:   line,
				Reason: fmt.Sprintf("expected %d fields, got %d", len(header), len(row)),
			})
			continue
		}
		rows = append(rows, row)
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return result, ErrNoValidRows
	}

	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{"", "NA", "NaN", "nan", "null"}),
	)
	if df.Err != nil {
		return result, fmt.Errorf("%w: %v", ErrMalformedCSV, df.Err)
	}

	cols := make(map[string]series.Series, len(requiredColumns))
	for field, name := range names {
		cols[field] = df.Col(name)
	}

	ids, idNaN := cols["student_id"].Records(), cols["student_id"].IsNaN()
	depts := cols["department"].Records()
	codes := cols["subject_code"].Records()
	subjects := cols["subject_name"].Records()
	teachers, teacherNaN := cols["teacher"].Records(), cols["teacher"].IsNaN()
	grades, gradeNaN := cols["grade"].Records(), cols["grade"].IsNaN()

	for i := 0; i < df.Nrow(); i++ {
		line := lines[i]

		if idNaN[i] || strings.TrimSpace(ids[i]) == "" {
			result.Rejected = append(result.Rejected, RejectedRow{Line: line, Reason: "empty student id"})
			continue
		}
		if gradeNaN[i] {
			result.Rejected = append(result.Rejected, RejectedRow{Line: line, Reason: "empty grade"})
			continue
		}
		grade, err := parseGrade(grades[i])
		if err != nil {
			result.Rejected = append(result.Rejected, RejectedRow{Line: line, Reason: err.Error()})
			continue
		}

		teacher := ""
		if !teacherNaN[i] {
			teacher = strings.TrimSpace(teachers[i])
		}

		result.Records = append(result.Records, model.GradeRecord{
			StudentID:   model.CanonicalID(ids[i]),
			Department:  cellText(cols["department"], depts, i),
			SubjectCode: cellText(cols["subject_code"], codes, i),
			SubjectName: cellText(cols["subject_name"], subjects, i),
			Teacher:     teacher,
			HasTeacher:  teacher != "",
			Grade:       grade,
		})
	}
	sort.SliceStable(result.Rejected, func(a, b int) bool {
		return result.Rejected[a].Line < result.Rejected[b].Line
	})

	if len(result.Records) == 0 {
		return result, ErrNoValidRows
	}
	return result, nil
}

// normalizeHeader membuang spasi dan BOM UTF-8 dari ekspor spreadsheet.
func normalizeHeader(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "\ufeff"))
}

func resolveColumn(names []string, aliases []string) (string, bool) {
	for _, alias := range aliases {
		for _, n := range names {
			if n == alias {
				return n, true
			}
		}
	}
	return "", false
}

func cellText(s series.Series, records []string, i int) string {
	if s.Elem(i).IsNA() {
		return ""
	}
	return strings.TrimSpace(records[i])
}

func parseGrade(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid grade %q", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 20 {
		return 0, fmt.Errorf("grade %v out of range [0,20]", v)
	}
	return v, nil
}
