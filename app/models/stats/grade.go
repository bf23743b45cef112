package stats

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// GradeRecord adalah satu baris dataset nilai yang sudah divalidasi saat load.
type GradeRecord struct {
	StudentID   string  `json:"studentId"`
	Department  string  `json:"department"`
	SubjectCode string  `json:"subjectCode"`
	SubjectName string  `json:"subjectName"`
	Teacher     string  `json:"teacher"`
	HasTeacher  bool    `json:"hasTeacher"`
	Grade       float64 `json:"grade"`
}

// Float adalah float64 yang diserialisasi sebagai null bila NaN/Inf.
// encoding/json menolak NaN, sementara stddev grup berisi satu nilai memang NaN.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// IsNaN reports whether the value is undefined.
func (f Float) IsNaN() bool { return math.IsNaN(float64(f)) }

// CanonicalID normalises a student identifier to the text form used for
// comparisons. Numeric ids exported with a trailing ".0" collapse to their
// integer form so "1042" and "1042.0" name the same student.
func CanonicalID(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" {
		return id
	}
	if v, err := strconv.ParseFloat(id, 64); err == nil && strings.Contains(id, ".") {
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
	}
	return id
}
