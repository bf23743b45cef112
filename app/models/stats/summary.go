package stats

// Histogram berisi jumlah nilai per bucket dan batas-batas bucket (len(Bins) == len(Counts)+1).
type Histogram struct {
	Counts []int     `json:"counts"`
	Bins   []float64 `json:"bins"`
}

// SummaryStats: statistik global satu dataset.
type SummaryStats struct {
	TotalStudents int       `json:"totalStudents"`
	TotalGrades   int       `json:"totalGrades"`
	Mean          float64   `json:"mean"`
	Median        float64   `json:"median"`
	StdDev        Float     `json:"stdDev"`
	PassRate      float64   `json:"passRate"`
	Histogram     Histogram `json:"histogram"`
}

// GroupedStats: satu baris per kombinasi departemen, kode UE dan nama mata kuliah.
type GroupedStats struct {
	Department    string  `json:"department"`
	SubjectCode   string  `json:"subjectCode"`
	SubjectName   string  `json:"subjectName"`
	Mean          float64 `json:"mean"`
	Median        float64 `json:"median"`
	StdDev        Float   `json:"stdDev"`
	TotalStudents int     `json:"totalStudents"`
	PassRate      float64 `json:"passRate"`
	Count         int     `json:"count"`
}

type SubjectStats struct {
	Subject       string    `json:"subject"`
	Mean          float64   `json:"mean"`
	TotalStudents int       `json:"totalStudents"`
	TotalGrades   int       `json:"totalGrades"`
	PassRate      float64   `json:"passRate"`
	BoxplotData   []float64 `json:"boxplotData"`
	Departments   []string  `json:"departments"`
	SubjectCodes  []string  `json:"subjectCodes"`
	Median        float64   `json:"median"`
	StdDev        Float     `json:"stdDev"`
	Histogram     Histogram `json:"histogram"`
}

// TeacherSubjectStats: rata-rata per mata kuliah untuk guru yang dicari.
type TeacherSubjectStats struct {
	Subject string  `json:"subject"`
	Mean    float64 `json:"mean"`
	Count   int     `json:"count"`
}

// SubjectRanking: posisi mahasiswa pada satu mata kuliah.
// Rank menghitung semua nilai >= nilai mahasiswa (inklusif), Total adalah jumlah record mata kuliah.
type SubjectRanking struct {
	Subject string  `json:"subject"`
	Grade   float64 `json:"grade"`
	Rank    int     `json:"rank"`
	Total   int     `json:"total"`
	Label   string  `json:"label"`
}

type StudentReport struct {
	StudentID    string                        `json:"studentId"`
	Mean         float64                       `json:"mean"`
	PassedGrades int                           `json:"passedGrades"`
	Bulletin     map[string]map[string]float64 `json:"bulletin"`
	Rankings     []SubjectRanking              `json:"rankings"`
}

// RankingEntry: satu entri top/flop, urutan slice adalah urutan ranking.
type RankingEntry struct {
	Key  string  `json:"key"`
	Mean float64 `json:"mean"`
}
