// Package analysis menghitung statistik deskriptif atas record nilai.
// Semua fungsi murni: tidak ada state yang disimpan di antara pemanggilan.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	model "grade-analytics/app/models/stats"
)

const TopFlopLimit = 10

func gradesOf(records []model.GradeRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Grade
	}
	return out
}

func countStudents(records []model.GradeRecord) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.StudentID] = struct{}{}
	}
	return len(seen)
}

// GlobalStats summarises the whole dataset.
func GlobalStats(records []model.GradeRecord) (model.SummaryStats, error) {
	if len(records) == 0 {
		return model.SummaryStats{}, ErrEmptyDataset
	}

	grades := gradesOf(records)
	mean, std := meanStdDev(grades)

	return model.SummaryStats{
		TotalStudents: countStudents(records),
		TotalGrades:   len(records),
		Mean:          round(mean, 2),
		Median:        median(grades),
		StdDev:        model.Float(round(std, 2)),
		PassRate:      round(passRate(grades), 2),
		Histogram:     histogram(grades),
	}, nil
}

type groupKey struct {
	department  string
	subjectCode string
	subjectName string
}

// StatsByGroup computes one row per (department, subject code, subject name),
// every metric rounded to a whole number, ordered by mean descending.
// Groups with equal means keep their first-seen order.
func StatsByGroup(records []model.GradeRecord) []model.GroupedStats {
	groups := newGrouping[groupKey]()
	for _, r := range records {
		groups.add(groupKey{r.Department, r.SubjectCode, r.SubjectName}, r)
	}

	result := make([]model.GroupedStats, 0, len(groups.order))
	groups.each(func(k groupKey, acc *accumulator) {
		mean, std := meanStdDev(acc.values)
		result = append(result, model.GroupedStats{
			Department:    k.department,
			SubjectCode:   k.subjectCode,
			SubjectName:   k.subjectName,
			Mean:          round(mean, 0),
			Median:        round(median(acc.values), 0),
			StdDev:        model.Float(round(std, 0)),
			TotalStudents: len(acc.students),
			PassRate:      round(round(passRate(acc.values), 2), 0),
			Count:         len(acc.values),
		})
	})

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Mean > result[j].Mean
	})
	return result
}

// StatsBySubject filters on an exact, case-sensitive subject name.
func StatsBySubject(records []model.GradeRecord, subject string) (model.SubjectStats, error) {
	var (
		grades      []float64
		departments []string
		codes       []string
		matched     []model.GradeRecord
	)
	for _, r := range records {
		if r.SubjectName != subject {
			continue
		}
		matched = append(matched, r)
		grades = append(grades, r.Grade)
		departments = append(departments, r.Department)
		codes = append(codes, r.SubjectCode)
	}
	if len(matched) == 0 {
		return model.SubjectStats{}, fmt.Errorf("%w: %q", ErrSubjectNotFound, subject)
	}

	mean, std := meanStdDev(grades)
	return model.SubjectStats{
		Subject:       subject,
		Mean:          round(mean, 2),
		TotalStudents: countStudents(matched),
		TotalGrades:   len(matched),
		PassRate:      round(passRate(grades), 2),
		BoxplotData:   grades,
		Departments:   distinct(departments),
		SubjectCodes:  distinct(codes),
		Median:        median(grades),
		StdDev:        model.Float(round(std, 2)),
		Histogram:     histogram(grades),
	}, nil
}

// StatsByTeacher matches teacher names by case-insensitive substring.
// Records without a teacher never match.
func StatsByTeacher(records []model.GradeRecord, query string) ([]model.TeacherSubjectStats, error) {
	needle := strings.ToLower(query)

	bySubject := newGrouping[string]()
	for _, r := range records {
		if !r.HasTeacher || !strings.Contains(strings.ToLower(r.Teacher), needle) {
			continue
		}
		bySubject.add(r.SubjectName, r)
	}
	if len(bySubject.order) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrTeacherNotFound, query)
	}

	result := make([]model.TeacherSubjectStats, 0, len(bySubject.order))
	bySubject.each(func(subject string, acc *accumulator) {
		mean, _ := meanStdDev(acc.values)
		result = append(result, model.TeacherSubjectStats{
			Subject: subject,
			Mean:    round(mean, 2),
			Count:   len(acc.values),
		})
	})

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Mean > result[j].Mean
	})
	return result, nil
}

// StudentReport builds the bulletin and per-subject ranking of one student.
func StudentReport(records []model.GradeRecord, studentID string) (model.StudentReport, error) {
	id := model.CanonicalID(studentID)

	var own []model.GradeRecord
	for _, r := range records {
		if r.StudentID == id {
			own = append(own, r)
		}
	}
	if len(own) == 0 {
		return model.StudentReport{}, fmt.Errorf("%w: %q", ErrStudentNotFound, studentID)
	}

	grades := gradesOf(own)
	mean, _ := meanStdDev(grades)
	passed := 0
	for _, g := range grades {
		if g >= PassMark {
			passed++
		}
	}

	type pair struct{ subject, teacher string }
	pairs := newGrouping[pair]()
	subjects := newGrouping[string]()
	for _, r := range own {
		subjects.add(r.SubjectName, r)
		// record tanpa guru tidak masuk bulletin
		if r.HasTeacher {
			pairs.add(pair{r.SubjectName, r.Teacher}, r)
		}
	}

	bulletin := make(map[string]map[string]float64)
	pairs.each(func(p pair, acc *accumulator) {
		m, _ := meanStdDev(acc.values)
		if bulletin[p.subject] == nil {
			bulletin[p.subject] = make(map[string]float64)
		}
		bulletin[p.subject][p.teacher] = round(m, 2)
	})

	rankings := make([]model.SubjectRanking, 0, len(subjects.order))
	subjects.each(func(subject string, acc *accumulator) {
		studentMean, _ := meanStdDev(acc.values)
		rank, total := 0, 0
		for _, r := range records {
			if r.SubjectName != subject {
				continue
			}
			total++
			if r.Grade >= studentMean {
				rank++
			}
		}
		rankings = append(rankings, model.SubjectRanking{
			Subject: subject,
			Grade:   studentMean,
			Rank:    rank,
			Total:   total,
			Label:   fmt.Sprintf("%d/%d", rank, total),
		})
	})

	return model.StudentReport{
		StudentID:    id,
		Mean:         round(mean, 2),
		PassedGrades: passed,
		Bulletin:     bulletin,
		Rankings:     rankings,
	}, nil
}

// Category values accepted by TopFlop.
const (
	CategorySubject = "subject"
	CategoryTeacher = "teacher"
)

// TopFlop ranks subjects (category "subject" or "matiere") or teachers by mean
// grade and returns the best TopFlopLimit groups. Means are not rounded.
func TopFlop(records []model.GradeRecord, category string) []model.RankingEntry {
	bySubject := category == CategorySubject || category == "matiere"

	groups := newGrouping[string]()
	for _, r := range records {
		if bySubject {
			groups.add(r.SubjectName, r)
			continue
		}
		if r.HasTeacher {
			groups.add(r.Teacher, r)
		}
	}

	ranking := make([]model.RankingEntry, 0, len(groups.order))
	groups.each(func(key string, acc *accumulator) {
		m, _ := meanStdDev(acc.values)
		ranking = append(ranking, model.RankingEntry{Key: key, Mean: m})
	})

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Mean > ranking[j].Mean
	})
	if len(ranking) > TopFlopLimit {
		ranking = ranking[:TopFlopLimit]
	}
	return ranking
}
