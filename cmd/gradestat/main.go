// Command gradestat prints grade statistics for a CSV file without the HTTP service.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"grade-analytics/app/analysis"
	"grade-analytics/app/loader"
	model "grade-analytics/app/models/stats"
)

func main() {
	var (
		file  string
		mode  string
		query string
	)
	flag.StringVar(&file, "file", "", "path to the grades CSV")
	flag.StringVar(&mode, "mode", "global", "global|departments|subject|teacher|student|topflop")
	flag.StringVar(&query, "q", "", "subject name, teacher, student id or top/flop category")
	flag.Parse()

	if file == "" {
		color.Red("missing -file <grades.csv>")
		os.Exit(1)
	}

	result, err := loader.LoadFile(file)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	if len(result.Rejected) > 0 {
		color.Yellow("%d row(s) rejected", len(result.Rejected))
		for _, r := range result.Rejected {
			fmt.Fprintf(os.Stderr, "  line %d: %s\n", r.Line, r.Reason)
		}
	}

	if err := run(os.Stdout, result.Records, mode, query); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func run(w io.Writer, records []model.GradeRecord, mode, query string) error {
	switch mode {
	case "global":
		s, err := analysis.GlobalStats(records)
		if err != nil {
			return err
		}
		printSummary(w, s)
	case "departments":
		printGroups(w, analysis.StatsByGroup(records))
	case "subject":
		s, err := analysis.StatsBySubject(records, query)
		if err != nil {
			return err
		}
		printSubject(w, s)
	case "teacher":
		rows, err := analysis.StatsByTeacher(records, query)
		if err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Subject", "Mean", "Grades"})
		for _, r := range rows {
			table.Append([]string{r.Subject, num(r.Mean), strconv.Itoa(r.Count)})
		}
		table.Render()
	case "student":
		r, err := analysis.StudentReport(records, query)
		if err != nil {
			return err
		}
		printStudent(w, r)
	case "topflop":
		category := query
		if category == "" {
			category = analysis.CategorySubject
		}
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Rank", "Key", "Mean"})
		for i, e := range analysis.TopFlop(records, category) {
			table.Append([]string{strconv.Itoa(i + 1), e.Key, strconv.FormatFloat(e.Mean, 'f', -1, 64)})
		}
		table.Render()
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	return nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func stdDev(v model.Float) string {
	if v.IsNaN() {
		return "-"
	}
	return num(float64(v))
}

func printSummary(w io.Writer, s model.SummaryStats) {
	color.New(color.FgCyan).Fprintln(w, "=== Global statistics ===")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"Students", strconv.Itoa(s.TotalStudents)},
		{"Grades", strconv.Itoa(s.TotalGrades)},
		{"Mean", num(s.Mean)},
		{"Median", num(s.Median)},
		{"Std dev", stdDev(s.StdDev)},
		{"Pass rate %", num(s.PassRate)},
	})
	table.Render()
	printHistogram(w, s.Histogram)
}

func printHistogram(w io.Writer, h model.Histogram) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Bucket", "Count"})
	for i, c := range h.Counts {
		table.Append([]string{fmt.Sprintf("[%g, %g)", h.Bins[i], h.Bins[i+1]), strconv.Itoa(c)})
	}
	table.Render()
}

func printGroups(w io.Writer, rows []model.GroupedStats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Department", "Code", "Subject", "Mean", "Median", "Std dev", "Students", "Pass %", "Grades"})
	for _, r := range rows {
		table.Append([]string{
			r.Department, r.SubjectCode, r.SubjectName,
			num(r.Mean), num(r.Median), stdDev(r.StdDev),
			strconv.Itoa(r.TotalStudents), num(r.PassRate), strconv.Itoa(r.Count),
		})
	}
	table.Render()
}

func printSubject(w io.Writer, s model.SubjectStats) {
	color.New(color.FgCyan).Fprintf(w, "=== %s ===\n", s.Subject)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"Departments", fmt.Sprint(s.Departments)},
		{"Codes", fmt.Sprint(s.SubjectCodes)},
		{"Students", strconv.Itoa(s.TotalStudents)},
		{"Grades", strconv.Itoa(s.TotalGrades)},
		{"Mean", num(s.Mean)},
		{"Median", num(s.Median)},
		{"Std dev", stdDev(s.StdDev)},
		{"Pass rate %", num(s.PassRate)},
	})
	table.Render()
	printHistogram(w, s.Histogram)
}

func printStudent(w io.Writer, r model.StudentReport) {
	color.New(color.FgCyan).Fprintf(w, "=== Student %s: mean %s, %d passed ===\n", r.StudentID, num(r.Mean), r.PassedGrades)

	subjects := make([]string, 0, len(r.Bulletin))
	for s := range r.Bulletin {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Subject", "Teacher", "Grade"})
	for _, s := range subjects {
		teachers := make([]string, 0, len(r.Bulletin[s]))
		for t := range r.Bulletin[s] {
			teachers = append(teachers, t)
		}
		sort.Strings(teachers)
		for _, t := range teachers {
			table.Append([]string{s, t, num(r.Bulletin[s][t])})
		}
	}
	table.Render()

	ranks := tablewriter.NewWriter(w)
	ranks.SetHeader([]string{"Subject", "Grade", "Rank"})
	for _, rk := range r.Rankings {
		ranks.Append([]string{rk.Subject, num(rk.Grade), rk.Label})
	}
	ranks.Render()
}
