package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	gonumstat "gonum.org/v1/gonum/stat"

	model "grade-analytics/app/models/stats"
)

const (
	PassMark         = 10.0
	MinGrade         = 0.0
	MaxGrade         = 20.0
	HistogramBuckets = 20
)

// round membulatkan ke n desimal dengan aturan half-to-even (sama seperti numpy).
func round(v float64, n int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(n))
	return math.RoundToEven(v*p) / p
}

// meanStdDev returns the mean and the sample standard deviation (n-1).
// A single value yields a NaN deviation.
func meanStdDev(values []float64) (float64, float64) {
	return gonumstat.MeanStdDev(values, nil)
}

func median(values []float64) float64 {
	m, err := stats.Median(stats.Float64Data(values))
	if err != nil {
		return math.NaN()
	}
	return m
}

// passRate: persentase nilai >= PassMark, belum dibulatkan.
func passRate(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	passed := 0
	for _, v := range values {
		if v >= PassMark {
			passed++
		}
	}
	return float64(passed) / float64(len(values)) * 100
}

// histogram bins values into HistogramBuckets equal buckets over [MinGrade, MaxGrade].
// The last bucket is closed on the right; values outside the range are ignored.
func histogram(values []float64) model.Histogram {
	bins := floats.Span(make([]float64, HistogramBuckets+1), MinGrade, MaxGrade)

	dividers := make([]float64, len(bins))
	copy(dividers, bins)
	dividers[len(dividers)-1] = math.Nextafter(MaxGrade, math.Inf(1))

	inRange := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= MinGrade && v <= MaxGrade {
			inRange = append(inRange, v)
		}
	}
	sort.Float64s(inRange)

	counts := gonumstat.Histogram(nil, dividers, inRange, nil)
	out := model.Histogram{Counts: make([]int, len(counts)), Bins: bins}
	for i, c := range counts {
		out.Counts[i] = int(c)
	}
	return out
}
