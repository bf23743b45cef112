package analysis

import model "grade-analytics/app/models/stats"

// accumulator mengumpulkan nilai satu grup. Semua nilai disimpan karena median butuh seluruh data.
type accumulator struct {
	values   []float64
	students map[string]struct{}
}

func (a *accumulator) add(r model.GradeRecord) {
	if a.students == nil {
		a.students = make(map[string]struct{})
	}
	a.values = append(a.values, r.Grade)
	a.students[r.StudentID] = struct{}{}
}

// grouping keeps accumulators keyed by K in first-seen order.
type grouping[K comparable] struct {
	order []K
	accs  map[K]*accumulator
}

func newGrouping[K comparable]() *grouping[K] {
	return &grouping[K]{accs: make(map[K]*accumulator)}
}

func (g *grouping[K]) add(key K, r model.GradeRecord) {
	acc, ok := g.accs[key]
	if !ok {
		acc = &accumulator{}
		g.accs[key] = acc
		g.order = append(g.order, key)
	}
	acc.add(r)
}

// each visits groups in first-seen order.
func (g *grouping[K]) each(fn func(key K, acc *accumulator)) {
	for _, k := range g.order {
		fn(k, g.accs[k])
	}
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
