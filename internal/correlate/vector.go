package correlate

import (
	"fmt"
	"math"
	"sort"
)

// Entry is one attribute's coefficient against the target.
type Entry struct {
	Attribute string
	R         float64
}

// Defined reports whether the coefficient could be computed.
func (e Entry) Defined() bool { return !math.IsNaN(e.R) }

// Vector lists coefficients against the target ordered by descending signed
// value; undefined entries come last in matrix order.
type Vector []Entry

func buildVector(m *Matrix, target string) Vector {
	t := m.Index(target)
	v := make(Vector, 0, m.Size())
	for j, name := range m.Columns {
		if j == t {
			continue
		}
		v = append(v, Entry{Attribute: name, R: m.AtIndex(t, j)})
	}
	sort.SliceStable(v, func(i, j int) bool {
		di, dj := v[i].Defined(), v[j].Defined()
		if di != dj {
			return di
		}
		return di && v[i].R > v[j].R
	})
	return v
}

// Get returns the coefficient for attribute.
func (v Vector) Get(attribute string) (float64, bool) {
	for _, e := range v {
		if e.Attribute == attribute {
			return e.R, true
		}
	}
	return math.NaN(), false
}

// Names lists the attributes in vector order.
func (v Vector) Names() []string {
	out := make([]string, len(v))
	for i, e := range v {
		out[i] = e.Attribute
	}
	return out
}

// rankTopK orders the vector by descending |r| (stable, undefined last) and
// keeps the first k attribute names.
func rankTopK(v Vector, k int, dropUndefined bool) []string {
	ranked := make(Vector, 0, len(v))
	for _, e := range v {
		if dropUndefined && !e.Defined() {
			continue
		}
		ranked = append(ranked, e)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		di, dj := ranked[i].Defined(), ranked[j].Defined()
		if di != dj {
			return di
		}
		return di && math.Abs(ranked[i].R) > math.Abs(ranked[j].R)
	})
	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked.Names()
}

// Relation names an attribute together with its coefficient.
type Relation struct {
	Attribute string
	R         float64
}

// Coefficient formats R to three decimals for display.
func (r Relation) Coefficient() string { return fmt.Sprintf("%.3f", r.R) }

func (r Relation) String() string { return fmt.Sprintf("%s (r=%s)", r.Attribute, r.Coefficient()) }

// strongest returns the entries with the maximum and minimum signed
// coefficient, first occurrence winning ties. ok is false when no entry is defined.
func strongest(v Vector) (pos, neg Relation, ok bool) {
	for _, e := range v {
		if !e.Defined() {
			continue
		}
		if !ok {
			pos, neg, ok = Relation(e), Relation(e), true
			continue
		}
		if e.R > pos.R {
			pos = Relation(e)
		}
		if e.R < neg.R {
			neg = Relation(e)
		}
	}
	return pos, neg, ok
}
