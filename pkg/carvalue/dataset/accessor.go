// Package dataset loads the listing collection once and answers read-only
// column queries over it.
package dataset

import (
	"sort"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
)

// Accessor holds the immutable listing collection. It has no mutation path
// after Load, so any number of goroutines may query it concurrently.
type Accessor struct {
	listings []dal.Listing
}

// Load reads src once. Any failure is reported as a *DataSourceError.
func Load(src Source) (*Accessor, error) {
	listings, err := src.Read()
	if err != nil {
		return nil, &DataSourceError{Source: src.Name(), Err: err}
	}
	return New(listings), nil
}

// New wraps an in-memory collection. The slice is copied.
func New(listings []dal.Listing) *Accessor {
	cp := make([]dal.Listing, len(listings))
	copy(cp, listings)
	return &Accessor{listings: cp}
}

// Len returns the number of listings.
func (a *Accessor) Len() int { return len(a.listings) }

// Listings returns a copy of the collection.
func (a *Accessor) Listings() []dal.Listing {
	cp := make([]dal.Listing, len(a.listings))
	copy(cp, a.listings)
	return cp
}

// Head returns up to n leading listings.
func (a *Accessor) Head(n int) []dal.Listing {
	if n > len(a.listings) {
		n = len(a.listings)
	}
	if n < 0 {
		n = 0
	}
	cp := make([]dal.Listing, n)
	copy(cp, a.listings[:n])
	return cp
}

// UniqueValues returns the distinct values of col in order of first appearance.
func (a *Accessor) UniqueValues(col dal.Column) ([]string, error) {
	return a.FilteredUniqueValues(col, nil)
}

// FilteredUniqueValues returns the distinct values of col among listings
// matching every equality filter, in order of first appearance. No match
// yields an empty slice and no error.
func (a *Accessor) FilteredUniqueValues(col dal.Column, filters map[dal.Column]string) ([]string, error) {
	if err := dal.CheckColumn(col); err != nil {
		return nil, err
	}
	for fc := range filters {
		if err := dal.CheckColumn(fc); err != nil {
			return nil, err
		}
	}

	values := []string{}
	seen := make(map[string]struct{})
	for i := range a.listings {
		l := &a.listings[i]
		if !matches(l, filters) {
			continue
		}
		v := l.Value(col)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values, nil
}

func matches(l *dal.Listing, filters map[dal.Column]string) bool {
	for c, want := range filters {
		if l.Value(c) != want {
			return false
		}
	}
	return true
}

// GroupMean is the mean of a numeric column for one group key.
type GroupMean struct {
	Key  string  `json:"key"`
	Mean float64 `json:"mean"`
}

// GroupedMean averages value per distinct group key, sorted by mean
// descending. Equal means are ordered by key.
func (a *Accessor) GroupedMean(group, value dal.Column) ([]GroupMean, error) {
	if err := dal.CheckColumn(group); err != nil {
		return nil, err
	}
	if err := dal.CheckColumn(value); err != nil {
		return nil, err
	}
	if !value.Numeric() {
		return nil, &dal.UnknownColumnError{Name: value.String(), Reason: "not a numeric column"}
	}

	type acc struct {
		sum float64
		n   int
	}
	sums := make(map[string]*acc)
	for i := range a.listings {
		l := &a.listings[i]
		v, _ := l.Number(value)
		k := l.Value(group)
		s, ok := sums[k]
		if !ok {
			s = &acc{}
			sums[k] = s
		}
		s.sum += v
		s.n++
	}

	out := make([]GroupMean, 0, len(sums))
	for k, s := range sums {
		out = append(out, GroupMean{Key: k, Mean: s.sum / float64(s.n)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// ValueCount is the number of listings carrying one value.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ValueCounts counts listings per distinct value of col, most frequent first.
// Ties keep first-appearance order.
func (a *Accessor) ValueCounts(col dal.Column) ([]ValueCount, error) {
	if err := dal.CheckColumn(col); err != nil {
		return nil, err
	}
	pos := make(map[string]int)
	var out []ValueCount
	for i := range a.listings {
		v := a.listings[i].Value(col)
		if p, ok := pos[v]; ok {
			out[p].Count++
			continue
		}
		pos[v] = len(out)
		out = append(out, ValueCount{Value: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

func (a *Accessor) numbers(col dal.Column) ([]float64, error) {
	if err := dal.CheckColumn(col); err != nil {
		return nil, err
	}
	if !col.Numeric() {
		return nil, &dal.UnknownColumnError{Name: col.String(), Reason: "not a numeric column"}
	}
	out := make([]float64, len(a.listings))
	for i := range a.listings {
		out[i], _ = a.listings[i].Number(col)
	}
	return out, nil
}
