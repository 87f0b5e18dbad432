package dataset

import (
	"math"
	"sort"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
)

// ColumnStats summarises one numeric column.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"q50"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Describe returns summary statistics for every numeric column, in schema
// order. Std is the sample standard deviation; quantiles interpolate linearly.
func (a *Accessor) Describe() []ColumnStats {
	var out []ColumnStats
	for _, c := range dal.Columns() {
		if !c.Numeric() {
			continue
		}
		vals, _ := a.numbers(c)
		out = append(out, describe(c.String(), vals))
	}
	return out
}

func describe(name string, vals []float64) ColumnStats {
	st := ColumnStats{Column: name, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		st.Mean, st.Std, st.Min, st.Q25, st.Median, st.Q75, st.Max = nan, nan, nan, nan, nan, nan, nan
		return st
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	st.Mean = sum / float64(len(sorted))

	if len(sorted) > 1 {
		var ss float64
		for _, v := range sorted {
			d := v - st.Mean
			ss += d * d
		}
		st.Std = math.Sqrt(ss / float64(len(sorted)-1))
	} else {
		st.Std = math.NaN()
	}

	st.Min = sorted[0]
	st.Max = sorted[len(sorted)-1]
	st.Q25 = quantile(sorted, 0.25)
	st.Median = quantile(sorted, 0.50)
	st.Q75 = quantile(sorted, 0.75)
	return st
}

// quantile expects sorted input.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Bin is one equal-width histogram bucket, [Low, High) except the last,
// which includes High.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram splits the range of a numeric column into bins equal-width buckets.
func (a *Accessor) Histogram(col dal.Column, bins int) ([]Bin, error) {
	vals, err := a.numbers(col)
	if err != nil {
		return nil, err
	}
	if bins <= 0 || len(vals) == 0 {
		return []Bin{}, nil
	}

	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		// a single distinct value gets one unit-wide bucket around it
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	out[bins-1].High = hi

	for _, v := range vals {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out, nil
}
