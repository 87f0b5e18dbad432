// Package analysis builds the chart and table data of the Analysis view.
package analysis

import (
	"math"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dataset"
)

// Sizes of the head table and the price histogram.
const (
	HeadRows  = 5
	PriceBins = 30
)

// Share is a value count together with its percentage of all listings.
type Share struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Overview is everything the Analysis view displays.
type Overview struct {
	Rows              int                   `json:"rows"`
	Head              []dal.Listing         `json:"head"`
	Summary           []dataset.ColumnStats `json:"summary"`
	PriceHistogram    []dataset.Bin         `json:"price_histogram"`
	FuelTypeShare     []Share               `json:"fuel_type_share"`
	AvgPriceByState   []dataset.GroupMean   `json:"avg_price_by_state"`
	CarTypeCounts     []dataset.ValueCount  `json:"car_type_counts"`
	TransmissionShare []Share               `json:"transmission_share"`
}

// Build computes the overview. It only reads from acc.
func Build(acc *dataset.Accessor) (*Overview, error) {
	ov := &Overview{
		Rows:    acc.Len(),
		Head:    acc.Head(HeadRows),
		Summary: summary(acc),
	}

	var err error
	if ov.PriceHistogram, err = acc.Histogram(dal.Price, PriceBins); err != nil {
		return nil, err
	}
	if ov.FuelTypeShare, err = shares(acc, dal.FuelType); err != nil {
		return nil, err
	}
	if ov.AvgPriceByState, err = acc.GroupedMean(dal.State, dal.Price); err != nil {
		return nil, err
	}
	if ov.CarTypeCounts, err = acc.ValueCounts(dal.CarType); err != nil {
		return nil, err
	}
	if ov.TransmissionShare, err = shares(acc, dal.Transmission); err != nil {
		return nil, err
	}
	return ov, nil
}

// summary drops columns without values and reports a lone value's deviation
// as 0, keeping NaN out of the JSON encoding.
func summary(acc *dataset.Accessor) []dataset.ColumnStats {
	out := []dataset.ColumnStats{}
	for _, st := range acc.Describe() {
		if st.Count == 0 {
			continue
		}
		if math.IsNaN(st.Std) {
			st.Std = 0
		}
		out = append(out, st)
	}
	return out
}

func shares(acc *dataset.Accessor, col dal.Column) ([]Share, error) {
	counts, err := acc.ValueCounts(col)
	if err != nil {
		return nil, err
	}
	total := acc.Len()
	out := make([]Share, 0, len(counts))
	for _, c := range counts {
		out = append(out, Share{
			Value:   c.Value,
			Count:   c.Count,
			Percent: 100 * float64(c.Count) / float64(total),
		})
	}
	return out, nil
}
