// Package selector keeps the prediction form consistent with the dataset.
//
// Brand, Model Name and Model Variant cascade: each level only offers values
// that co-occur in at least one listing with the choices made above it, so a
// query built from the offered options always names a combination the model
// saw during training. Options keep dataset first-appearance order at every
// level.
package selector

import (
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dataset"
)

// Defaults used to prefill the numeric inputs of a fresh form.
const (
	DefaultYear       = 2020
	DefaultKilometers = 10000
)

// YearRange bounds the admissible model year, both ends inclusive.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Independent lists the categorical fields whose options are not filtered by
// any other selection.
var Independent = []dal.Column{
	dal.CarType, dal.FuelType, dal.Transmission, dal.Owner, dal.State, dal.Accidental,
}

// Selector derives form options from a dataset.
type Selector struct {
	data  *dataset.Accessor
	years YearRange
}

// New returns a Selector over data accepting model years within years.
func New(data *dataset.Accessor, years YearRange) *Selector {
	return &Selector{data: data, years: years}
}

// Brands returns every brand in the dataset.
func (s *Selector) Brands() ([]string, error) {
	return s.data.UniqueValues(dal.Brand)
}

// ModelNames returns the model names listed under brand.
func (s *Selector) ModelNames(brand string) ([]string, error) {
	return s.dependent(dal.ModelName, map[dal.Column]string{dal.Brand: brand})
}

// ModelVariants returns the variants listed for brand and modelName together.
func (s *Selector) ModelVariants(brand, modelName string) ([]string, error) {
	return s.dependent(dal.ModelVariant, map[dal.Column]string{
		dal.Brand:     brand,
		dal.ModelName: modelName,
	})
}

func (s *Selector) dependent(col dal.Column, filters map[dal.Column]string) ([]string, error) {
	opts, err := s.data.FilteredUniqueValues(col, filters)
	if err != nil {
		return nil, err
	}
	if len(opts) == 0 {
		return nil, &InconsistentSelectionError{Field: col, Filters: filters}
	}
	return opts, nil
}

// Options returns the options of an independent field.
func (s *Selector) Options(col dal.Column) ([]string, error) {
	return s.data.UniqueValues(col)
}

// Validate checks the numeric ranges of q and that its brand, model name and
// variant appear together in the dataset.
func (s *Selector) Validate(q dal.CarQuery) error {
	if q.Year < s.years.Min || q.Year > s.years.Max {
		return &RangeError{Field: dal.Year, Value: q.Year, Min: s.years.Min, Max: s.years.Max, HasMax: true}
	}
	if q.Kilometers < 0 {
		return &RangeError{Field: dal.Kilometers, Value: q.Kilometers, Min: 0}
	}

	models, err := s.ModelNames(q.Brand)
	if err != nil {
		return err
	}
	if !contains(models, q.ModelName) {
		return &InconsistentSelectionError{
			Field:   dal.ModelName,
			Filters: map[dal.Column]string{dal.Brand: q.Brand, dal.ModelName: q.ModelName},
		}
	}
	variants, err := s.ModelVariants(q.Brand, q.ModelName)
	if err != nil {
		return err
	}
	if !contains(variants, q.ModelVariant) {
		return &InconsistentSelectionError{
			Field: dal.ModelVariant,
			Filters: map[dal.Column]string{
				dal.Brand: q.Brand, dal.ModelName: q.ModelName, dal.ModelVariant: q.ModelVariant,
			},
		}
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
