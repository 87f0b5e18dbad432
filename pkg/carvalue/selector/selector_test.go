package selector

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dataset"
)

var years = YearRange{Min: 2000, Max: 2023}

func sampleListings() []dal.Listing {
	return []dal.Listing{
		{Brand: "Toyota", ModelName: "Corolla", ModelVariant: "GLi", Year: 2018, CarType: "Sedan", FuelType: "Petrol", Transmission: "Manual", Owner: "First", Kilometers: 40000, State: "CA", Accidental: "No", Price: 12000},
		{Brand: "Toyota", ModelName: "Corolla", ModelVariant: "XLi", Year: 2016, CarType: "Sedan", FuelType: "Petrol", Transmission: "Manual", Owner: "Second", Kilometers: 65000, State: "TX", Accidental: "No", Price: 9000},
		{Brand: "Toyota", ModelName: "Fortuner", ModelVariant: "4x2", Year: 2020, CarType: "SUV", FuelType: "Diesel", Transmission: "Automatic", Owner: "First", Kilometers: 30000, State: "CA", Accidental: "No", Price: 32000},
		{Brand: "Honda", ModelName: "City", ModelVariant: "VX", Year: 2019, CarType: "Sedan", FuelType: "Petrol", Transmission: "Automatic", Owner: "First", Kilometers: 25000, State: "NY", Accidental: "No", Price: 14000},
		{Brand: "Honda", ModelName: "City", ModelVariant: "ZX", Year: 2021, CarType: "Sedan", FuelType: "Petrol", Transmission: "Automatic", Owner: "First", Kilometers: 12000, State: "CA", Accidental: "Yes", Price: 16500},
		// the same model name under another brand must not leak variants
		{Brand: "Suzuki", ModelName: "City", ModelVariant: "Base", Year: 2012, CarType: "Hatchback", FuelType: "Petrol", Transmission: "Manual", Owner: "Third", Kilometers: 99000, State: "TX", Accidental: "No", Price: 3000},
	}
}

func newSelector() *Selector {
	return New(dataset.New(sampleListings()), years)
}

// expected values computed straight from the rows
func modelsOf(listings []dal.Listing, brand string) map[string]bool {
	out := map[string]bool{}
	for _, l := range listings {
		if l.Brand == brand {
			out[l.ModelName] = true
		}
	}
	return out
}

func variantsOf(listings []dal.Listing, brand, model string) map[string]bool {
	out := map[string]bool{}
	for _, l := range listings {
		if l.Brand == brand && l.ModelName == model {
			out[l.ModelVariant] = true
		}
	}
	return out
}

func asSet(values []string) map[string]bool {
	out := map[string]bool{}
	for _, v := range values {
		out[v] = true
	}
	return out
}

func TestModelNamesExactlyMatchBrand(t *testing.T) {
	s := newSelector()
	listings := sampleListings()
	brands, err := s.Brands()
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range brands {
		got, err := s.ModelNames(b)
		if err != nil {
			t.Fatalf("ModelNames(%q): %v", b, err)
		}
		if !reflect.DeepEqual(asSet(got), modelsOf(listings, b)) {
			t.Errorf("ModelNames(%q) = %v, want %v", b, got, modelsOf(listings, b))
		}
	}
}

func TestModelVariantsExactlyMatchPair(t *testing.T) {
	s := newSelector()
	listings := sampleListings()
	for _, l := range listings {
		got, err := s.ModelVariants(l.Brand, l.ModelName)
		if err != nil {
			t.Fatalf("ModelVariants(%q, %q): %v", l.Brand, l.ModelName, err)
		}
		want := variantsOf(listings, l.Brand, l.ModelName)
		if !reflect.DeepEqual(asSet(got), want) {
			t.Errorf("ModelVariants(%q, %q) = %v, want %v", l.Brand, l.ModelName, got, want)
		}
	}
}

func TestHistoricalListingsAreValidQueries(t *testing.T) {
	s := newSelector()
	for _, l := range sampleListings() {
		if err := s.Validate(l.Query()); err != nil {
			t.Errorf("listing %+v rejected: %v", l, err)
		}
	}
}

func TestCascadeScenario(t *testing.T) {
	s := newSelector()

	models, err := s.ModelNames("Toyota")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(models, []string{"Corolla", "Fortuner"}) {
		t.Errorf("models: got %v", models)
	}

	variants, err := s.ModelVariants("Toyota", "Corolla")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(variants, []string{"GLi", "XLi"}) {
		t.Errorf("variants: got %v", variants)
	}
}

func TestInconsistentSelection(t *testing.T) {
	s := newSelector()
	var ise *InconsistentSelectionError

	_, err := s.ModelNames("Tesla")
	if !errors.As(err, &ise) {
		t.Fatalf("ModelNames: expected InconsistentSelectionError, got %v", err)
	}
	if ise.Field != dal.ModelName {
		t.Errorf("field: got %v", ise.Field)
	}

	_, err = s.ModelVariants("Toyota", "City")
	if !errors.As(err, &ise) {
		t.Fatalf("ModelVariants: expected InconsistentSelectionError, got %v", err)
	}

	empty := New(dataset.New(nil), years)
	if _, err := empty.ModelNames("Toyota"); !errors.As(err, &ise) {
		t.Errorf("empty dataset: expected InconsistentSelectionError, got %v", err)
	}
	if _, err := empty.Form("", ""); !errors.As(err, &ise) {
		t.Errorf("empty dataset form: expected InconsistentSelectionError, got %v", err)
	}
}

func TestValidateRanges(t *testing.T) {
	s := newSelector()
	base := sampleListings()[0].Query()

	tests := []struct {
		name      string
		mutate    func(q *dal.CarQuery)
		wantRange bool
		field     dal.Column
	}{
		{name: "ZeroKilometers", mutate: func(q *dal.CarQuery) { q.Kilometers = 0 }},
		{name: "NegativeKilometers", mutate: func(q *dal.CarQuery) { q.Kilometers = -1 }, wantRange: true, field: dal.Kilometers},
		{name: "YearAtMin", mutate: func(q *dal.CarQuery) { q.Year = 2000 }},
		{name: "YearAtMax", mutate: func(q *dal.CarQuery) { q.Year = 2023 }},
		{name: "YearBelowMin", mutate: func(q *dal.CarQuery) { q.Year = 1999 }, wantRange: true, field: dal.Year},
		{name: "YearAboveMax", mutate: func(q *dal.CarQuery) { q.Year = 2024 }, wantRange: true, field: dal.Year},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := base
			tc.mutate(&q)
			err := s.Validate(q)
			var re *RangeError
			if !tc.wantRange {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if !errors.As(err, &re) {
				t.Fatalf("expected RangeError, got %v", err)
			}
			if re.Field != tc.field {
				t.Errorf("field: got %v, want %v", re.Field, tc.field)
			}
		})
	}
}

func TestValidateRejectsMismatchedTriple(t *testing.T) {
	s := newSelector()
	q := sampleListings()[0].Query()
	q.ModelVariant = "ZX"

	var ise *InconsistentSelectionError
	if err := s.Validate(q); !errors.As(err, &ise) {
		t.Fatalf("expected InconsistentSelectionError, got %v", err)
	}
	if ise.Field != dal.ModelVariant {
		t.Errorf("field: got %v", ise.Field)
	}

	q = sampleListings()[0].Query()
	q.ModelName = "City"
	if err := s.Validate(q); !errors.As(err, &ise) {
		t.Fatalf("expected InconsistentSelectionError, got %v", err)
	}
}

func TestForm(t *testing.T) {
	s := newSelector()

	f, err := s.Form("", "")
	if err != nil {
		t.Fatal(err)
	}
	if f.Brand != "Toyota" || f.ModelName != "Corolla" {
		t.Errorf("defaults: got %q/%q", f.Brand, f.ModelName)
	}
	if !reflect.DeepEqual(f.ModelVariants, []string{"GLi", "XLi"}) {
		t.Errorf("variants: got %v", f.ModelVariants)
	}
	if got := f.Options["Accidental"]; !reflect.DeepEqual(got, []string{"No", "Yes"}) {
		t.Errorf("accidental options: got %v", got)
	}
	if len(f.Options) != len(Independent) {
		t.Errorf("got %d independent option lists", len(f.Options))
	}
	if f.DefaultYear != DefaultYear || f.Years != years {
		t.Errorf("year settings: %+v", f)
	}

	f, err = s.Form("Honda", "")
	if err != nil {
		t.Fatal(err)
	}
	if f.ModelName != "City" || !reflect.DeepEqual(f.ModelVariants, []string{"VX", "ZX"}) {
		t.Errorf("honda form: %+v", f)
	}

	if _, err := s.Form("Honda", "Corolla"); err == nil {
		t.Error("expected error for a model outside the brand")
	}
}

func TestRangeErrorMessage(t *testing.T) {
	err := &RangeError{Field: dal.Year, Value: 1999, Min: 2000, Max: 2023, HasMax: true}
	if got, want := err.Error(), "Year must be between 2000 and 2023, got 1999"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	err = &RangeError{Field: dal.Kilometers, Value: -5}
	if got, want := err.Error(), "Kilometers must be at least 0, got -5"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
