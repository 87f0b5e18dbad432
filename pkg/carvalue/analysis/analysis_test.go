package analysis

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dataset"
)

func listing(brand, state, fuel, carType, transmission string, price float64) dal.Listing {
	return dal.Listing{
		Brand: brand, ModelName: "M", ModelVariant: "V", Year: 2019,
		CarType: carType, FuelType: fuel, Transmission: transmission,
		Owner: "First", Kilometers: 20000, State: state, Accidental: "No", Price: price,
	}
}

func sample() *dataset.Accessor {
	return dataset.New([]dal.Listing{
		listing("A", "CA", "Petrol", "Sedan", "Manual", 10000),
		listing("B", "CA", "Petrol", "SUV", "Automatic", 20000),
		listing("C", "TX", "Diesel", "Sedan", "Manual", 5000),
		listing("D", "TX", "Petrol", "Sedan", "Manual", 5000),
		listing("E", "NY", "Diesel", "Hatchback", "Manual", 8000),
		listing("F", "NY", "Petrol", "Sedan", "Automatic", 8000),
	})
}

func TestBuild(t *testing.T) {
	ov, err := Build(sample())
	if err != nil {
		t.Fatal(err)
	}

	if ov.Rows != 6 || len(ov.Head) != HeadRows || ov.Head[0].Brand != "A" {
		t.Errorf("rows/head: got %d rows, head %v", ov.Rows, ov.Head)
	}

	wantStates := []dataset.GroupMean{{Key: "CA", Mean: 15000}, {Key: "NY", Mean: 8000}, {Key: "TX", Mean: 5000}}
	if !reflect.DeepEqual(ov.AvgPriceByState, wantStates) {
		t.Errorf("avg price by state: got %v, want %v", ov.AvgPriceByState, wantStates)
	}

	if len(ov.FuelTypeShare) != 2 || ov.FuelTypeShare[0].Value != "Petrol" || ov.FuelTypeShare[0].Count != 4 {
		t.Fatalf("fuel share: got %v", ov.FuelTypeShare)
	}
	var total float64
	for _, s := range ov.FuelTypeShare {
		total += s.Percent
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("fuel shares sum to %v", total)
	}

	wantTypes := []dataset.ValueCount{{Value: "Sedan", Count: 4}, {Value: "SUV", Count: 1}, {Value: "Hatchback", Count: 1}}
	if !reflect.DeepEqual(ov.CarTypeCounts, wantTypes) {
		t.Errorf("car types: got %v, want %v", ov.CarTypeCounts, wantTypes)
	}

	if len(ov.TransmissionShare) != 2 || ov.TransmissionShare[0].Value != "Manual" {
		t.Errorf("transmission share: got %v", ov.TransmissionShare)
	}

	if len(ov.PriceHistogram) != PriceBins {
		t.Fatalf("histogram bins: got %d", len(ov.PriceHistogram))
	}
	n := 0
	for _, b := range ov.PriceHistogram {
		n += b.Count
	}
	if n != 6 {
		t.Errorf("histogram counts %d listings, want 6", n)
	}

	if len(ov.Summary) != 3 || ov.Summary[2].Column != "Price" || ov.Summary[2].Max != 20000 {
		t.Errorf("summary: got %v", ov.Summary)
	}
}

func TestBuildEmptyDatasetEncodes(t *testing.T) {
	ov, err := Build(dataset.New(nil))
	if err != nil {
		t.Fatal(err)
	}
	if ov.Rows != 0 || len(ov.Summary) != 0 {
		t.Errorf("unexpected overview %+v", ov)
	}
	if _, err := json.Marshal(ov); err != nil {
		t.Errorf("encode empty overview: %v", err)
	}
}

func TestBuildSingleListing(t *testing.T) {
	ov, err := Build(dataset.New([]dal.Listing{listing("A", "CA", "Petrol", "Sedan", "Manual", 9000)}))
	if err != nil {
		t.Fatal(err)
	}
	if ov.Summary[0].Std != 0 {
		t.Errorf("std of one value: got %v", ov.Summary[0].Std)
	}
	if _, err := json.Marshal(ov); err != nil {
		t.Errorf("encode: %v", err)
	}
}
