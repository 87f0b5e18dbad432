package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dataset"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/selector"
)

const (
	fixtureCSV   = "../carvalue/dataset/testdata/listings.csv"
	fixtureModel = "../carvalue/model/testdata/model.json"
)

func runPredict(t *testing.T, extra ...string) (string, error) {
	t.Helper()
	args := []string{
		"predict",
		"--env-file", filepath.Join(t.TempDir(), "none.env"),
		"--log-level", "error",
		"--data", fixtureCSV,
		"--model", fixtureModel,
		"--brand", "Toyota", "--model-name", "Corolla", "--variant", "GLi",
		"--year", "2018", "--car-type", "Sedan", "--fuel-type", "Petrol",
		"--transmission", "Manual", "--owner", "First", "--kilometers", "40000",
		"--state", "CA", "--accidental", "No", "--json=false",
	}
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(append(args, extra...))
	err := RootCmd.Execute()
	return out.String(), err
}

func TestPredictCommand(t *testing.T) {
	out, err := runPredict(t)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "Estimated Price: ₹ 12,800.00" {
		t.Errorf("got %q", out)
	}

	out, err = runPredict(t, "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"estimate": 12800`) || !strings.Contains(out, `"currency": "INR"`) {
		t.Errorf("got %q", out)
	}
}

func TestPredictCommandRejectsOutOfRangeYear(t *testing.T) {
	_, err := runPredict(t, "--year", "1999")
	var rangeErr *selector.RangeError
	if !errors.As(err, &rangeErr) || rangeErr.Field != dal.Year {
		t.Errorf("got %v", err)
	}
}

func TestCompleteQuery(t *testing.T) {
	data, err := dataset.Load(dataset.CSVSource{Path: fixtureCSV})
	if err != nil {
		t.Fatal(err)
	}
	s := selector.New(data, selector.YearRange{Min: 2000, Max: 2023})

	q, err := completeQuery(s, dal.CarQuery{Brand: "Honda", Year: 2020, FuelType: "Diesel"})
	if err != nil {
		t.Fatal(err)
	}
	want := dal.CarQuery{
		Brand: "Honda", ModelName: "City", ModelVariant: "VX", Year: 2020,
		CarType: "Sedan", FuelType: "Diesel", Transmission: "Manual", Owner: "First",
		State: "CA", Accidental: "No",
	}
	if q != want {
		t.Errorf("got %+v, want %+v", q, want)
	}
	if err := s.Validate(q); err != nil {
		t.Errorf("completed query does not validate: %v", err)
	}

	if _, err := completeQuery(s, dal.CarQuery{Brand: "Lada"}); err == nil {
		t.Error("expected error for unknown brand")
	}
}

func TestImportRequiresDSN(t *testing.T) {
	t.Setenv("CARVALUE_DATA_POSTGRES_DSN", "")
	RootCmd.SetArgs([]string{"import", "--env-file", filepath.Join(t.TempDir(), "none.env"), "--from", fixtureCSV})
	err := RootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "DSN is required") {
		t.Errorf("got %v", err)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "b", "c"); got != "b" {
		t.Errorf("got %q", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("got %q", got)
	}
}
