package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
)

// Source yields the full listing collection in one read.
type Source interface {
	Name() string
	Read() ([]dal.Listing, error)
}

// CSVSource reads listings from a CSV file whose header carries the exact
// schema column names. Column order is free and extra columns are ignored.
type CSVSource struct {
	Path string
}

func (s CSVSource) Name() string { return "csv:" + s.Path }

func (s CSVSource) Read() ([]dal.Listing, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", s.Path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses listings from r.
func ReadCSV(r io.Reader) ([]dal.Listing, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv: empty file, header row missing")
		}
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[dal.Column]int, len(header))
	for i, name := range header {
		c, err := dal.ParseColumn(name)
		if err != nil {
			continue
		}
		index[c] = i
	}
	var missing []string
	for _, c := range dal.Columns() {
		if _, ok := index[c]; !ok {
			missing = append(missing, c.String())
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv: missing required columns: %s", strings.Join(missing, ", "))
	}

	var listings []dal.Listing
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		l, err := parseRecord(rec, index)
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		listings = append(listings, l)
	}
	return listings, nil
}

func parseRecord(rec []string, index map[dal.Column]int) (dal.Listing, error) {
	field := func(c dal.Column) string {
		i := index[c]
		if i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	year, err := parseInt(field(dal.Year))
	if err != nil {
		return dal.Listing{}, fmt.Errorf("%s: %w", dal.Year, err)
	}
	km, err := parseInt(field(dal.Kilometers))
	if err != nil {
		return dal.Listing{}, fmt.Errorf("%s: %w", dal.Kilometers, err)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(field(dal.Price)), 64)
	if err != nil {
		return dal.Listing{}, fmt.Errorf("%s: %w", dal.Price, err)
	}

	return dal.Listing{
		Brand:        field(dal.Brand),
		ModelName:    field(dal.ModelName),
		ModelVariant: field(dal.ModelVariant),
		Year:         year,
		CarType:      field(dal.CarType),
		FuelType:     field(dal.FuelType),
		Transmission: field(dal.Transmission),
		Owner:        field(dal.Owner),
		Kilometers:   km,
		State:        field(dal.State),
		Accidental:   field(dal.Accidental),
		Price:        price,
	}, nil
}

// parseInt accepts "40000" as well as integral floats such as "40000.0".
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int(f), nil
}
