package dal

import "fmt"

// Column identifies one field of the listing schema.
type Column int

const (
	Brand Column = iota
	ModelName
	ModelVariant
	Year
	CarType
	FuelType
	Transmission
	Owner
	Kilometers
	State
	Accidental
	Price

	columnCount
)

// Header names as they appear in the dataset, spaces included.
var columnNames = [columnCount]string{
	Brand:        "Brand",
	ModelName:    "Model Name",
	ModelVariant: "Model Variant",
	Year:         "Year",
	CarType:      "Car Type",
	FuelType:     "Fuel Type",
	Transmission: "Transmission",
	Owner:        "Owner",
	Kilometers:   "Kilometers",
	State:        "State",
	Accidental:   "Accidental",
	Price:        "Price",
}

// Columns returns the full listing schema in dataset order.
func Columns() []Column {
	cols := make([]Column, 0, columnCount)
	for c := Column(0); c < columnCount; c++ {
		cols = append(cols, c)
	}
	return cols
}

// QueryColumns returns the fields a CarQuery carries, i.e. every column but Price.
func QueryColumns() []Column {
	cols := make([]Column, 0, columnCount-1)
	for _, c := range Columns() {
		if c != Price {
			cols = append(cols, c)
		}
	}
	return cols
}

// Valid reports whether c is part of the schema.
func (c Column) Valid() bool {
	return c >= 0 && c < columnCount
}

// String returns the exact dataset header name.
func (c Column) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Column(%d)", int(c))
	}
	return columnNames[c]
}

// Numeric reports whether the column holds numbers rather than categories.
func (c Column) Numeric() bool {
	return c == Year || c == Kilometers || c == Price
}

// ParseColumn maps an exact header name to its Column.
func ParseColumn(name string) (Column, error) {
	for c, n := range columnNames {
		if n == name {
			return Column(c), nil
		}
	}
	return 0, &UnknownColumnError{Name: name}
}

// UnknownColumnError is returned when a column is requested that is not part
// of the schema, or is used in a way its kind does not allow.
type UnknownColumnError struct {
	Name   string
	Reason string
}

func (e *UnknownColumnError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("column %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("unknown column %q", e.Name)
}

// CheckColumn returns an UnknownColumnError when c is outside the schema.
func CheckColumn(c Column) error {
	if !c.Valid() {
		return &UnknownColumnError{Name: c.String()}
	}
	return nil
}
