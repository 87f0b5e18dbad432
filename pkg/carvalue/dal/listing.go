package dal

import "strconv"

// Listing defines one historical car-for-sale record
type Listing struct {
	Brand        string  `json:"brand"`
	ModelName    string  `json:"model_name"`
	ModelVariant string  `json:"model_variant"`
	Year         int     `json:"year"`
	CarType      string  `json:"car_type"`
	FuelType     string  `json:"fuel_type"`
	Transmission string  `json:"transmission"`
	Owner        string  `json:"owner"`
	Kilometers   int     `json:"kilometers"`
	State        string  `json:"state"`
	Accidental   string  `json:"accidental"`
	Price        float64 `json:"price"`
}

// Value returns the value of column c rendered as text.
func (l *Listing) Value(c Column) string {
	switch c {
	case Brand:
		return l.Brand
	case ModelName:
		return l.ModelName
	case ModelVariant:
		return l.ModelVariant
	case Year:
		return strconv.Itoa(l.Year)
	case CarType:
		return l.CarType
	case FuelType:
		return l.FuelType
	case Transmission:
		return l.Transmission
	case Owner:
		return l.Owner
	case Kilometers:
		return strconv.Itoa(l.Kilometers)
	case State:
		return l.State
	case Accidental:
		return l.Accidental
	case Price:
		return strconv.FormatFloat(l.Price, 'f', -1, 64)
	}
	return ""
}

// Number returns the value of a numeric column. ok is false for categorical columns.
func (l *Listing) Number(c Column) (v float64, ok bool) {
	switch c {
	case Year:
		return float64(l.Year), true
	case Kilometers:
		return float64(l.Kilometers), true
	case Price:
		return l.Price, true
	}
	return 0, false
}

// Query returns the listing as a CarQuery, dropping the price.
func (l *Listing) Query() CarQuery {
	return CarQuery{
		Brand:        l.Brand,
		ModelName:    l.ModelName,
		ModelVariant: l.ModelVariant,
		Year:         l.Year,
		CarType:      l.CarType,
		FuelType:     l.FuelType,
		Transmission: l.Transmission,
		Owner:        l.Owner,
		Kilometers:   l.Kilometers,
		State:        l.State,
		Accidental:   l.Accidental,
	}
}

// CarQuery defines a hypothetical car submitted for pricing
type CarQuery struct {
	Brand        string `json:"brand"`
	ModelName    string `json:"model_name"`
	ModelVariant string `json:"model_variant"`
	Year         int    `json:"year"`
	CarType      string `json:"car_type"`
	FuelType     string `json:"fuel_type"`
	Transmission string `json:"transmission"`
	Owner        string `json:"owner"`
	Kilometers   int    `json:"kilometers"`
	State        string `json:"state"`
	Accidental   string `json:"accidental"`
}

// Fields returns the query keyed by column. Numeric fields are ints,
// categorical fields strings.
func (q CarQuery) Fields() map[Column]any {
	return map[Column]any{
		Brand:        q.Brand,
		ModelName:    q.ModelName,
		ModelVariant: q.ModelVariant,
		Year:         q.Year,
		CarType:      q.CarType,
		FuelType:     q.FuelType,
		Transmission: q.Transmission,
		Owner:        q.Owner,
		Kilometers:   q.Kilometers,
		State:        q.State,
		Accidental:   q.Accidental,
	}
}

// PriceEstimate is the model's point prediction for a CarQuery.
type PriceEstimate float64
