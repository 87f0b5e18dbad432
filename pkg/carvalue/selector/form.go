package selector

import "github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"

// Form is the state of the prediction form for one brand/model selection.
type Form struct {
	Brand     string `json:"brand"`
	ModelName string `json:"model_name"`

	Brands        []string            `json:"brands"`
	ModelNames    []string            `json:"model_names"`
	ModelVariants []string            `json:"model_variants"`
	Options       map[string][]string `json:"options"`

	Years             YearRange `json:"years"`
	DefaultYear       int       `json:"default_year"`
	MinKilometers     int       `json:"min_kilometers"`
	DefaultKilometers int       `json:"default_kilometers"`
}

// Form builds the form state. An empty brand or model name selects the first
// option, as a freshly rendered dropdown would.
func (s *Selector) Form(brand, modelName string) (*Form, error) {
	brands, err := s.Brands()
	if err != nil {
		return nil, err
	}
	if brand == "" {
		if len(brands) == 0 {
			return nil, &InconsistentSelectionError{Field: dal.Brand, Filters: map[dal.Column]string{}}
		}
		brand = brands[0]
	}

	models, err := s.ModelNames(brand)
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = models[0]
	}

	variants, err := s.ModelVariants(brand, modelName)
	if err != nil {
		return nil, err
	}

	opts := make(map[string][]string, len(Independent))
	for _, c := range Independent {
		o, err := s.Options(c)
		if err != nil {
			return nil, err
		}
		opts[c.String()] = o
	}

	return &Form{
		Brand:             brand,
		ModelName:         modelName,
		Brands:            brands,
		ModelNames:        models,
		ModelVariants:     variants,
		Options:           opts,
		Years:             s.years,
		DefaultYear:       clamp(DefaultYear, s.years.Min, s.years.Max),
		MinKilometers:     0,
		DefaultKilometers: DefaultKilometers,
	}, nil
}

// clamp only positions the prefilled value; submitted values are never clamped.
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
