package model

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
)

//go:embed artifact.schema.json
var artifactSchemaJSON string

const artifactSchemaURL = "artifact.schema.json"

var artifactSchema = compileArtifactSchema()

func compileArtifactSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(artifactSchemaURL, strings.NewReader(artifactSchemaJSON)); err != nil {
		panic(fmt.Sprintf("add artifact schema: %v", err))
	}
	return compiler.MustCompile(artifactSchemaURL)
}

// artifact mirrors the JSON export of a scaled linear model over one-hot
// encoded categories.
type artifact struct {
	Format        string                        `json:"format"`
	Version       int                           `json:"version"`
	Intercept     float64                       `json:"intercept"`
	Target        string                        `json:"target"`
	HandleUnknown string                        `json:"handle_unknown"`
	Numeric       map[string]numericSpec        `json:"numeric"`
	Categorical   map[string]map[string]float64 `json:"categorical"`
}

type numericSpec struct {
	Coef  float64  `json:"coef"`
	Mean  float64  `json:"mean"`
	Scale *float64 `json:"scale"`
}

type numericTerm struct {
	name  string
	coef  float64
	mean  float64
	scale float64
}

type categoricalTerm struct {
	name    string
	weights map[string]float64
}

// LinearModel is a standard-scaled linear regressor with one-hot categorical
// terms. Terms are evaluated in a fixed order so repeated calls return
// bit-identical results.
type LinearModel struct {
	intercept     float64
	log1p         bool
	ignoreUnknown bool
	numeric       []numericTerm
	categorical   []categoricalTerm
	fields        map[string]struct{}
}

// LoadLinear reads and validates a linear artifact from path.
func LoadLinear(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLinear(data)
}

// ParseLinear validates data against the artifact schema and checks that the
// model inputs are exactly the CarQuery fields.
func ParseLinear(data []byte) (*LinearModel, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("artifact is not valid JSON: %w", err)
	}
	if err := artifactSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("artifact schema validation failed: %w", err)
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if err := checkInputs(&a); err != nil {
		return nil, err
	}

	m := &LinearModel{
		intercept:     a.Intercept,
		log1p:         a.Target == "log1p",
		ignoreUnknown: a.HandleUnknown == "ignore",
		fields:        make(map[string]struct{}),
	}
	for name, spec := range a.Numeric {
		scale := 1.0
		if spec.Scale != nil {
			scale = *spec.Scale
		}
		m.numeric = append(m.numeric, numericTerm{name: name, coef: spec.Coef, mean: spec.Mean, scale: scale})
		m.fields[name] = struct{}{}
	}
	for name, weights := range a.Categorical {
		m.categorical = append(m.categorical, categoricalTerm{name: name, weights: weights})
		m.fields[name] = struct{}{}
	}
	sort.Slice(m.numeric, func(i, j int) bool { return m.numeric[i].name < m.numeric[j].name })
	sort.Slice(m.categorical, func(i, j int) bool { return m.categorical[i].name < m.categorical[j].name })
	return m, nil
}

func checkInputs(a *artifact) error {
	var problems []string
	for _, c := range dal.QueryColumns() {
		_, num := a.Numeric[c.String()]
		_, cat := a.Categorical[c.String()]
		switch {
		case c.Numeric() && !num:
			problems = append(problems, fmt.Sprintf("numeric input %q missing", c))
		case !c.Numeric() && !cat:
			problems = append(problems, fmt.Sprintf("categorical input %q missing", c))
		}
	}
	for name := range a.Numeric {
		if c, err := dal.ParseColumn(name); err != nil || c == dal.Price || !c.Numeric() {
			problems = append(problems, fmt.Sprintf("unexpected numeric input %q", name))
		}
	}
	for name := range a.Categorical {
		if c, err := dal.ParseColumn(name); err != nil || c.Numeric() {
			problems = append(problems, fmt.Sprintf("unexpected categorical input %q", name))
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return errors.New("artifact inputs do not match query schema: " + strings.Join(problems, "; "))
	}
	return nil
}

// Predict evaluates the model on rec.
func (m *LinearModel) Predict(rec Record) (float64, error) {
	for name := range rec {
		if _, ok := m.fields[name]; !ok {
			return 0, fmt.Errorf("unrecognized field %q", name)
		}
	}

	sum := m.intercept
	for _, t := range m.numeric {
		v, ok := rec[t.name]
		if !ok {
			return 0, fmt.Errorf("missing field %q", t.name)
		}
		f, ok := toFloat(v)
		if !ok {
			return 0, fmt.Errorf("field %q: expected a number, got %T", t.name, v)
		}
		sum += t.coef * (f - t.mean) / t.scale
	}
	for _, t := range m.categorical {
		v, ok := rec[t.name]
		if !ok {
			return 0, fmt.Errorf("missing field %q", t.name)
		}
		s, ok := v.(string)
		if !ok {
			return 0, fmt.Errorf("field %q: expected a category, got %T", t.name, v)
		}
		w, ok := t.weights[s]
		if !ok {
			if m.ignoreUnknown {
				continue
			}
			return 0, fmt.Errorf("field %q: category %q not seen in training", t.name, s)
		}
		sum += w
	}

	if m.log1p {
		return math.Expm1(sum), nil
	}
	return sum, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
