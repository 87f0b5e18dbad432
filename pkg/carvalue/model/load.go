package model

import (
	"fmt"
	"net/url"
	"strings"
)

// LoadModel loads the model behind path. An http(s) URL selects a remote
// inference endpoint; anything else is read as a linear JSON artifact.
// A remote endpoint must price ref once before it is accepted. A nil ref
// uses ReferenceRecord. Failures are reported as *ModelLoadError.
func LoadModel(path string, ref Record) (Model, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		u, err := url.Parse(path)
		if err != nil || u.Host == "" {
			return nil, &ModelLoadError{Path: path, Err: fmt.Errorf("invalid endpoint url")}
		}
		m := NewRemoteModel(u.String(), nil)
		if ref == nil {
			ref = ReferenceRecord()
		}
		if _, err := m.Predict(ref); err != nil {
			return nil, &ModelLoadError{Path: path, Err: fmt.Errorf("check call: %w", err)}
		}
		return m, nil
	}

	m, err := LoadLinear(path)
	if err != nil {
		return nil, &ModelLoadError{Path: path, Err: err}
	}
	return m, nil
}

// ReferenceRecord is a complete input row used to check a model endpoint
// when no dataset row is at hand.
func ReferenceRecord() Record {
	return Record{
		"Brand":         "Toyota",
		"Model Name":    "Corolla",
		"Model Variant": "GLi",
		"Year":          2018,
		"Car Type":      "Sedan",
		"Fuel Type":     "Petrol",
		"Transmission":  "Manual",
		"Owner":         "First",
		"Kilometers":    40000,
		"State":         "CA",
		"Accidental":    "No",
	}
}
