package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/analysis"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/logging"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/model"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/selector"
)

const maxBodyBytes = 1 << 20

// Error kinds reported by the prediction endpoint.
const (
	KindRange                 = "range"
	KindInconsistentSelection = "inconsistent_selection"
	KindPrediction            = "prediction"
)

// NavLink points at one page of the service.
type NavLink struct {
	Title  string `json:"title"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

// HomeView is the landing page.
type HomeView struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Pages       []NavLink `json:"pages"`
}

// PredictionResponse is a successful price estimate.
type PredictionResponse struct {
	Estimate  float64      `json:"estimate"`
	Formatted string       `json:"formatted"`
	Currency  string       `json:"currency"`
	Query     dal.CarQuery `json:"query"`
}

// ErrorResponse describes a rejected submission. Query echoes the submitted
// form so the client can redisplay it unchanged.
type ErrorResponse struct {
	Error string        `json:"error"`
	Kind  string        `json:"kind"`
	Field string        `json:"field,omitempty"`
	Query *dal.CarQuery `json:"query,omitempty"`
}

// Home godoc
//
// @Summary      Home page
// @Description  Title, description and navigation links of the service
// @Tags         navigation
// @Produce      json
// @Success      200  {object}  server.HomeView
// @Router       / [get]
func (h *httpServer) Home(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, HomeView{
		Title:       h.appName + ": smart car price predictor",
		Description: "Predicts the resale price of a used car from its brand, model, variant, year, fuel type and usage, using a model trained on historical listings.",
		Pages: []NavLink{
			{Title: "Home", Method: http.MethodGet, Path: "/"},
			{Title: "Data Analysis", Method: http.MethodGet, Path: "/analysis"},
			{Title: "Prediction", Method: http.MethodGet, Path: "/prediction"},
		},
	})
}

// Analysis godoc
//
// @Summary      Dataset insights
// @Description  Head rows, summary statistics and chart data for the listing dataset
// @Tags         analysis
// @Produce      json
// @Success      200  {object}  analysis.Overview
// @Failure      500  {object}  map[string]string
// @Router       /analysis [get]
func (h *httpServer) Analysis(w http.ResponseWriter, r *http.Request) {
	ov, err := analysis.Build(h.data)
	if err != nil {
		logging.FromContext(r.Context()).Error("analysis failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	RespondWithJSON(w, http.StatusOK, ov)
}

// PredictionForm godoc
//
// @Summary      Prediction form state
// @Description  Cascading options for the prediction form. Empty brand or model selects the first option.
// @Tags         prediction
// @Produce      json
// @Param        brand       query     string  false  "Selected brand"
// @Param        model_name  query     string  false  "Selected model name"
// @Success      200         {object}  selector.Form
// @Failure      422         {object}  server.ErrorResponse
// @Failure      500         {object}  map[string]string
// @Router       /prediction [get]
func (h *httpServer) PredictionForm(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()
	form, err := h.selector.Form(vars.Get("brand"), vars.Get("model_name"))
	if err != nil {
		h.writeQueryError(w, r, err, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, form)
}

// Predict godoc
//
// @Summary      Predict a price
// @Description  Validates the submitted car against the dataset and returns the model's price estimate
// @Tags         prediction
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        request  body      dal.CarQuery  true  "Car to price"
// @Success      200      {object}  server.PredictionResponse
// @Failure      400      {object}  map[string]string
// @Failure      422      {object}  server.ErrorResponse
// @Failure      500      {object}  map[string]string
// @Router       /prediction [post]
func (h *httpServer) Predict(w http.ResponseWriter, r *http.Request) {
	q, err := decodeQuery(w, r)
	var predErr *model.PredictionError
	if errors.As(err, &predErr) {
		h.writeQueryError(w, r, err, &q)
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Warn("malformed prediction request", logging.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.selector.Validate(q); err != nil {
		h.writeQueryError(w, r, err, &q)
		return
	}

	estimate, err := model.Predict(h.model, q)
	if err != nil {
		h.writeQueryError(w, r, err, &q)
		return
	}

	logging.FromContext(r.Context()).Info("price predicted", logging.Fields{
		"brand":    q.Brand,
		"model":    q.ModelName,
		"variant":  q.ModelVariant,
		"estimate": float64(estimate),
	})
	RespondWithJSON(w, http.StatusOK, PredictionResponse{
		Estimate:  float64(estimate),
		Formatted: h.money.Format(float64(estimate)),
		Currency:  h.money.Code(),
		Query:     q,
	})
}

// Health godoc
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *httpServer) Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"listings": h.data.Len(),
	})
}

// writeQueryError maps the user-facing error types to 422. Anything else is
// an internal failure.
func (h *httpServer) writeQueryError(w http.ResponseWriter, r *http.Request, err error, q *dal.CarQuery) {
	var (
		rangeErr *selector.RangeError
		selErr   *selector.InconsistentSelectionError
		predErr  *model.PredictionError
	)
	resp := ErrorResponse{Error: err.Error(), Query: q}
	switch {
	case errors.As(err, &rangeErr):
		resp.Kind, resp.Field = KindRange, rangeErr.Field.String()
	case errors.As(err, &selErr):
		resp.Kind, resp.Field = KindInconsistentSelection, selErr.Field.String()
	case errors.As(err, &predErr):
		resp.Kind = KindPrediction
	default:
		logging.FromContext(r.Context()).Error("request failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	logging.FromContext(r.Context()).Warn("submission rejected", logging.Fields{
		"kind":  resp.Kind,
		"field": resp.Field,
		"error": resp.Error,
	})
	RespondWithJSON(w, http.StatusUnprocessableEntity, resp)
}

// predictionRequest is the wire form of a CarQuery. Numeric fields are
// pointers so an omitted field is told apart from zero.
type predictionRequest struct {
	Brand        string `json:"brand"`
	ModelName    string `json:"model_name"`
	ModelVariant string `json:"model_variant"`
	Year         *int   `json:"year"`
	CarType      string `json:"car_type"`
	FuelType     string `json:"fuel_type"`
	Transmission string `json:"transmission"`
	Owner        string `json:"owner"`
	Kilometers   *int   `json:"kilometers"`
	State        string `json:"state"`
	Accidental   string `json:"accidental"`
}

// query converts the request. A missing numeric field is a
// *model.PredictionError; the returned query still carries the other fields.
func (p predictionRequest) query() (dal.CarQuery, error) {
	q := dal.CarQuery{
		Brand:        p.Brand,
		ModelName:    p.ModelName,
		ModelVariant: p.ModelVariant,
		CarType:      p.CarType,
		FuelType:     p.FuelType,
		Transmission: p.Transmission,
		Owner:        p.Owner,
		State:        p.State,
		Accidental:   p.Accidental,
	}
	if p.Year != nil {
		q.Year = *p.Year
	}
	if p.Kilometers != nil {
		q.Kilometers = *p.Kilometers
	}
	switch {
	case p.Year == nil:
		return q, missingField(dal.Year)
	case p.Kilometers == nil:
		return q, missingField(dal.Kilometers)
	}
	return q, nil
}

func missingField(c dal.Column) error {
	return &model.PredictionError{Reason: fmt.Sprintf("missing required field %q", c.String())}
}

// decodeQuery reads a CarQuery from a JSON body or from form fields named
// like the JSON keys. Malformed input is a plain error; a missing numeric
// field is a *model.PredictionError returned with the partial query.
func decodeQuery(w http.ResponseWriter, r *http.Request) (dal.CarQuery, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req predictionRequest
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return dal.CarQuery{}, fmt.Errorf("invalid JSON body: %w", err)
		}
		return req.query()
	}

	if err := r.ParseForm(); err != nil {
		return dal.CarQuery{}, fmt.Errorf("invalid form body: %w", err)
	}
	vars := r.PostForm

	year, err := validateInt(vars, "year")
	if err != nil {
		return dal.CarQuery{}, err
	}
	km, err := validateInt(vars, "kilometers")
	if err != nil {
		return dal.CarQuery{}, err
	}

	req = predictionRequest{
		Brand:        vars.Get("brand"),
		ModelName:    vars.Get("model_name"),
		ModelVariant: vars.Get("model_variant"),
		Year:         year,
		CarType:      vars.Get("car_type"),
		FuelType:     vars.Get("fuel_type"),
		Transmission: vars.Get("transmission"),
		Owner:        vars.Get("owner"),
		Kilometers:   km,
		State:        vars.Get("state"),
		Accidental:   vars.Get("accidental"),
	}
	return req.query()
}

// validateInt parses an integer form field. Range checks belong to the
// selector; an absent or blank field is nil.
func validateInt(vars url.Values, key string) (*int, error) {
	s := vars.Get(key)
	if !vars.Has(key) || s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be a whole number: %q", key, s)
	}
	return &n, nil
}
