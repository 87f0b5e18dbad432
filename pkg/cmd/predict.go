package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/app"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/model"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/selector"
)

type predictOptions struct {
	query  dal.CarQuery
	asJSON bool
	data   string
	model  string
}

var predictOpts predictOptions

func init() {
	flags := PredictCmd.Flags()
	q := &predictOpts.query
	flags.StringVar(&q.Brand, "brand", "", "brand")
	flags.StringVar(&q.ModelName, "model-name", "", "model name")
	flags.StringVar(&q.ModelVariant, "variant", "", "model variant")
	flags.IntVar(&q.Year, "year", selector.DefaultYear, "model year")
	flags.StringVar(&q.CarType, "car-type", "", "car type")
	flags.StringVar(&q.FuelType, "fuel-type", "", "fuel type")
	flags.StringVar(&q.Transmission, "transmission", "", "transmission")
	flags.StringVar(&q.Owner, "owner", "", "ownership")
	flags.IntVar(&q.Kilometers, "kilometers", selector.DefaultKilometers, "kilometers driven")
	flags.StringVar(&q.State, "state", "", "state")
	flags.StringVar(&q.Accidental, "accidental", "", "accident history")
	flags.BoolVar(&predictOpts.asJSON, "json", false, "print the estimate as JSON")
	flags.StringVar(&predictOpts.data, "data", "", "listing CSV file, overrides data.path")
	flags.StringVar(&predictOpts.model, "model", "", "model artifact path or inference URL, overrides model_path")
}

var (
	PredictCmd = &cobra.Command{
		Use:   PredictCmdName,
		Short: PredictCmdShort,
		Long:  PredictCmdLong,
		Args:  cobra.NoArgs,
		RunE:  predictCmdFunc(),
	}
)

func predictCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if predictOpts.data != "" {
			cfg.Data.Path = predictOpts.data
		}
		if predictOpts.model != "" {
			cfg.ModelPath = predictOpts.model
		}

		logger, client, err := app.NewLogger(cfg)
		if err != nil {
			return err
		}
		if client != nil {
			defer client.Close()
		}

		assets, err := app.LoadAssets(cfg, logger)
		if err != nil {
			return err
		}

		q, err := completeQuery(assets.Selector, predictOpts.query)
		if err != nil {
			return err
		}
		if err := assets.Selector.Validate(q); err != nil {
			return err
		}
		estimate, err := model.Predict(assets.Model, q)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if predictOpts.asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{
				"estimate":  float64(estimate),
				"formatted": assets.Money.Format(float64(estimate)),
				"currency":  assets.Money.Code(),
				"query":     q,
			})
		}
		_, err = fmt.Fprintf(out, "Estimated Price: %s\n", assets.Money.Format(float64(estimate)))
		return err
	}
}

// completeQuery fills empty categorical fields with the first option the
// prediction form offers for the current selection.
func completeQuery(s *selector.Selector, q dal.CarQuery) (dal.CarQuery, error) {
	form, err := s.Form(q.Brand, q.ModelName)
	if err != nil {
		return q, err
	}
	q.Brand, q.ModelName = form.Brand, form.ModelName
	if q.ModelVariant == "" {
		q.ModelVariant = form.ModelVariants[0]
	}

	fill := func(v *string, col dal.Column) {
		if *v == "" {
			if opts := form.Options[col.String()]; len(opts) > 0 {
				*v = opts[0]
			}
		}
	}
	fill(&q.CarType, dal.CarType)
	fill(&q.FuelType, dal.FuelType)
	fill(&q.Transmission, dal.Transmission)
	fill(&q.Owner, dal.Owner)
	fill(&q.State, dal.State)
	fill(&q.Accidental, dal.Accidental)
	return q, nil
}
