package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/app"
)

func init() {
	flags := ServeCmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.String("data", "data/car_listings.csv", "listing CSV file")
	flags.String("model", "models/pipeline_car.json", "model artifact path or inference URL")

	viper.BindPFlag("addr", flags.Lookup("addr"))
	viper.BindPFlag("data.path", flags.Lookup("data"))
	viper.BindPFlag("model_path", flags.Lookup("model"))
}

var (
	ServeCmd = &cobra.Command{
		Use:   ServeCmdName,
		Short: ServeCmdShort,
		Long:  ServeCmdLong,
		Args:  cobra.NoArgs,
		RunE:  serveCmdFunc(),
	}
)

func serveCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		return a.Run(cmd.Context())
	}
}
