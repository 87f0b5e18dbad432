package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/app"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dataset"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/logging"
)

var importOpts struct {
	from  string
	dsn   string
	table string
}

func init() {
	flags := ImportCmd.Flags()
	flags.StringVar(&importOpts.from, "from", "", "CSV file to import, defaults to data.path")
	flags.StringVar(&importOpts.dsn, "dsn", "", "PostgreSQL DSN, defaults to data.postgres_dsn")
	flags.StringVar(&importOpts.table, "table", "", "target table, defaults to data.table")
}

var (
	ImportCmd = &cobra.Command{
		Use:   ImportCmdName,
		Short: ImportCmdShort,
		Long:  ImportCmdLong,
		Args:  cobra.NoArgs,
		RunE:  importCmdFunc(),
	}
)

func importCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		from := firstNonEmpty(importOpts.from, cfg.Data.Path)
		dsn := firstNonEmpty(importOpts.dsn, cfg.Data.PostgresDSN)
		table := firstNonEmpty(importOpts.table, cfg.Data.Table)
		if dsn == "" {
			return errors.New("import: a PostgreSQL DSN is required (--dsn or CARVALUE_DATA_POSTGRES_DSN)")
		}

		logger, client, err := app.NewLogger(cfg)
		if err != nil {
			return err
		}
		if client != nil {
			defer client.Close()
		}
		logger = logger.WithFields(logging.Fields{"component": "import", "table": table})

		data, err := dataset.Load(dataset.CSVSource{Path: from})
		if err != nil {
			return err
		}
		if data.Len() == 0 {
			return fmt.Errorf("import: %s holds no listings", from)
		}

		w, err := dataset.NewPostgresWriter(dsn, table)
		if err != nil {
			return err
		}
		defer w.Close()

		if err := w.Replace(data.Listings()); err != nil {
			logger.Error("import failed", err, nil)
			return err
		}
		logger.Info("listings imported", logging.Fields{"from": from, "listings": data.Len()})
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d listings into %s\n", data.Len(), table)
		return nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
