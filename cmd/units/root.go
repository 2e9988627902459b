package main

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"measure"
)

const (
	FlagUnits    = "units"
	FlagDB       = "db"
	FlagLogLevel = "log-level"

	envPrefix = "UNITS"
)

func RootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:          "units",
		Short:        "Arithmetic on numbers with units",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			v.SetEnvPrefix(envPrefix)
			v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
			v.AutomaticEnv()
			return nil
		},
	}

	cmd.PersistentFlags().String(FlagUnits, "", "File with one declaration per line, e.g. \"1 km = 1000 m\"")
	cmd.PersistentFlags().String(FlagDB, "", "SQLite database holding saved declarations")
	cmd.PersistentFlags().String(FlagLogLevel, zerolog.InfoLevel.String(), "The logging level (trace|debug|info|warn|error)")

	cmd.AddCommand(convertCmd(v))
	cmd.AddCommand(arithCmd(v, "add", "Add two numbers, result in the unit of the first", measure.Number.Add))
	cmd.AddCommand(arithCmd(v, "sub", "Subtract two numbers, result in the unit of the first", measure.Number.Sub))
	cmd.AddCommand(compareCmd(v))
	cmd.AddCommand(listCmd(v))
	cmd.AddCommand(importCmd(v))

	return cmd
}

func newLogger(v *viper.Viper, w io.Writer) (zerolog.Logger, error) {
	lvlStr := v.GetString(FlagLogLevel)
	lvl, err := zerolog.ParseLevel(lvlStr)
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(err, "failed to parse log level (%s)", lvlStr)
	}
	cl := zerolog.ConsoleWriter{
		Out:          w,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(cl).Level(lvl), nil
}

// loadTable builds a table from the database first, then the units file.
func loadTable(cmd *cobra.Command, v *viper.Viper) (*measure.Table, error) {
	logger, err := newLogger(v, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	t := measure.NewTable(measure.WithLogger(logger))

	if path := v.GetString(FlagDB); path != "" {
		store, err := measure.OpenStore(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		if err := store.LoadInto(t); err != nil {
			return nil, err
		}
	}
	if path := v.GetString(FlagUnits); path != "" {
		if err := t.LoadFile(path); err != nil {
			return nil, err
		}
	}
	logger.Debug().Int("units", len(t.Units())).Msg("table loaded")
	return t, nil
}
