package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"measure"
)

type arithFunc func(measure.Number, measure.Converter, measure.Number) (measure.Number, error)

func parseArgs(args []string) ([]measure.Number, error) {
	out := make([]measure.Number, 0, len(args))
	for _, arg := range args {
		n, err := measure.Parse(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func convertCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:     "convert <amount[unit]> <unit>",
		Short:   "Express a number in another unit",
		Example: "units --units units.txt convert '3[km]' m",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd, v)
			if err != nil {
				return err
			}
			nums, err := parseArgs(args[:1])
			if err != nil {
				return err
			}
			res, err := nums[0].ConvertTo(t, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func arithCmd(v *viper.Viper, use, short string, op arithFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <amount[unit]> <amount[unit]>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd, v)
			if err != nil {
				return err
			}
			nums, err := parseArgs(args)
			if err != nil {
				return err
			}
			res, err := op(nums[0], t, nums[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func compareCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <amount[unit]> <amount[unit]>",
		Short: "Print <, = or > for two numbers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd, v)
			if err != nil {
				return err
			}
			nums, err := parseArgs(args)
			if err != nil {
				return err
			}
			cmp, err := nums[0].Compare(t, nums[1])
			if err != nil {
				return err
			}
			sign := "="
			if cmp < 0 {
				sign = "<"
			} else if cmp > 0 {
				sign = ">"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", nums[0], sign, nums[1])
			return nil
		},
	}
}

func listCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known units and their direct ratios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := loadTable(cmd, v)
			if err != nil {
				return err
			}
			units := t.Units()
			for _, from := range units {
				for _, to := range units {
					if ratio, ok := t.Ratio(from, to); ok {
						fmt.Fprintf(cmd.OutOrStdout(), "1 %s = %g %s\n", from, ratio, to)
					}
				}
			}
			return nil
		},
	}
}

func importCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Validate a declarations file and append it to the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := v.GetString(FlagDB)
			if path == "" {
				return errors.Errorf("--%s is required", FlagDB)
			}
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open declarations")
			}
			defer f.Close()
			decls, err := measure.ReadDeclarations(f)
			if err != nil {
				return err
			}

			// replay on top of what is stored so a bad ratio never lands
			t, err := loadTable(cmd, v)
			if err != nil {
				return err
			}
			if err := t.DeclareAll(decls); err != nil {
				return err
			}

			store, err := measure.OpenStore(path)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.SaveAll(decls); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d declarations\n", len(decls))
			return nil
		},
	}
}
