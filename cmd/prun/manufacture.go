package main

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"prunkit/internal/engine"
	"prunkit/internal/logger"
)

func newManufactureCmd(a *app) *cobra.Command {
	var max int
	var program string
	cmd := &cobra.Command{
		Use:   "manufacture [exchange]",
		Short: "Rank recipes by profit per hour at an exchange",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			code := ""
			if len(args) == 1 {
				code = args[0]
			} else {
				var err error
				if code, err = a.exchangeCode(); err != nil {
					return fail("MFG", err)
				}
			}
			ex, err := a.reg.Exchange(ctx, code)
			if err != nil {
				return fail("MFG", err)
			}
			recipes, err := a.reg.AllRecipes(ctx)
			if err != nil {
				return fail("MFG", err)
			}
			buildings, err := a.reg.Buildings(ctx)
			if err != nil {
				return fail("MFG", err)
			}

			scores := engine.RankManufacture(recipes, buildings, program, ex, max)

			logger.Section(fmt.Sprintf("Most profitable recipes at %s (%s)", ex.Code, ex.Currency))
			printf("%-40s %6s %12s %8s", "RECIPE", "COGC", "PROFIT/H", "RATIO")
			for _, s := range scores {
				if math.IsInf(s.ProfitPerHour, 0) || math.IsNaN(s.ProfitPerHour) {
					continue
				}
				printf("%-40s %5.2fx %12s %8.2f",
					s.Recipe.Name, s.Bonus,
					humanize.CommafWithDigits(s.ProfitPerHour, 1),
					s.ProfitRatio)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&max, "max", 25, "number of recipes to show")
	cmd.Flags().StringVar(&program, "program", "", "assume this COGC program is active (e.g. METALLURGY)")
	return cmd
}
