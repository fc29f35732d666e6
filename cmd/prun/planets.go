package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"prunkit/internal/engine"
	"prunkit/internal/logger"
	"prunkit/internal/market"
	"prunkit/internal/world"
)

func newPlanetsCmd(a *app) *cobra.Command {
	var max int
	cmd := &cobra.Command{
		Use:   "planets <material>",
		Short: "Rank planets for extracting a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mat, err := a.reg.ResolveMaterial(ctx, args[0])
			if err != nil {
				return fail("PLN", err)
			}
			planets, err := a.reg.Planets(ctx)
			if err != nil {
				return fail("PLN", err)
			}
			fr, ok := planets.FactorRange(mat.Ticker)
			if !ok {
				return fail("PLN", fmt.Errorf("no planet holds a %s deposit", mat.Ticker))
			}
			buildings, err := a.reg.Buildings(ctx)
			if err != nil {
				return fail("PLN", err)
			}

			ranker := &engine.PlanetRanker{
				Catalog: buildings,
				Nearest: func(p *world.Planet) (*market.Exchange, int, bool) {
					ex, jumps, err := a.reg.NearestExchange(ctx, p)
					if err != nil {
						return nil, 0, false
					}
					return ex, jumps, true
				},
			}
			scores := ranker.Rank(planets.All(), mat.Ticker, fr, max)

			logger.Section(fmt.Sprintf("Best planets for %s (%s)", mat.Ticker, mat.Name))
			printf("%-10s %-20s %6s %9s %12s %10s %5s %10s",
				"PLANET", "NAME", "RICH", "UNITS/D", "REVENUE/D", "SETUP", "JUMPS", "SCORE")
			for _, s := range scores {
				printf("%-10s %-20s %5.0f%% %9.1f %12s %10s %5d %10s",
					s.Planet.NaturalID, s.Planet.Name,
					s.RelativeFactor*100, s.DailyYield,
					humanize.CommafWithDigits(s.DailyRevenue, 0),
					humanize.CommafWithDigits(s.SetupCost, 0),
					s.Jumps,
					humanize.CommafWithDigits(s.Score, 0))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&max, "max", 15, "number of planets to show")
	return cmd
}
