package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"prunkit/internal/engine"
	"prunkit/internal/industry"
	"prunkit/internal/logger"
	"prunkit/internal/quantity"
	"prunkit/internal/world"
)

func newHousingCmd(a *app) *cobra.Command {
	counts := map[quantity.Demographic]*int{}
	var objective, planetKey string
	cmd := &cobra.Command{
		Use:   "housing",
		Short: "Find the cheapest housing mix for a workforce",
		RunE: func(cmd *cobra.Command, args []string) error {
			demand := quantity.Population{}
			for d, n := range counts {
				if *n > 0 {
					demand[d] = float64(*n)
				}
			}
			if demand.IsZero() {
				return fail("HOU", fmt.Errorf("no workforce given, use e.g. --pioneers 150"))
			}

			ctx := cmd.Context()
			var planet *world.Planet
			if planetKey != "" {
				var err error
				if planet, err = a.reg.Planet(ctx, planetKey); err != nil {
					return fail("HOU", err)
				}
			}
			buildings, err := a.reg.Buildings(ctx)
			if err != nil {
				return fail("HOU", err)
			}
			code, err := a.exchangeCode()
			if err != nil {
				return fail("HOU", err)
			}
			ex, err := a.reg.Exchange(ctx, code)
			if err != nil {
				return fail("HOU", err)
			}

			src := industry.PlanetSource{Catalog: buildings, Planet: planet}
			bag, err := engine.OptimizeHousing(demand, src, ex, engine.HousingObjective(objective))
			if err != nil {
				return fail("HOU", err)
			}
			whole := bag.Ceil()

			logger.Section("Housing plan")
			printf("optimal mix   %s", bag)
			printf("whole houses  %s", whole)
			printf("area          %s", humanize.CommafWithDigits(whole.TotalArea(src), 0))
			printf("cost at %s   %s %s", ex.Code,
				humanize.CommafWithDigits(whole.TotalCost(src, ex), 0), ex.Currency)
			return nil
		},
	}
	for _, d := range quantity.Demographics {
		n := new(int)
		counts[d] = n
		flag := map[quantity.Demographic]string{
			quantity.Pioneers:    "pioneers",
			quantity.Settlers:    "settlers",
			quantity.Technicians: "technicians",
			quantity.Engineers:   "engineers",
			quantity.Scientists:  "scientists",
		}[d]
		cmd.Flags().IntVar(n, flag, 0, fmt.Sprintf("%s head count to house", flag))
	}
	cmd.Flags().StringVar(&objective, "objective", string(engine.HousingCost), "cost or area")
	cmd.Flags().StringVar(&planetKey, "planet", "", "price construction for this planet's environment")
	return cmd
}
