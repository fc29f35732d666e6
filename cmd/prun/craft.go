package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"prunkit/internal/engine"
	"prunkit/internal/industry"
	"prunkit/internal/logger"
	"prunkit/internal/registry"
)

// parseLot reads "100xRAT", or a bare ticker meaning one unit. The numeric
// prefix is required before the separator so tickers containing an X (EXT,
// EXO) still parse as bare tickers.
func parseLot(arg string) (string, float64, error) {
	if i := strings.IndexAny(arg, "xX"); i > 0 {
		if n, err := strconv.ParseFloat(arg[:i], 64); err == nil {
			ticker := arg[i+1:]
			if ticker == "" || n <= 0 {
				return "", 0, fmt.Errorf("bad lot %q, want e.g. 100xRAT", arg)
			}
			return strings.ToUpper(ticker), n, nil
		}
	}
	if arg == "" {
		return "", 0, fmt.Errorf("bad lot %q, want e.g. 100xRAT", arg)
	}
	return strings.ToUpper(arg), 1, nil
}

func newCraftCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "craft <amount>x<material>",
		Short: "Cost a bulk production run, crafting or buying each tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker, amount, err := parseLot(args[0])
			if err != nil {
				return fail("CRF", err)
			}
			ctx := cmd.Context()
			mat, err := a.reg.MaterialByTicker(ctx, ticker)
			if err != nil {
				return fail("CRF", err)
			}
			code, err := a.exchangeCode()
			if err != nil {
				return fail("CRF", err)
			}
			ex, err := a.reg.Exchange(ctx, code)
			if err != nil {
				return fail("CRF", err)
			}

			crafter := &engine.Crafter{
				Recipes: func(t string) []*industry.Recipe {
					recipes, err := a.reg.MaterialRecipes(ctx, t, registry.RecipeOptions{})
					if err != nil {
						return nil
					}
					return recipes
				},
				Prices: ex,
			}
			plan := crafter.Plan(mat.Ticker, amount)

			logger.Section(fmt.Sprintf("Sourcing %s %s at %s", humanize.Commaf(amount), mat.Ticker, ex.Code))
			printPlan(plan, 0)
			if math.IsInf(plan.Cost, 1) {
				return fail("CRF", fmt.Errorf("%s cannot be sourced at %s", mat.Ticker, ex.Code))
			}
			printf("total %s %s (%s per unit)",
				humanize.CommafWithDigits(plan.Cost, 0), ex.Currency,
				humanize.CommafWithDigits(plan.UnitCost(), 2))
			return nil
		},
	}
	return cmd
}

func printPlan(p *engine.CraftPlan, depth int) {
	indent := strings.Repeat("  ", depth)
	action := "buy"
	if !p.Buy {
		action = "craft"
	}
	line := fmt.Sprintf("%s%s %s %s for %s", indent, action,
		humanize.CommafWithDigits(p.Amount, 1), p.Ticker,
		humanize.CommafWithDigits(p.Cost, 0))
	if p.Recipe != nil {
		line += "  [" + p.Recipe.Name + "]"
	}
	printf("%s", line)
	for _, in := range p.Inputs {
		printPlan(in, depth+1)
	}
}
