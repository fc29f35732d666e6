package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"prunkit/internal/engine"
	"prunkit/internal/industry"
	"prunkit/internal/logger"
	"prunkit/internal/registry"
)

func newQueueCmd(a *app) *cobra.Command {
	var priority string
	cmd := &cobra.Command{
		Use:   "queue <material>...",
		Short: "Balance a production queue across output materials",
		Long: "Picks the best recipe for each material, weights it by how fast\n" +
			"its outputs actually trade, and splits the line's slots so slow\n" +
			"movers are not overproduced.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			code, err := a.exchangeCode()
			if err != nil {
				return fail("QUE", err)
			}
			ex, err := a.reg.Exchange(ctx, code)
			if err != nil {
				return fail("QUE", err)
			}

			recipes := make([]*industry.Recipe, 0, len(args))
			for _, arg := range args {
				mat, err := a.reg.MaterialByTicker(ctx, arg)
				if err != nil {
					return fail("QUE", err)
				}
				rec, err := a.reg.BestRecipe(ctx, mat.Ticker, registry.Priority(priority), ex, registry.RecipeOptions{})
				if err != nil {
					return fail("QUE", err)
				}
				recipes = append(recipes, rec)
			}

			weighted := engine.IdealRatios(recipes, func(ticker string) float64 {
				traded, err := a.reg.DailyTraded(ctx, ticker, ex.Code)
				if err != nil {
					return 0
				}
				return traded
			})
			queue := &engine.RecipeQueue{
				Capacity: a.cfg.QueueCapacity,
				MaxOrder: a.cfg.QueueMaxOrder,
			}
			allocs, err := queue.Balance(weighted)
			if err != nil {
				return fail("QUE", err)
			}

			logger.Section(fmt.Sprintf("Queue plan at %s (%d slots)", ex.Code, queue.Capacity))
			for i, alloc := range allocs {
				printf("slot %d  %3dx %s", i+1, alloc.Count, alloc.Recipe.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&priority, "priority", string(registry.PriorityProfitPerHour), "recipe choice: throughput, profit_per_hour or profit_ratio")
	return cmd
}
