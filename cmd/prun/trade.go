package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"prunkit/internal/engine"
	"prunkit/internal/logger"
)

func newTradeCmd(a *app) *cobra.Command {
	var amount float64
	var minProfit float64
	var maxJumps, max int
	cmd := &cobra.Command{
		Use:   "trade <material>...",
		Short: "Find cross-exchange arbitrage for a set of materials",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tickers := make([]string, 0, len(args))
			for _, arg := range args {
				mat, err := a.reg.MaterialByTicker(ctx, arg)
				if err != nil {
					return fail("TRD", err)
				}
				tickers = append(tickers, mat.Ticker)
			}
			exchanges, err := a.reg.Exchanges(ctx)
			if err != nil {
				return fail("TRD", err)
			}
			pf, err := a.reg.Pathfinder(ctx)
			if err != nil {
				return fail("TRD", err)
			}

			finder := &engine.TradeFinder{Exchanges: exchanges.All(), Jumps: pf.Jumps}
			results := finder.Find(engine.TradeParams{
				Tickers:    tickers,
				Amount:     amount,
				MinProfit:  minProfit,
				MaxJumps:   maxJumps,
				MaxResults: max,
			})
			if len(results) == 0 {
				logger.Info("TRD", "no profitable routes found")
				return nil
			}

			logger.Section(fmt.Sprintf("Arbitrage for %s", strings.Join(tickers, ", ")))
			printf("%-4s %-4s %-4s %8s %10s %10s %10s %5s %10s",
				"MAT", "BUY", "SELL", "UNITS", "COST", "REVENUE", "PROFIT", "JUMPS", "PROFIT/J")
			for _, r := range results {
				printf("%-4s %-4s %-4s %8s %10s %10s %10s %5d %10s",
					r.Ticker, r.From.Code, r.To.Code,
					humanize.Commaf(r.Amount),
					humanize.CommafWithDigits(r.BuyCost, 0),
					humanize.CommafWithDigits(r.SellRevenue, 0),
					humanize.CommafWithDigits(r.Profit, 0),
					r.Jumps,
					humanize.CommafWithDigits(r.ProfitPerJump, 0))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", engine.DefaultTradeAmount, "units per lot")
	cmd.Flags().Float64Var(&minProfit, "min-profit", 0, "minimum profit per lot")
	cmd.Flags().IntVar(&maxJumps, "max-jumps", 0, "maximum route length (0 = unlimited)")
	cmd.Flags().IntVar(&max, "max", 20, "number of routes to show")
	return cmd
}
