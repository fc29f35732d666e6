package engine

import (
	"math"
	"sort"

	"prunkit/internal/market"
)

const (
	// DefaultMaxResults caps result lists when the caller gives no limit.
	DefaultMaxResults = 100
	// DefaultTradeAmount is the lot size priced when none is given.
	DefaultTradeAmount = 100
)

// TradeParams controls one cross-exchange scan.
type TradeParams struct {
	Tickers    []string
	Amount     float64 // units priced per leg; DefaultTradeAmount if <= 0
	MinProfit  float64 // absolute profit floor per lot
	MaxJumps   int     // 0 means unlimited
	MaxResults int     // DefaultMaxResults if <= 0
}

// TradeResult is one profitable buy-here-sell-there opportunity.
type TradeResult struct {
	Ticker        string
	From          *market.Exchange
	To            *market.Exchange
	Amount        float64
	BuyCost       float64
	SellRevenue   float64
	Profit        float64
	Jumps         int
	ProfitPerJump float64
}

// TradeFinder scans ordered pairs of exchanges for arbitrage on a ticker
// set. Jumps reports the path length between two systems; a pair with no
// path is skipped.
type TradeFinder struct {
	Exchanges []*market.Exchange
	Jumps     func(fromSystem, toSystem string) (int, bool)
}

// Find walks every ticker over every exchange pair, pricing the buy leg by
// walking the ask side at From and the sell leg by walking the bid side at
// To. Results are sorted by profit per jump, then profit.
func (f *TradeFinder) Find(params TradeParams) []TradeResult {
	amount := params.Amount
	if amount <= 0 {
		amount = DefaultTradeAmount
	}
	maxResults := params.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	var results []TradeResult
	for _, ticker := range params.Tickers {
		for _, from := range f.Exchanges {
			cost := from.WalkedBuy(ticker, amount)
			if math.IsInf(cost, 1) {
				continue
			}
			for _, to := range f.Exchanges {
				if to == from {
					continue
				}
				revenue := to.WalkedSell(ticker, amount)
				profit := revenue - cost
				if profit < params.MinProfit || profit <= 0 {
					continue
				}
				jumps, ok := f.Jumps(from.SystemID, to.SystemID)
				if !ok {
					continue
				}
				if params.MaxJumps > 0 && jumps > params.MaxJumps {
					continue
				}
				perJump := profit
				if jumps > 0 {
					perJump = profit / float64(jumps)
				}
				results = append(results, TradeResult{
					Ticker:        ticker,
					From:          from,
					To:            to,
					Amount:        amount,
					BuyCost:       cost,
					SellRevenue:   revenue,
					Profit:        profit,
					Jumps:         jumps,
					ProfitPerJump: perJump,
				})
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].ProfitPerJump != results[j].ProfitPerJump {
			return results[i].ProfitPerJump > results[j].ProfitPerJump
		}
		return results[i].Profit > results[j].Profit
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
