package db

import (
	"log"
	"time"

	"prunkit/internal/market"
)

// Freshness of a cached interval set; stale pairs are refetched.
const historyTTL = 24 * time.Hour

// Days of intervals retained per (ticker, exchange) pair.
const retentionDays = 90

// GetPriceHistory retrieves cached price intervals for a ticker/exchange
// pair. Returns nil, false when absent or older than the freshness window.
func (d *DB) GetPriceHistory(ticker, exchange string) ([]market.PriceHistoryEntry, bool) {
	var updatedAt string
	err := d.sql.QueryRow(
		"SELECT updated_at FROM price_history_meta WHERE ticker=? AND exchange=?",
		ticker, exchange,
	).Scan(&updatedAt)
	if err != nil {
		return nil, false
	}
	t, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil || time.Since(t) > historyTTL {
		return nil, false
	}

	rows, err := d.sql.Query(
		"SELECT date_epoch_ms, open, close, high, low, traded, volume FROM price_history WHERE ticker=? AND exchange=? ORDER BY date_epoch_ms",
		ticker, exchange,
	)
	if err != nil {
		return nil, false
	}
	defer rows.Close()

	var entries []market.PriceHistoryEntry
	for rows.Next() {
		var e market.PriceHistoryEntry
		if err := rows.Scan(&e.DateEpochMs, &e.Open, &e.Close, &e.High, &e.Low, &e.Traded, &e.Volume); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return nil, false
	}
	return entries, true
}

// SetPriceHistory replaces the stored intervals for a ticker/exchange pair.
// Only the retention window is kept to bound database growth.
func (d *DB) SetPriceHistory(ticker, exchange string, entries []market.PriceHistoryEntry) {
	tx, err := d.sql.Begin()
	if err != nil {
		return
	}
	defer tx.Rollback()

	tx.Exec("DELETE FROM price_history WHERE ticker=? AND exchange=?", ticker, exchange)

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO price_history (ticker, exchange, date_epoch_ms, open, close, high, low, traded, volume) VALUES (?,?,?,?,?,?,?,?,?)")
	if err != nil {
		return
	}
	defer stmt.Close()

	cutoff := time.Now().AddDate(0, 0, -retentionDays).UnixMilli()
	for _, e := range entries {
		if e.DateEpochMs >= cutoff {
			stmt.Exec(ticker, exchange, e.DateEpochMs, e.Open, e.Close, e.High, e.Low, e.Traded, e.Volume)
		}
	}

	tx.Exec(
		"INSERT OR REPLACE INTO price_history_meta (ticker, exchange, updated_at) VALUES (?,?,?)",
		ticker, exchange, time.Now().UTC().Format(time.RFC3339),
	)

	tx.Commit()
}

// CleanupOldHistory removes intervals past the retention window and meta
// rows that have not been refreshed in 30 days. Call on startup.
func (d *DB) CleanupOldHistory() {
	cutoffDate := time.Now().AddDate(0, 0, -retentionDays).UnixMilli()
	cutoffMeta := time.Now().AddDate(0, 0, -30).Format(time.RFC3339)

	res, err := d.sql.Exec("DELETE FROM price_history WHERE date_epoch_ms < ?", cutoffDate)
	if err != nil {
		log.Printf("[DB] CleanupOldHistory: history delete error: %v", err)
	} else if n, _ := res.RowsAffected(); n > 0 {
		log.Printf("[DB] CleanupOldHistory: removed %d old history rows", n)
	}

	res, err = d.sql.Exec("DELETE FROM price_history_meta WHERE updated_at < ?", cutoffMeta)
	if err != nil {
		log.Printf("[DB] CleanupOldHistory: meta delete error: %v", err)
	} else if n, _ := res.RowsAffected(); n > 0 {
		log.Printf("[DB] CleanupOldHistory: removed %d stale meta entries", n)
	}

	res, err = d.sql.Exec(`
		DELETE FROM price_history
		WHERE (ticker, exchange) NOT IN (
			SELECT ticker, exchange FROM price_history_meta
		)
	`)
	if err != nil {
		log.Printf("[DB] CleanupOldHistory: orphan delete error: %v", err)
	} else if n, _ := res.RowsAffected(); n > 0 {
		log.Printf("[DB] CleanupOldHistory: removed %d orphaned history rows", n)
	}
}
