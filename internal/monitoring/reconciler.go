// Package monitoring holds background maintenance loops.
package monitoring

import (
	"database/sql"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// reconciledTables lists the entity tables carrying a denormalized
// bookmark_count, with the ledger item_type their rows are keyed by.
var reconciledTables = []struct {
	table    string
	itemType string
}{
	{"alumni_profiles", "alumni"},
	{"resources", "resource"},
	{"links", "link"},
}

// Reconciler periodically rewrites each entity's bookmark_count from the
// ledger, so any drift between the two self-heals. The write path is
// transactional; this loop exists for defense against historical data and
// out-of-band edits.
type Reconciler struct {
	db       *sql.DB
	schedule cron.Schedule
	done     chan bool
}

// NewReconciler parses the cron cadence (standard 5-field syntax).
func NewReconciler(db *sql.DB, cronExpr string) (*Reconciler, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Reconciler{db: db, schedule: schedule, done: make(chan bool)}, nil
}

// Run starts the reconciliation loop. It runs once immediately, then on the
// cron cadence until Stop is called.
func (r *Reconciler) Run() {
	log.Info().Msg("Starting bookmark counter reconciler")
	r.reconcile()

	for {
		next := r.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-r.done:
			timer.Stop()
			log.Info().Msg("Stopping bookmark counter reconciler")
			return
		case <-timer.C:
			r.reconcile()
		}
	}
}

// Stop halts the reconciler.
func (r *Reconciler) Stop() {
	r.done <- true
}

// reconcile rewrites counters that no longer match the ledger count.
func (r *Reconciler) reconcile() {
	for _, t := range reconciledTables {
		res, err := r.db.Exec(`
			UPDATE `+t.table+` SET bookmark_count = (
				SELECT COUNT(*) FROM bookmarks
				WHERE bookmarks.item_id = `+t.table+`.id AND bookmarks.item_type = ?
			)
			WHERE bookmark_count <> (
				SELECT COUNT(*) FROM bookmarks
				WHERE bookmarks.item_id = `+t.table+`.id AND bookmarks.item_type = ?
			)`, t.itemType, t.itemType)
		if err != nil {
			log.Error().Err(err).Str("table", t.table).Msg("Reconciler: counter rewrite failed")
			continue
		}
		if n, _ := res.RowsAffected(); n > 0 {
			log.Warn().Int64("corrected", n).Str("table", t.table).Msg("Reconciler: corrected drifted bookmark counters")
		}
	}
}
