package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventRow is one recorded turn event.
type EventRow struct {
	Turn       int    `db:"turn"`
	CreatureID int32  `db:"creature_id"`
	Species    string `db:"species"`
	Kind       string `db:"kind"`
	DX         int    `db:"dx"`
	DY         int    `db:"dy"`
	X          int    `db:"x"`
	Y          int    `db:"y"`
	Detail     string `db:"detail"`
}

// Recorder buffers turn events in memory and writes them to sqlite in a
// single transaction per turn. A recorder belongs to exactly one run.
type Recorder struct {
	db      *DB
	runID   string
	pending []EventRow
}

// NewRecorder inserts a fresh run row and returns a recorder bound to it.
func NewRecorder(ctx context.Context, db *DB, seed int64, mapID, creaturesStart int) (*Recorder, error) {
	r := &Recorder{
		db:    db,
		runID: uuid.New().String(),
	}
	_, err := db.Conn.ExecContext(ctx,
		`INSERT INTO runs (id, seed, map_id, started_at, creatures_start)
		 VALUES (?, ?, ?, ?, ?)`,
		r.runID, seed, mapID, time.Now().UTC().Format(time.RFC3339), creaturesStart,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return r, nil
}

// RunID returns the id of the run being recorded.
func (r *Recorder) RunID() string { return r.runID }

// Record buffers one event for the next Flush.
func (r *Recorder) Record(row EventRow) {
	r.pending = append(r.pending, row)
}

// Pending reports how many events are buffered but not yet flushed.
func (r *Recorder) Pending() int { return len(r.pending) }

// Flush writes all buffered events in one transaction. The buffer is
// cleared either way so a failed turn does not poison the next one.
func (r *Recorder) Flush(ctx context.Context) error {
	if len(r.pending) == 0 {
		return nil
	}
	rows := r.pending
	r.pending = r.pending[:0]

	tx, err := r.db.Conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("flush begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO turn_events
		(run_id, turn, creature_id, species, kind, dx, dy, x, y, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("flush prepare: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			r.runID, row.Turn, row.CreatureID, row.Species, row.Kind,
			row.DX, row.DY, row.X, row.Y, row.Detail,
		); err != nil {
			return fmt.Errorf("flush insert turn %d: %w", row.Turn, err)
		}
	}

	return tx.Commit()
}

// Finish stamps the run row with its end time and final counts.
func (r *Recorder) Finish(ctx context.Context, turns, creaturesEnd int) error {
	_, err := r.db.Conn.ExecContext(ctx,
		`UPDATE runs SET ended_at = ?, turns = ?, creatures_end = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), turns, creaturesEnd, r.runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// EventsForTurn returns the recorded events of one turn in insert order.
func (r *Recorder) EventsForTurn(ctx context.Context, turn int) ([]EventRow, error) {
	var rows []EventRow
	err := r.db.Conn.SelectContext(ctx, &rows,
		`SELECT turn, creature_id, species, kind, dx, dy, x, y, detail
		 FROM turn_events WHERE run_id = ? AND turn = ? ORDER BY id`,
		r.runID, turn,
	)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	return rows, nil
}

// EventCount returns the total number of events recorded for this run.
func (r *Recorder) EventCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.Conn.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM turn_events WHERE run_id = ?`, r.runID,
	)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
