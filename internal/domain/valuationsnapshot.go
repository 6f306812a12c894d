package domain

import "time"

// ValuationSnapshot persisted summary of a valuation run.
// Uses string fields to avoid float precision issues when stored as JSON.
type ValuationSnapshot struct {
	RunID      string    `json:"run_id"`
	Timestamp  time.Time `json:"ts"`
	Stablecoin string    `json:"stablecoin"`
	Total      string    `json:"total"`
	Stable     string    `json:"stable,omitempty"`
	Unresolved []string  `json:"unresolved,omitempty"`
	Rows       int       `json:"rows"`
}

// NewValuationSnapshot creates a snapshot of v tagged with runID.
func NewValuationSnapshot(runID string, v Valuation) ValuationSnapshot {
	var unresolved []string
	if v.Partial() {
		unresolved = v.UnresolvedAssets()
	}

	return ValuationSnapshot{
		RunID:      runID,
		Timestamp:  v.Timestamp,
		Stablecoin: v.Stablecoin,
		Total:      v.Total.String(),
		Stable:     v.StableBalance.String(),
		Unresolved: unresolved,
		Rows:       len(v.Rows),
	}
}

// ValuationSnapshotRecord bundles a snapshot with its WAL index.
type ValuationSnapshotRecord struct {
	Index    uint64
	Snapshot ValuationSnapshot
}
