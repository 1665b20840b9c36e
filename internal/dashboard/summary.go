package dashboard

import (
	"time"

	"churnboard/domain/core"
	"churnboard/domain/customer"
	"churnboard/internal/dataset"
)

// Summary is everything the dashboard shows for one filter over one snapshot.
type Summary struct {
	SnapshotID  core.SnapshotID `json:"snapshot_id"`
	Filter      customer.Filter `json:"filter"`
	GeneratedAt time.Time       `json:"generated_at"`

	// Empty is set when the filter leaves no rows. Metrics are then zero and
	// insight averages NaN; callers show a notice instead of charts.
	Empty bool `json:"empty"`

	Metrics  customer.MetricsResult `json:"metrics"`
	Insights customer.InsightResult `json:"insights"`
	Delay    []customer.DelayStats  `json:"delay"`
	ByTier   []customer.GroupChurn  `json:"by_tier"`
	ByGender []customer.GroupChurn  `json:"by_gender"`

	Preview []customer.Record `json:"preview"`
	Options dataset.Options   `json:"options"`
}

// Status describes the last load attempt.
type Status struct {
	Loaded     bool               `json:"loaded"`
	Source     string             `json:"source"`
	SnapshotID core.SnapshotID    `json:"snapshot_id,omitempty"`
	Rows       int                `json:"rows"`
	LoadedAt   time.Time          `json:"loaded_at"`
	Report     dataset.LoadReport `json:"report"`
	Code       string             `json:"code,omitempty"`
	Error      string             `json:"error,omitempty"`
	Missing    []string           `json:"missing,omitempty"`
}
