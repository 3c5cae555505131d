package entity

import "time"

type RunStatus string

const (
	RunSuccess      RunStatus = "SUCCESS"
	RunNoData       RunStatus = "NO_DATA"
	RunNoNewRecords RunStatus = "NO_NEW_RECORDS"
	RunFailed       RunStatus = "FAILED"
)

// CollectionRun is the audit record of one collection cycle.
type CollectionRun struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	StartedAt  time.Time `gorm:"not null;index" json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Status     RunStatus `gorm:"size:20;not null" json:"status"`
	Fetched    int       `json:"fetched"`
	Appended   int       `json:"appended"`
	Skipped    int       `json:"skipped"`
	Error      string    `json:"error,omitempty"`
}

func (CollectionRun) TableName() string {
	return "collection_runs"
}
