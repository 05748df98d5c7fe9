package entity

import "time"

const Placeholder = "—"

type Status string

const (
	StatusValid   Status = "VALID"
	StatusInvalid Status = "INVALID"
	StatusWarning Status = "WARNING"
)

type ReportRow struct {
	Course  string `json:"course"`
	Section string `json:"section"`
	File    string `json:"file"`
	Status  Status `json:"status"`
	Reason  string `json:"reason"`
}

func (r ReportRow) Values() []string {
	return []string{r.Course, r.Section, r.File, string(r.Status), r.Reason}
}

type Summary struct {
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
	Warning int `json:"warning"`
}

func (s Summary) Total() int {
	return s.Valid + s.Invalid + s.Warning
}

// Run describes one validation pass over a storage root.
type Run struct {
	ID         string
	RootID     string
	StartedAt  time.Time
	FinishedAt time.Time
	ReportPath string // Empty when no report file was written
	Partial    bool   // Set when the run was aborted and only collected rows were flushed
	Summary    Summary
}
