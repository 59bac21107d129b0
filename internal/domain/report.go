package domain

import "time"

// ReportResult describes a generated report file and where it was published
type ReportResult struct {
	Path        string    `json:"path"`
	ObjectKey   string    `json:"object_key,omitempty"`
	Rows        int       `json:"rows"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ImportResult summarizes an inventory CSV import
type ImportResult struct {
	Files    []string `json:"files,omitempty"`
	Created  int      `json:"created"`
	Replaced int      `json:"replaced"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Add folds another result into r.
func (r *ImportResult) Add(other ImportResult) {
	r.Files = append(r.Files, other.Files...)
	r.Created += other.Created
	r.Replaced += other.Replaced
	r.Skipped += other.Skipped
	r.Errors = append(r.Errors, other.Errors...)
}
