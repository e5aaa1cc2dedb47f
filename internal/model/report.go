package model

import "time"

// ClassReport is the persisted result of one class.
type ClassReport struct {
	Summary          `yaml:",inline"`
	InvalidRows      int               `yaml:"invalid_rows"`
	StructuralErrors []StructuralError `yaml:"structural_errors,omitempty"`
	Aborted          bool              `yaml:"aborted"`
	AbortReason      string            `yaml:"abort_reason,omitempty"`
}

// RunReport is the persisted result of one run over all provided classes.
type RunReport struct {
	ID        string        `yaml:"id"`
	StartedAt time.Time     `yaml:"started_at"`
	Duration  time.Duration `yaml:"duration"`
	Journal   string        `yaml:"journal,omitempty"`
	Classes   []ClassReport `yaml:"classes"`
}

// Totals sums the summaries of all classes.
func (r RunReport) Totals() (considered, passed int) {
	for _, class := range r.Classes {
		considered += class.TotalConsidered
		passed += class.TotalPassed
	}

	return considered, passed
}

// Aborted returns the number of classes that ended with a fatal abort.
func (r RunReport) Aborted() int {
	aborted := 0

	for _, class := range r.Classes {
		if class.Aborted {
			aborted++
		}
	}

	return aborted
}

// OK reports whether every considered test passed and no class aborted.
func (r RunReport) OK() bool {
	considered, passed := r.Totals()
	return considered == passed && r.Aborted() == 0
}
