package model

import "time"

// FileRecord describes one analysed file in a report.
type FileRecord struct {
	Path       Path       `yaml:"path" json:"path"`
	Hash       string     `yaml:"hash,omitempty" json:"hash,omitempty"`
	Categories []Category `yaml:"categories,omitempty" json:"categories,omitempty"`
}

// Report is the result of one analysis session.
type Report struct {
	CreatedAt   time.Time    `yaml:"created_at" json:"created_at"`
	Files       []FileRecord `yaml:"files" json:"files"`
	Findings    []Finding    `yaml:"findings" json:"findings"`
	Diagnostics []Diagnostic `yaml:"diagnostics,omitempty" json:"diagnostics,omitempty"`
}

// FindingsByPath groups findings per file, preserving report order.
func (r Report) FindingsByPath() map[Path][]Finding {
	grouped := make(map[Path][]Finding)

	for _, finding := range r.Findings {
		grouped[finding.Path] = append(grouped[finding.Path], finding)
	}

	return grouped
}
