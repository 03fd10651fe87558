package model

import "fmt"

// Severity grades a finding. The engine treats every finding as an advisory.
type Severity string

// SeverityAdvisory is the single severity emitted by the engine.
const SeverityAdvisory Severity = "advisory"

// Finding is one reported violation.
type Finding struct {
	Rule     string   `yaml:"rule" json:"rule"`
	Message  string   `yaml:"message" json:"message"`
	Path     Path     `yaml:"path" json:"path"`
	Line     int      `yaml:"line" json:"line"`
	Severity Severity `yaml:"severity" json:"severity"`
}

// String formats the finding the way reporters print it: path:line - message.
func (f Finding) String() string {
	return fmt.Sprintf("%s:%d - %s", f.Path, f.Line, f.Message)
}

// Diagnostic records a rule callback that crashed. It is not a violation of
// the analysed code and never counts as a finding.
type Diagnostic struct {
	Rule    string `yaml:"rule" json:"rule"`
	Phase   Phase  `yaml:"phase" json:"phase"`
	Path    Path   `yaml:"path" json:"path"`
	Line    int    `yaml:"line" json:"line"`
	Message string `yaml:"message" json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d - rule %s failed during %s: %s", d.Path, d.Line, d.Rule, d.Phase, d.Message)
}
