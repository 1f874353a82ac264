package model

import "fmt"

// IssueKind classifies a degraded outcome inside the pipeline. Issues are
// values, not errors: a stage that hits one still returns its best-effort
// table, and the pipeline keeps going.
type IssueKind string

const (
	// IssueMissingColumn means a stage's required column was absent and the
	// stage returned its input unchanged.
	IssueMissingColumn IssueKind = "missing_column"
	// IssueMissingReference means a static reference table was unavailable
	// and the dependent join was skipped.
	IssueMissingReference IssueKind = "missing_reference"
	// IssueKeyCollision means a reference table had duplicate keys and only
	// the first occurrence was kept.
	IssueKeyCollision IssueKind = "key_collision"
	// IssueStageFailure means a stage failed structurally but produced a
	// partial result the pipeline chose to propagate.
	IssueStageFailure IssueKind = "stage_failure"
)

// Issue describes one degraded outcome, attributable to a stage.
type Issue struct {
	Stage   string    `json:"stage"`
	Kind    IssueKind `json:"kind"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Stage, i.Kind, i.Message)
}
