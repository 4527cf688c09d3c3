package orchestrator

import (
	"time"

	"github.com/mlbuild/xgbinst/internal/pybind"
)

// StageResult records the outcome of one executed stage.
type StageResult struct {
	Stage    Stage
	Err      error
	Duration time.Duration
}

// Report describes one orchestration run. It replaces the bare boolean the
// caller would otherwise have to interpret: it says how far the run got,
// what each stage did, and what the package probe saw before and after.
type Report struct {
	// Ref is the source ref that was checked out, empty for the default branch.
	Ref string

	// Stages lists executed stages in order.
	Stages []StageResult

	// Reached is the last stage that started.
	Reached Stage

	// Before and After are the package probe snapshots taken around the
	// run. Comparing them distinguishes a fresh install from a stale one.
	Before, After pybind.Package
}

// OK reports whether every executed stage succeeded and the package is
// present afterwards.
func (r *Report) OK() bool {
	for _, s := range r.Stages {
		if s.Err != nil {
			return false
		}
	}
	return r.After.Found()
}

// Fresh reports whether the run itself changed the installed package, as
// opposed to an install left over from an earlier run.
func (r *Report) Fresh() bool {
	return r.After.Found() && r.After != r.Before
}

func (r *Report) record(stage Stage, start time.Time, err error) {
	r.Reached = stage
	r.Stages = append(r.Stages, StageResult{
		Stage:    stage,
		Err:      err,
		Duration: time.Since(start),
	})
}
