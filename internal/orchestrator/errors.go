package orchestrator

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying which phase of a run failed. Match with
// errors.Is against the error returned by Run.
var (
	ErrAcquire   = errors.New("source acquisition failed")
	ErrConfigure = errors.New("build configuration failed")
	ErrBuild     = errors.New("compilation failed")
	ErrInstall   = errors.New("install failed")
	ErrProbe     = errors.New("install probe failed")
)

// StageError reports a failed stage together with the tail of the tool
// output captured while it ran.
type StageError struct {
	Stage Stage
	Err   error
	Tail  string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Is matches the sentinel of the failed stage.
func (e *StageError) Is(target error) bool {
	return target == sentinelFor(e.Stage)
}

func sentinelFor(stage Stage) error {
	switch stage {
	case StageAcquire:
		return ErrAcquire
	case StageConfigure:
		return ErrConfigure
	case StageBuild:
		return ErrBuild
	case StageInstall:
		return ErrInstall
	case StageProbe:
		return ErrProbe
	}
	return nil
}

func stageErr(stage Stage, err error, tail string) *StageError {
	return &StageError{Stage: stage, Err: err, Tail: tail}
}
