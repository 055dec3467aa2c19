package sim

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Status int

const (
	RUNNING   Status = iota // Submitted to a backend and not yet finished.
	SUCCEEDED               // Finished successfully.
	FAILED                  // Finished with failure.
)

func (s Status) String() string {
	switch s {
	case RUNNING:
		return "running"
	case SUCCEEDED:
		return "succeeded"
	case FAILED:
		return "failed"
	default:
		return "unknown"
	}
}

// Job tracks a single submission to a backend. Backends run synchronously,
// so a returned job has always finished.
type Job struct {
	ID      string
	Backend string
	Status  Status
	Created strfmt.DateTime
	Ended   strfmt.DateTime

	result *Result
	err    error
}

func newJob(backend string) *Job {
	return &Job{
		ID:      uuid.New().String(),
		Backend: backend,
		Status:  RUNNING,
		Created: strfmt.DateTime(time.Now()),
	}
}

func (j *Job) finish(r *Result, err error) {
	j.Ended = strfmt.DateTime(time.Now())
	if err != nil {
		j.Status = FAILED
		j.err = err
		zap.L().Error(fmt.Sprintf("job(%s) on %s failed. Reason:%s", j.ID, j.Backend, err))
		return
	}
	j.Status = SUCCEEDED
	r.JobID = j.ID
	j.result = r
	zap.L().Debug(fmt.Sprintf("job(%s) on %s succeeded in %s", j.ID, j.Backend, r.ExecutionTime))
}

// Result returns the outcome of the job, or the error it failed with.
func (j *Job) Result() (*Result, error) {
	if j.err != nil {
		return nil, j.err
	}
	return j.result, nil
}
