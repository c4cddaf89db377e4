// SPDX-License-Identifier: Apache-2.0

package jobs

import (
	"context"

	"github.com/google/uuid"

	"github.com/mfbmina/ucase"
)

// Result types specific to jobs.
const (
	TypeStateUpdated           ucase.Type = "state_updated"
	TypeInvalidUUID            ucase.Type = "invalid_uuid"
	TypeInvalidStateTransition ucase.Type = "invalid_state_transition"
)

var (
	// Build creates a sleeping job with an ID.
	Build = ucase.NewFlow(FetchSleeping{}, SetID{}).Named("jobs.Build")

	// Run validates a job's ID and starts it.
	Run = ucase.NewFlow(ValidateID{}, SetStateToRunning{}).Named("jobs.Run")
)

var jobAttribute = []string{"job"}

// jobFrom extracts the job attribute, or returns the failure to report.
func jobFrom(attrs ucase.Attributes) (Job, *ucase.Result) {
	job, ok := ucase.Get[Job](attrs, "job")
	if ok {
		return job, nil
	}
	if attrs.Has("job") {
		return Job{}, ucase.Failure(ucase.TypeInvalidData, ucase.NewAttributes(ucase.Attr("invalid", jobAttribute)))
	}
	return Job{}, ucase.Failure(ucase.TypeInvalidData, ucase.NewAttributes(ucase.Attr("missing", jobAttribute)))
}

// FetchSleeping returns a new sleeping job without an ID.
type FetchSleeping struct{}

func (FetchSleeping) Call(context.Context, ucase.Attributes) *ucase.Result {
	return ucase.Ok(ucase.NewAttributes(ucase.Attr("job", Job{State: Sleeping})))
}

// SetID assigns a random UUID to the job.
type SetID struct{}

func (SetID) DeclaredAttributes() []string { return jobAttribute }

func (SetID) Call(_ context.Context, attrs ucase.Attributes) *ucase.Result {
	job, failure := jobFrom(attrs)
	if failure != nil {
		return failure
	}
	return ucase.Ok(ucase.NewAttributes(ucase.Attr("job", job.WithID(uuid.NewString()))))
}

// ValidateID checks that the job's ID is a UUID. The failure of type
// invalid_uuid carries the job.
type ValidateID struct{}

func (ValidateID) DeclaredAttributes() []string { return jobAttribute }

func (ValidateID) Call(_ context.Context, attrs ucase.Attributes) *ucase.Result {
	job, failure := jobFrom(attrs)
	if failure != nil {
		return failure
	}
	data := ucase.NewAttributes(ucase.Attr("job", job))
	if _, err := uuid.Parse(job.ID); err != nil {
		return ucase.Failure(TypeInvalidUUID, data)
	}
	return ucase.Ok(data)
}

// SetStateToRunning starts a sleeping job. It fails with
// invalid_state_transition for any other job.
type SetStateToRunning struct{}

func (SetStateToRunning) DeclaredAttributes() []string { return jobAttribute }

func (SetStateToRunning) Call(_ context.Context, attrs ucase.Attributes) *ucase.Result {
	job, failure := jobFrom(attrs)
	if failure != nil {
		return failure
	}
	if !job.Sleeping() {
		return ucase.Failure(TypeInvalidStateTransition, ucase.Attributes{})
	}
	running, changes := job.WithState(Running)
	return ucase.Success(TypeStateUpdated, ucase.NewAttributes(
		ucase.Attr("job", running),
		ucase.Attr("changes", changes),
	))
}
