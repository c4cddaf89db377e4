// SPDX-License-Identifier: Apache-2.0

// Package jobs is a small job lifecycle domain built from use cases. It backs
// the examples and the flow tests.
package jobs

import "fmt"

// State is the lifecycle state of a job.
type State string

const (
	Sleeping State = "sleeping"
	Running  State = "running"
)

// Job is an immutable job entity. The ID is empty until one is assigned.
type Job struct {
	ID    string `json:"id" yaml:"id"`
	State State  `json:"state" yaml:"state"`
}

// Sleeping reports whether the job has not started yet.
func (j Job) Sleeping() bool { return j.State == Sleeping }

// Running reports whether the job has started.
func (j Job) Running() bool { return j.State == Running }

// WithID returns a copy of the job with the given ID.
func (j Job) WithID(id string) Job {
	j.ID = id
	return j
}

// WithState returns a copy of the job in the given state, along with the
// change it represents.
func (j Job) WithState(state State) (Job, Changes) {
	changes := Changes{}
	if j.State != state {
		changes["state"] = Change{From: j.State, To: state}
	}
	j.State = state
	return j, changes
}

// Change is the before and after value of one field.
type Change struct {
	From any `json:"from" yaml:"from"`
	To   any `json:"to" yaml:"to"`
}

// Changes records the fields changed by an update.
type Changes map[string]Change

// Changed reports whether field changed from one value to another. Values
// are compared by their string form, so Sleeping and "sleeping" match.
func (c Changes) Changed(field string, from, to any) bool {
	change, ok := c[field]
	return ok && fmt.Sprint(change.From) == fmt.Sprint(from) && fmt.Sprint(change.To) == fmt.Sprint(to)
}
