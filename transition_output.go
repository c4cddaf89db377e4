// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteTo serializes the transitions as a pretty-printed JSON array.
//
// Returns the number of bytes written and any error. Use [WithStreamTo] on
// the engine for JSON Lines output while flows run.
func (ts Transitions) WriteTo(w io.Writer) (int64, error) {
	data, err := json.MarshalIndent(ts, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal transitions: %w", err)
	}
	data = append(data, '\n')

	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("failed to write transitions: %w", err)
	}
	return int64(n), nil
}

// WriteYAML serializes the transitions as a YAML sequence.
func (ts Transitions) WriteYAML(w io.Writer) (int64, error) {
	data, err := yaml.Marshal([]Transition(ts))
	if err != nil {
		return 0, fmt.Errorf("failed to marshal transitions: %w", err)
	}

	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("failed to write transitions: %w", err)
	}
	return int64(n), nil
}

// WriteText outputs one human-readable line per transition.
//
// Example output:
//
//	jobs.FetchSleeping [] -> success(ok) [job]
//	jobs.SetID [job] -> success(ok) [job]
//	jobs.ValidateID [job] -> success(ok) [job]
//	jobs.SetStateToRunning [job] -> success(state_updated) [job changes]
//
// The first list holds the accessible attributes, the second the names in
// the result.
func (ts Transitions) WriteText(w io.Writer) (int64, error) {
	var total int64
	for _, t := range ts {
		kind := KindSuccess
		if !t.IsSuccess() {
			kind = KindFailure
		}
		outcome := t.Outcome()

		line := fmt.Sprintf("%s [%s] -> %s(%s) [%s]\n",
			t.UseCase.Name,
			strings.Join(t.AccessibleAttributes, " "),
			kind,
			outcome.Type,
			strings.Join(outcome.Result.Keys(), " "),
		)

		n, err := io.WriteString(w, line)
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("failed to write text: %w", err)
		}
	}
	return total, nil
}
