// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"
	"testing"
)

type structUseCase struct{}

func (structUseCase) Call(context.Context, Attributes) *Result { return Ok(Attributes{}) }

type pointerUseCase struct{}

func (*pointerUseCase) Call(context.Context, Attributes) *Result { return Ok(Attributes{}) }

func namedFunc(context.Context, Attributes) *Result { return Ok(Attributes{}) }

func TestName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		useCase  UseCase
		expected string
	}{
		{"nil", nil, "<nil>"},
		{"struct", structUseCase{}, "ucase.structUseCase"},
		{"pointer", &pointerUseCase{}, "ucase.pointerUseCase"},
		{"func", Func(namedFunc), "ucase.namedFunc"},
		{"named", Named("custom", structUseCase{}), "custom"},
		{"namer", newRecorder("recorder", nil), "recorder"},
		{"unnamed flow", NewFlow(structUseCase{}), "Flow"},
		{"named flow", NewFlow(structUseCase{}).Named("jobs.Build"), "jobs.Build"},
		{"named wraps flow", Named("jobs.Run", NewFlow(structUseCase{})), "jobs.Run"},
		{"safe", Safe(structUseCase{}), "ucase.structUseCase"},
		{"strict", Strict(structUseCase{}, Schema{}), "ucase.structUseCase"},
		{"retry", Retry(Named("inner", structUseCase{})), "inner"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Name(tc.useCase); got != tc.expected {
				t.Errorf("Name() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestNamedFlowStaysExpanded(t *testing.T) {
	t.Parallel()

	uc := Named("pair", NewFlow(set("a", "a", 1), set("b", "b", 2)))
	if _, ok := uc.(*Flow); !ok {
		t.Fatalf("expected a *Flow, got %T", uc)
	}

	names := tracingEngine().Start(t.Context(), uc).Transitions().Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected [a b], got %v", names)
	}
}

func TestNamedKeepsDeclaredAttributes(t *testing.T) {
	t.Parallel()

	named := Named("renamed", declaringRecorder{newRecorder("inner", nil, "x")})
	d, ok := named.(AttributeDeclarer)
	if !ok {
		t.Fatal("expected an AttributeDeclarer")
	}
	if got := d.DeclaredAttributes(); len(got) != 1 || got[0] != "x" {
		t.Errorf("DeclaredAttributes() = %v, want [x]", got)
	}

	plain := Named("renamed", structUseCase{}).(AttributeDeclarer)
	if got := plain.DeclaredAttributes(); got != nil {
		t.Errorf("DeclaredAttributes() = %v, want nil", got)
	}
}

func TestExtractFunctionName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected string
	}{
		{"github.com/mfbmina/ucase/internal/jobs.Validate", "jobs.Validate"},
		{"main.(*Server).Handle", "main.Server.Handle"},
		{"example.com/app/jobs.init.func1", "jobs.init.func1"},
		{"simple", "simple"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			if got := extractFunctionName(tc.input); got != tc.expected {
				t.Errorf("extractFunctionName(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
