// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnexpectedResult is the panic value (wrapped) raised when a use case
// returns a nil [Result]. It signals a programmer error, not a failure.
var ErrUnexpectedResult = errors.New("use case returned no result")

// exceptionKey is the data key under which [Safe] stores the recovered panic.
const exceptionKey = "exception"

// RecoveredPanic is an error type that wraps a panic value.
type RecoveredPanic struct {
	Value any
}

func (p *RecoveredPanic) Error() string {
	return fmt.Sprintf("panic recovered: %v", p.Value)
}

// Unwrap returns the panic value if it was an error.
func (p *RecoveredPanic) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}

// Safe wraps a use case so that a panic inside it becomes a failure of type
// [TypeException] instead of crashing the caller. The failure's data holds
// the [*RecoveredPanic] under "exception"; see [Result.OnException].
//
// Wrapping a [Flow] makes every one of its steps safe while keeping each
// step's transition.
//
// Example:
//
//	ucase.Start(ctx, ucase.Safe(importUsers)).
//	    OnException(func(p *ucase.RecoveredPanic, _ ucase.UseCase) {
//	        log.Printf("import crashed: %v", p)
//	    })
func Safe(useCase UseCase) UseCase {
	if f, ok := useCase.(*Flow); ok {
		return &Flow{name: f.name, steps: f.steps, safe: true}
	}
	return &safeUseCase{useCase: useCase}
}

type safeUseCase struct {
	useCase UseCase
}

func (s *safeUseCase) Call(ctx context.Context, attrs Attributes) *Result {
	return callSafely(ctx, s.useCase, attrs)
}

func (s *safeUseCase) Name() string { return Name(s.useCase) }

func (s *safeUseCase) Unwrap() UseCase { return s.useCase }

func (s *safeUseCase) DeclaredAttributes() []string {
	return declaredAttributes(s.useCase)
}

func callSafely(ctx context.Context, useCase UseCase, attrs Attributes) (r *Result) {
	defer func() {
		if v := recover(); v != nil {
			r = Failure(TypeException, NewAttributes(Attr(exceptionKey, &RecoveredPanic{Value: v})))
		}
	}()
	return useCase.Call(ctx, attrs)
}
