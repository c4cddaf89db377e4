// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"
	"reflect"
	"runtime"
	"strings"
)

// Namer is implemented by use cases that choose their own name in
// transitions, logs and metrics.
type Namer interface {
	Name() string
}

// Name returns the descriptive name of a use case.
//
// A [Namer] supplies its own name. A [Func] is named after the function it
// wraps, and any other use case after its type, e.g. "jobs.SetID".
func Name(useCase UseCase) string {
	switch uc := useCase.(type) {
	case nil:
		return "<nil>"
	case Namer:
		return uc.Name()
	case Func:
		fn := runtime.FuncForPC(reflect.ValueOf(uc).Pointer())
		if fn == nil {
			return "<func>"
		}
		return extractFunctionName(fn.Name())
	}
	t := reflect.TypeOf(useCase)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// Named wraps a use case with a fixed name.
//
// Declared attributes of the wrapped use case are kept. A [Flow] is renamed
// with [Flow.Named] so that its steps are still recorded one by one.
func Named(name string, useCase UseCase) UseCase {
	if f, ok := useCase.(*Flow); ok {
		return f.Named(name)
	}
	return &namedUseCase{name: name, useCase: useCase}
}

type namedUseCase struct {
	name    string
	useCase UseCase
}

func (n *namedUseCase) Call(ctx context.Context, attrs Attributes) *Result {
	return n.useCase.Call(ctx, attrs)
}

func (n *namedUseCase) Name() string { return n.name }

func (n *namedUseCase) Unwrap() UseCase { return n.useCase }

func (n *namedUseCase) DeclaredAttributes() []string {
	return declaredAttributes(n.useCase)
}

// declaredAttributes returns the names a use case declares, or nil if it
// accepts the whole view.
func declaredAttributes(useCase UseCase) []string {
	if d, ok := useCase.(AttributeDeclarer); ok {
		return d.DeclaredAttributes()
	}
	return nil
}

// extractFunctionName extracts the simple function name from a full Go function path.
//
// Examples:
//   - "github.com/mfbmina/ucase/internal/jobs.Validate" -> "jobs.Validate"
//   - "main.(*Server).Handle" -> "main.Server.Handle"
//   - "example.com/app/jobs.init.func1" -> "jobs.init.func1"
func extractFunctionName(fullName string) string {
	parts := strings.Split(fullName, "/")
	lastPart := parts[len(parts)-1]
	lastPart = strings.NewReplacer("(", "", ")", "", "*", "").Replace(lastPart)
	return lastPart
}
