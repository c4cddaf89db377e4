// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"context"
	"maps"
	"slices"
)

// Schema declares the attributes a strict use case requires, each with a
// predicate its value must satisfy. A nil predicate only requires presence.
type Schema map[string]Predicate

// Strict wraps a use case with a declared attribute contract.
//
// Before the wrapped use case runs, every attribute in the schema must be
// present and satisfy its predicate. Otherwise the result is a failure of
// type [TypeInvalidData] whose data lists the "missing" and "invalid"
// attribute names (each key only when non-empty), and the wrapped use case is
// never called.
//
// The wrapper declares the schema's attributes, so a strict use case inside
// a flow only receives those attributes.
//
// Example:
//
//	multiply := ucase.Strict(
//	    ucase.Func(func(_ context.Context, attrs ucase.Attributes) *ucase.Result {
//	        a, _ := ucase.Get[int](attrs, "a")
//	        b, _ := ucase.Get[int](attrs, "b")
//	        return ucase.Ok(ucase.NewAttributes(ucase.Attr("number", a*b)))
//	    }),
//	    ucase.Schema{"a": ucase.IsType[int](), "b": ucase.IsType[int]()},
//	)
func Strict(useCase UseCase, schema Schema) UseCase {
	return &strictUseCase{
		useCase: useCase,
		schema:  maps.Clone(schema),
		names:   slices.Sorted(maps.Keys(schema)),
	}
}

type strictUseCase struct {
	useCase UseCase
	schema  Schema
	names   []string
}

func (s *strictUseCase) Call(ctx context.Context, attrs Attributes) *Result {
	var missing, invalid []string
	for _, name := range s.names {
		value, ok := attrs.Get(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		if p := s.schema[name]; p != nil && !p(value) {
			invalid = append(invalid, name)
		}
	}
	if len(missing) == 0 && len(invalid) == 0 {
		return s.useCase.Call(ctx, attrs)
	}

	var data []Attribute
	if len(missing) > 0 {
		data = append(data, Attr("missing", missing))
	}
	if len(invalid) > 0 {
		data = append(data, Attr("invalid", invalid))
	}
	return Failure(TypeInvalidData, NewAttributes(data...))
}

func (s *strictUseCase) DeclaredAttributes() []string {
	return append([]string{}, s.names...)
}

func (s *strictUseCase) Name() string { return Name(s.useCase) }

func (s *strictUseCase) Unwrap() UseCase { return s.useCase }
