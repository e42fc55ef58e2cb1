// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

const (
	// maxExpressionLength bounds policy expression size.
	maxExpressionLength = 10000

	// costLimit bounds runtime evaluation cost per expression.
	costLimit = 1000000
)

// Sentinel errors for policy evaluation.
var (
	// ErrCompile is returned when a policy expression fails to parse or
	// type-check.
	ErrCompile = errors.New("policy expression compilation failed")

	// ErrEvaluation is returned when evaluating a compiled policy fails.
	ErrEvaluation = errors.New("policy expression evaluation failed")

	// ErrNotBool is returned when a policy does not evaluate to a boolean.
	ErrNotBool = errors.New("policy expression did not return a boolean")
)

// compiledPolicy pairs an expression with its compiled program.
type compiledPolicy struct {
	source  string
	program cel.Program
}

// Gate is a set of compiled admission policies. All policies must pass for
// an upload to be admitted. Safe for concurrent use.
type Gate struct {
	policies []compiledPolicy
}

// Decision is the outcome of evaluating a gate.
type Decision struct {
	// Admitted is true when every policy passed.
	Admitted bool
	// DeniedBy is the source of the first failing policy when not admitted.
	DeniedBy string
}

// NewGate compiles the given CEL expressions into a gate. Every expression
// is evaluated with a single map variable "manifest" and must produce a
// boolean. Compilation failures are reported up front so misconfigured
// policies never reach the upload path.
func NewGate(expressions []string) (*Gate, error) {
	env, err := cel.NewEnv(
		cel.Variable("manifest", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating CEL environment: %w", err)
	}

	policies := make([]compiledPolicy, 0, len(expressions))
	for _, expr := range expressions {
		if len(expr) > maxExpressionLength {
			return nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
				ErrCompile, len(expr), maxExpressionLength)
		}

		ast, issues := env.Compile(expr)
		if issues.Err() != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrCompile, expr, issues.Err())
		}

		program, err := env.Program(ast, cel.CostLimit(costLimit))
		if err != nil {
			return nil, fmt.Errorf("creating CEL program for %q: %w", expr, err)
		}

		policies = append(policies, compiledPolicy{source: expr, program: program})
	}

	return &Gate{policies: policies}, nil
}

// Evaluate runs every policy against the manifest context. A nil gate
// admits everything.
func (g *Gate) Evaluate(manifest map[string]any) (*Decision, error) {
	if g == nil {
		return &Decision{Admitted: true}, nil
	}

	for _, p := range g.policies {
		out, _, err := p.program.Eval(map[string]any{"manifest": manifest})
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %s", ErrEvaluation, p.source, err)
		}

		admitted, ok := out.Value().(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %q returned %T", ErrNotBool, p.source, out.Value())
		}

		if !admitted {
			return &Decision{Admitted: false, DeniedBy: p.source}, nil
		}
	}

	return &Decision{Admitted: true}, nil
}
