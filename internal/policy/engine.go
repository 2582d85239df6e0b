// Package policy decides which named routes the current session may open.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Decision values produced by the route policy.
const (
	DecisionAllow     = "allow"
	DecisionLogin     = "login"
	DecisionForbidden = "forbidden"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.route_policy.decision"),
		rego.Module("route_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate runs the policy against input and returns its decision.
// A policy that produces nothing yields DecisionLogin.
func (e *Engine) Evaluate(ctx context.Context, input any) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return DecisionLogin, nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("policy returned %T, want string", results[0].Expressions[0].Value)
}

// DefaultPolicy is the route policy of the app.
const DefaultPolicy = `
package route_policy

public_routes = {"/", "/onboarding"}

decision = "allow" {
	public_routes[input.route]
} else = "login" {
	not input.logged_in
} else = "allow" {
	allowed[input.route]
} else = "forbidden" {
	true
}

allowed[r] {
	r := "/user_profile"
}

allowed[r] {
	input.account_type == "traveler"
	r := "/home"
}

allowed[r] {
	input.account_type == "service_provider"
	r := "/provider_home"
}

allowed[r] {
	input.account_type == "admin"
	r := "/admin"
}
`
