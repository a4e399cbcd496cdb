package dashboard

import (
	"context"

	"github.com/matzehuels/ghdash/pkg/integrations/github"
	"github.com/matzehuels/ghdash/pkg/observability"
)

// Policy says what a failed upstream fetch does to the whole request.
type Policy int

const (
	// FailHard aborts the request with the fetch's error.
	FailHard Policy = iota
	// DegradeToEmpty replaces the result with an empty value.
	DegradeToEmpty
)

func (p Policy) String() string {
	if p == DegradeToEmpty {
		return "degrade-to-empty"
	}
	return "fail-hard"
}

// Policies is the failure policy of every upstream operation. Operations
// not listed fail hard.
var Policies = map[string]Policy{
	github.OpProfile:       FailHard,
	github.OpRepositories:  FailHard,
	github.OpTotals:        FailHard,
	github.OpCalendar:      DegradeToEmpty,
	github.OpOrganizations: DegradeToEmpty,
}

// apply returns err if op fails hard, or nil after reporting the
// degradation if op degrades.
func apply(ctx context.Context, username, op string, err error) error {
	if err == nil {
		return nil
	}
	if Policies[op] == DegradeToEmpty {
		observability.Dashboard().OnSourceDegraded(ctx, username, op, err)
		return nil
	}
	return err
}
