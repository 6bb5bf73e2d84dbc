package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/policy"
)

// PolicyProvider supplies the current operating policy (delivery zones,
// loyalty program, promo offer, fees). Implementations parse the stored
// configuration once and hand out the immutable typed value.
type PolicyProvider interface {
	// Get returns the current operating policy.
	Get(ctx context.Context) (policy.Policy, error)
}
