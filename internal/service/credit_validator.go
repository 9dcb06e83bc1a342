package service

import (
	"strings"

	"github.com/noah-isme/study-plan-api/internal/models"
)

// CreditValidator sums distinct selected credits against the policy cap.
type CreditValidator struct {
	policy *Policy
}

// NewCreditValidator constructs a validator.
func NewCreditValidator(policy *Policy) *CreditValidator {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &CreditValidator{policy: policy}
}

// Validate counts each code once; codes absent from the catalog add nothing.
func (v *CreditValidator) Validate(selection []string, catalog *CatalogIndex) models.CreditLoad {
	seen := make(map[string]struct{}, len(selection))
	total := 0.0
	for _, code := range selection {
		code = strings.TrimSpace(code)
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		if entry, ok := catalog.Lookup(code); ok {
			total += entry.Credits
		}
	}
	return models.CreditLoad{
		TotalCredits: total,
		Cap:          v.policy.CreditCap,
		Exceeds:      total > v.policy.CreditCap,
	}
}
