package model

import (
	"net/url"
)

type Policy struct {
	ID             string  `json:"_id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Premium        float64 `json:"premium"`
	CoverageAmount float64 `json:"coverageAmount"`
	Description    string  `json:"description"`
}

type TakeRequest struct {
	PolicyID  string `json:"policyId"`
	UserEmail string `json:"userEmail"`
}

// ClaimIntent is handed to the claim submission flow through its URL only.
type ClaimIntent struct {
	PolicyID string
	Email    string
}

func (c ClaimIntent) Path() string {
	return "/submit-claim/" + url.PathEscape(c.PolicyID) + "/" + url.PathEscape(c.Email)
}

// WithoutPolicy returns the policies minus the one with the given id.
func WithoutPolicy(policies []Policy, id string) []Policy {
	out := make([]Policy, 0, len(policies))
	for _, p := range policies {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
