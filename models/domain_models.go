// File: models/domain_models.go
package models

// CheckDomainsRequest is the body of a domain availability check.
type CheckDomainsRequest struct {
	Domains []string `json:"domains" binding:"required,min=1" example:"example.com"`
}
