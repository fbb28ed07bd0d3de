// Package registration validates domain registration requests and sequences
// the calls to the external registrar: a fresh availability check first,
// then the registration itself.
package registration

import (
	"context"

	"github.com/vit0-9/registrar_api/models"
)

// Availability is the registrar's verdict for a single domain.
type Availability struct {
	Domain    string `json:"domain" example:"example.com"`
	Available bool   `json:"available" example:"true"`
}

// ContactInfo is a registrant, technical, administrative or billing contact.
// Field order matters: required fields are checked top to bottom and the
// first empty one is reported.
type ContactInfo struct {
	FirstName     models.Text `json:"firstName" validate:"required"`
	LastName      models.Text `json:"lastName" validate:"required"`
	Address1      models.Text `json:"address1" validate:"required"`
	City          models.Text `json:"city" validate:"required"`
	StateProvince models.Text `json:"stateProvince" validate:"required"`
	PostalCode    models.Text `json:"postalCode" validate:"required"`
	Country       models.Text `json:"country" validate:"required"`
	Phone         models.Text `json:"phone" validate:"required"`
	EmailAddress  models.Text `json:"emailAddress" validate:"required"`

	OrganizationName    models.Text `json:"organizationName,omitempty"`
	JobTitle            models.Text `json:"jobTitle,omitempty"`
	Address2            models.Text `json:"address2,omitempty"`
	StateProvinceChoice models.Text `json:"stateProvinceChoice,omitempty"`
	PhoneExt            models.Text `json:"phoneExt,omitempty"`
	Fax                 models.Text `json:"fax,omitempty"`

	// JSON names of fields that arrived as objects or arrays.
	invalid []string
}

// Request is the caller's registration payload as decoded from JSON.
// Nameservers may also be sent as one comma-separated string.
type Request struct {
	Domain            string       `json:"domain" example:"example.com"`
	Years             models.Years `json:"years" swaggertype:"integer" example:"1"`
	RegistrantInfo    *ContactInfo `json:"registrantInfo"`
	TechInfo          *ContactInfo `json:"techInfo,omitempty"`
	AdminInfo         *ContactInfo `json:"adminInfo,omitempty"`
	AuxInfo           *ContactInfo `json:"auxInfo,omitempty"`
	Nameservers       []string     `json:"nameservers,omitempty"`
	AddFreeWhoisguard models.Flag  `json:"addFreeWhoisguard" swaggertype:"boolean" example:"true"`
	EnableWhoisguard  models.Flag  `json:"enableWhoisguard" swaggertype:"boolean" example:"true"`

	invalid []string
}

// Registration is a validated request with defaults applied, ready to be
// submitted to a Registrar.
type Registration struct {
	Domain            string
	Years             int
	Registrant        ContactInfo
	Tech              *ContactInfo
	Admin             *ContactInfo
	Aux               *ContactInfo
	Nameservers       []string
	AddFreeWhoisguard bool
	EnableWhoisguard  bool
}

// Result is whatever the registrar returned for a successful registration.
// It is handed back to the caller untouched.
type Result = any

// Registrar is the external registration service.
type Registrar interface {
	CheckAvailability(ctx context.Context, domains []string) ([]Availability, error)
	Register(ctx context.Context, reg Registration) (Result, error)
}
