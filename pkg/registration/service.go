package registration

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	msgDomainRequired     = "Domain name is required"
	msgYearsOutOfRange    = "Years must be a number between 1 and 10"
	msgRegistrantRequired = "Registrant information is required"
	msgDomainUnavailable  = "Domain is not available for registration"

	minYears = 1
	maxYears = 10
)

// Service runs availability checks and registrations against a Registrar.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	registrar Registrar
	validate  *validator.Validate
}

// NewService returns a Service backed by r.
func NewService(r Registrar) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages match the payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Service{registrar: r, validate: v}
}

// CheckAvailability asks the registrar about domains. Registrar failures
// come back as a KindRegistrationFailed *Error.
func (s *Service) CheckAvailability(ctx context.Context, domains []string) ([]Availability, error) {
	results, err := s.registrar.CheckAvailability(ctx, domains)
	if err != nil {
		return nil, RegistrationFailed(err)
	}
	return results, nil
}

// RegisterIfAvailable validates req, re-checks that the domain is still
// available and only then submits the registration. Nothing reaches the
// registrar when validation fails, and Register is never called unless the
// re-check reports the exact domain as available.
func (s *Service) RegisterIfAvailable(ctx context.Context, req Request) (Result, error) {
	reg, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	available, err := s.isAvailable(ctx, reg.Domain)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, DomainUnavailable(msgDomainUnavailable)
	}

	result, err := s.registrar.Register(ctx, reg)
	if err != nil {
		return nil, RegistrationFailed(err)
	}
	return result, nil
}

// prepare performs the structural checks and applies defaults.
func (s *Service) prepare(req Request) (Registration, error) {
	if req.Domain == "" {
		return Registration{}, InvalidInput(msgDomainRequired)
	}

	years, ok := req.Years.Int()
	if !ok || years < minYears || years > maxYears {
		return Registration{}, InvalidInput(msgYearsOutOfRange)
	}

	if req.RegistrantInfo == nil {
		return Registration{}, InvalidInput(msgRegistrantRequired)
	}
	if err := s.checkRegistrant(req.RegistrantInfo); err != nil {
		return Registration{}, err
	}
	if len(req.invalid) > 0 {
		return Registration{}, InvalidInput(req.invalid[0])
	}

	return Registration{
		Domain:            req.Domain,
		Years:             years,
		Registrant:        *req.RegistrantInfo,
		Tech:              req.TechInfo,
		Admin:             req.AdminInfo,
		Aux:               req.AuxInfo,
		Nameservers:       req.Nameservers,
		AddFreeWhoisguard: req.AddFreeWhoisguard.Enabled(),
		EnableWhoisguard:  req.EnableWhoisguard.Enabled(),
	}, nil
}

// checkRegistrant reports the first missing required field, then the first
// field that arrived as an object or array. A malformed field counts as
// present for the required check.
func (s *Service) checkRegistrant(c *ContactInfo) error {
	if err := s.validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return InvalidInput(err.Error())
		}
		for _, fe := range verrs {
			if !c.isInvalid(fe.Field()) {
				return InvalidInput("Registrant " + fe.Field() + " is required")
			}
		}
	}
	if len(c.invalid) > 0 {
		return InvalidInput("Registrant " + c.invalid[0] + " must be a string")
	}
	return nil
}

// isAvailable re-checks a single domain. A response that omits the domain
// counts as unavailable.
func (s *Service) isAvailable(ctx context.Context, domain string) (bool, error) {
	results, err := s.registrar.CheckAvailability(ctx, []string{domain})
	if err != nil {
		return false, RegistrationFailed(err)
	}
	for _, r := range results {
		if r.Domain == domain && r.Available {
			return true, nil
		}
	}
	return false, nil
}
