package registration

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/vit0-9/registrar_api/models"
)

// UnmarshalJSON decodes a registration payload without failing on the type
// of any single field. A non-string domain decodes as missing and a truthy
// non-object registrant as an empty contact, so the required-field checks
// still run in order. Other badly shaped fields are kept and reported by
// the Service once those checks pass. Only a body that is not a JSON
// object is an error.
func (r *Request) UnmarshalJSON(data []byte) error {
	var raw struct {
		Domain            json.RawMessage `json:"domain"`
		Years             models.Years    `json:"years"`
		RegistrantInfo    json.RawMessage `json:"registrantInfo"`
		TechInfo          json.RawMessage `json:"techInfo"`
		AdminInfo         json.RawMessage `json:"adminInfo"`
		AuxInfo           json.RawMessage `json:"auxInfo"`
		Nameservers       json.RawMessage `json:"nameservers"`
		AddFreeWhoisguard models.Flag     `json:"addFreeWhoisguard"`
		EnableWhoisguard  models.Flag     `json:"enableWhoisguard"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Request{
		Years:             raw.Years,
		AddFreeWhoisguard: raw.AddFreeWhoisguard,
		EnableWhoisguard:  raw.EnableWhoisguard,
	}

	var domain models.Text
	if len(raw.Domain) > 0 && json.Unmarshal(raw.Domain, &domain) == nil {
		r.Domain = domain.String()
	}

	switch {
	case isEmpty(raw.RegistrantInfo):
	case isObject(raw.RegistrantInfo):
		r.RegistrantInfo = new(ContactInfo)
		_ = r.RegistrantInfo.UnmarshalJSON(raw.RegistrantInfo)
	default:
		r.RegistrantInfo = &ContactInfo{}
	}

	r.TechInfo = r.decodeContact("techInfo", raw.TechInfo)
	r.AdminInfo = r.decodeContact("adminInfo", raw.AdminInfo)
	r.AuxInfo = r.decodeContact("auxInfo", raw.AuxInfo)
	r.decodeNameservers(raw.Nameservers)
	return nil
}

func (r *Request) decodeContact(name string, raw json.RawMessage) *ContactInfo {
	if isEmpty(raw) {
		return nil
	}
	if !isObject(raw) {
		r.invalid = append(r.invalid, name+" must be an object")
		return nil
	}
	c := new(ContactInfo)
	_ = c.UnmarshalJSON(raw)
	for _, f := range c.invalid {
		r.invalid = append(r.invalid, name+" "+f+" must be a string")
	}
	return c
}

// decodeNameservers accepts an array of host names or a single
// comma-separated string.
func (r *Request) decodeNameservers(raw json.RawMessage) {
	if isEmpty(raw) {
		return
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		r.Nameservers = list
		return
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		for _, ns := range strings.Split(s, ",") {
			if ns = strings.TrimSpace(ns); ns != "" {
				r.Nameservers = append(r.Nameservers, ns)
			}
		}
		return
	}
	r.invalid = append(r.invalid, "nameservers must be an array of strings or a comma-separated string")
}

// UnmarshalJSON decodes the known contact fields one by one. A field that
// is not a scalar is left empty and remembered so the Service can report it.
func (c *ContactInfo) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*c = ContactInfo{}
	for _, f := range c.textFields() {
		raw, ok := fields[f.name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, f.value); err != nil {
			c.invalid = append(c.invalid, f.name)
		}
	}
	return nil
}

type textField struct {
	name  string
	value *models.Text
}

func (c *ContactInfo) textFields() []textField {
	return []textField{
		{"firstName", &c.FirstName},
		{"lastName", &c.LastName},
		{"address1", &c.Address1},
		{"city", &c.City},
		{"stateProvince", &c.StateProvince},
		{"postalCode", &c.PostalCode},
		{"country", &c.Country},
		{"phone", &c.Phone},
		{"emailAddress", &c.EmailAddress},
		{"organizationName", &c.OrganizationName},
		{"jobTitle", &c.JobTitle},
		{"address2", &c.Address2},
		{"stateProvinceChoice", &c.StateProvinceChoice},
		{"phoneExt", &c.PhoneExt},
		{"fax", &c.Fax},
	}
}

func (c *ContactInfo) isInvalid(field string) bool {
	for _, f := range c.invalid {
		if f == field {
			return true
		}
	}
	return false
}

// isEmpty reports whether raw is absent or falsy: null, false, 0 or "".
func isEmpty(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return true
	}
	if raw[0] == '{' || raw[0] == '[' {
		return false
	}
	var t models.Text
	return json.Unmarshal(raw, &t) == nil && t == ""
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
