// Package namecheap is a client for the parts of the Namecheap XML API the
// registration service needs: domains.check and domains.create.
package namecheap

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vit0-9/registrar_api/pkg/registration"
	"github.com/vit0-9/registrar_api/pkg/utils"
)

const (
	ProductionURL = "https://api.namecheap.com/xml.response"
	SandboxURL    = "https://api.sandbox.namecheap.com/xml.response"

	commandCheck  = "namecheap.domains.check"
	commandCreate = "namecheap.domains.create"

	maxResponseBytes = 1 << 20
)

type Options struct {
	APIUser  string
	APIKey   string
	Username string // defaults to APIUser
	ClientIP string // whitelisted IP the requests originate from

	BaseURL   string // overrides Sandbox when set
	Sandbox   bool
	Timeout   time.Duration
	UserAgent string

	// HTTPClient replaces the default client, mostly for tests.
	HTTPClient *http.Client
}

type Client struct {
	opts Options
	http *http.Client
}

func NewClient(opts Options) (*Client, error) {
	opts.APIUser = strings.TrimSpace(opts.APIUser)
	opts.APIKey = strings.TrimSpace(opts.APIKey)
	opts.Username = strings.TrimSpace(opts.Username)
	opts.ClientIP = strings.TrimSpace(opts.ClientIP)
	if opts.APIUser == "" || opts.APIKey == "" {
		return nil, fmt.Errorf("namecheap: missing api credentials (set NAMECHEAP_API_USER and NAMECHEAP_API_KEY)")
	}
	if opts.ClientIP == "" {
		return nil, fmt.Errorf("namecheap: missing client ip (set NAMECHEAP_CLIENT_IP)")
	}
	if opts.Username == "" {
		opts.Username = opts.APIUser
	}
	if opts.BaseURL == "" {
		opts.BaseURL = ProductionURL
		if opts.Sandbox {
			opts.BaseURL = SandboxURL
		}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = utils.DefaultUserAgent
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = utils.NewAPIClient(opts.Timeout)
	}

	return &Client{opts: opts, http: httpClient}, nil
}

// APIError is an error reported by Namecheap inside an ERROR response.
type APIError struct {
	Number  string
	Message string
}

func (e *APIError) Error() string {
	if e.Number == "" {
		return "namecheap: " + e.Message
	}
	return fmt.Sprintf("namecheap: %s: %s", e.Number, e.Message)
}

// DomainCheckResult is one entry of a domains.check response.
type DomainCheckResult struct {
	Domain                   string `xml:"Domain,attr"`
	Available                bool   `xml:"Available,attr"`
	ErrorNo                  string `xml:"ErrorNo,attr"`
	Description              string `xml:"Description,attr"`
	IsPremiumName            bool   `xml:"IsPremiumName,attr"`
	PremiumRegistrationPrice string `xml:"PremiumRegistrationPrice,attr"`
	PremiumRenewalPrice      string `xml:"PremiumRenewalPrice,attr"`
	IcannFee                 string `xml:"IcannFee,attr"`
	EapFee                   string `xml:"EapFee,attr"`
}

// DomainCreateResult is the payload of a successful domains.create call.
// It is returned to API callers as-is.
type DomainCreateResult struct {
	Domain            string `xml:"Domain,attr" json:"domain"`
	Registered        bool   `xml:"Registered,attr" json:"registered"`
	ChargedAmount     string `xml:"ChargedAmount,attr" json:"chargedAmount"`
	DomainID          int64  `xml:"DomainID,attr" json:"domainID"`
	OrderID           int64  `xml:"OrderID,attr" json:"orderID"`
	TransactionID     int64  `xml:"TransactionID,attr" json:"transactionID"`
	WhoisguardEnable  bool   `xml:"WhoisguardEnable,attr" json:"whoisguardEnable"`
	NonRealTimeDomain bool   `xml:"NonRealTimeDomain,attr" json:"nonRealTimeDomain"`
}

type apiResponse struct {
	XMLName         xml.Name        `xml:"ApiResponse"`
	Status          string          `xml:"Status,attr"`
	Errors          []apiErrorEntry `xml:"Errors>Error"`
	CommandResponse commandResponse `xml:"CommandResponse"`
}

type apiErrorEntry struct {
	Number  string `xml:"Number,attr"`
	Message string `xml:",chardata"`
}

type commandResponse struct {
	DomainCheckResults []DomainCheckResult `xml:"DomainCheckResult"`
	DomainCreateResult *DomainCreateResult `xml:"DomainCreateResult"`
}

// CheckAvailability implements registration.Registrar.
func (c *Client) CheckAvailability(ctx context.Context, domains []string) ([]registration.Availability, error) {
	if len(domains) == 0 {
		return nil, fmt.Errorf("namecheap: no domains to check")
	}

	params := url.Values{}
	params.Set("DomainList", strings.Join(domains, ","))

	resp, err := c.call(ctx, commandCheck, params)
	if err != nil {
		return nil, err
	}
	return toAvailability(resp.CommandResponse.DomainCheckResults), nil
}

// toAvailability is the only place the Namecheap check shape is translated.
func toAvailability(results []DomainCheckResult) []registration.Availability {
	out := make([]registration.Availability, 0, len(results))
	for _, r := range results {
		out = append(out, registration.Availability{
			Domain:    r.Domain,
			Available: r.Available,
		})
	}
	return out
}

// Register implements registration.Registrar. Namecheap wants all four
// contacts; missing tech, admin and billing contacts fall back to the
// registrant.
func (c *Client) Register(ctx context.Context, reg registration.Registration) (registration.Result, error) {
	params := url.Values{}
	params.Set("DomainName", reg.Domain)
	params.Set("Years", strconv.Itoa(reg.Years))
	if len(reg.Nameservers) > 0 {
		params.Set("Nameservers", strings.Join(reg.Nameservers, ","))
	}
	params.Set("AddFreeWhoisguard", yesNo(reg.AddFreeWhoisguard))
	params.Set("WGEnabled", yesNo(reg.EnableWhoisguard))

	addContact(params, "Registrant", reg.Registrant)
	addContact(params, "Tech", orDefault(reg.Tech, reg.Registrant))
	addContact(params, "Admin", orDefault(reg.Admin, reg.Registrant))
	addContact(params, "AuxBilling", orDefault(reg.Aux, reg.Registrant))

	resp, err := c.call(ctx, commandCreate, params)
	if err != nil {
		return nil, err
	}
	if resp.CommandResponse.DomainCreateResult == nil {
		return nil, fmt.Errorf("namecheap: response has no DomainCreateResult for %s", reg.Domain)
	}
	return resp.CommandResponse.DomainCreateResult, nil
}

func (c *Client) call(ctx context.Context, command string, params url.Values) (*apiResponse, error) {
	params.Set("ApiUser", c.opts.APIUser)
	params.Set("ApiKey", c.opts.APIKey)
	params.Set("UserName", c.opts.Username)
	params.Set("ClientIp", c.opts.ClientIP)
	params.Set("Command", command)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("content-type", "application/x-www-form-urlencoded")
	req.Header.Set("accept", "application/xml")
	req.Header.Set("user-agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("namecheap: %s: %w", command, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("namecheap: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("namecheap: http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var decoded apiResponse
	if err := xml.Unmarshal(b, &decoded); err != nil {
		return nil, fmt.Errorf("namecheap: decode error: %w", err)
	}
	if !strings.EqualFold(decoded.Status, "OK") {
		apiErr := &APIError{Message: "unknown error"}
		if len(decoded.Errors) > 0 {
			apiErr.Number = strings.TrimSpace(decoded.Errors[0].Number)
			if msg := strings.TrimSpace(decoded.Errors[0].Message); msg != "" {
				apiErr.Message = msg
			}
		}
		return nil, apiErr
	}
	return &decoded, nil
}

func addContact(params url.Values, prefix string, ci registration.ContactInfo) {
	fields := []struct {
		name  string
		value string
	}{
		{"FirstName", ci.FirstName.String()},
		{"LastName", ci.LastName.String()},
		{"Address1", ci.Address1.String()},
		{"Address2", ci.Address2.String()},
		{"City", ci.City.String()},
		{"StateProvince", ci.StateProvince.String()},
		{"StateProvinceChoice", ci.StateProvinceChoice.String()},
		{"PostalCode", ci.PostalCode.String()},
		{"Country", ci.Country.String()},
		{"Phone", ci.Phone.String()},
		{"PhoneExt", ci.PhoneExt.String()},
		{"Fax", ci.Fax.String()},
		{"EmailAddress", ci.EmailAddress.String()},
		{"OrganizationName", ci.OrganizationName.String()},
		{"JobTitle", ci.JobTitle.String()},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		params.Set(prefix+f.name, f.value)
	}
}

func orDefault(ci *registration.ContactInfo, def registration.ContactInfo) registration.ContactInfo {
	if ci == nil {
		return def
	}
	return *ci
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
