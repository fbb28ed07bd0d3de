package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/vit0-9/registrar_api/pkg/registration"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeRegistrar struct {
	availability map[string]bool
	checkErr     error
	result       registration.Result
	registerErr  error

	checkCalls    [][]string
	registrations []registration.Registration
}

func (f *fakeRegistrar) CheckAvailability(ctx context.Context, domains []string) ([]registration.Availability, error) {
	f.checkCalls = append(f.checkCalls, domains)
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	out := make([]registration.Availability, 0, len(domains))
	for _, d := range domains {
		out = append(out, registration.Availability{Domain: d, Available: f.availability[d]})
	}
	return out, nil
}

func (f *fakeRegistrar) Register(ctx context.Context, reg registration.Registration) (registration.Result, error) {
	f.registrations = append(f.registrations, reg)
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.result, nil
}

type testServer struct {
	router    *gin.Engine
	registrar *fakeRegistrar
	logs      *bytes.Buffer
}

func newTestServer(reg *fakeRegistrar, dev bool) *testServer {
	logs := &bytes.Buffer{}
	logger := log.New(logs, "", 0)

	r := gin.New()
	r.Use(
		gin.CustomRecoveryWithWriter(io.Discard, Recovery(dev)),
		BodyLimit(1<<10),
		ErrorHandler(dev, logger),
	)
	h := NewDomainHandlers(registration.NewService(reg), logger)
	api := r.Group("/api/namecheap")
	api.POST("/check", h.CheckDomainsHandler)
	api.POST("/register", h.RegisterDomainHandler)
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })
	r.GET("/fail", func(c *gin.Context) { _ = c.Error(errors.New("handler gave up")) })
	r.NoRoute(NotFoundHandler)

	return &testServer{router: r, registrar: reg, logs: logs}
}

func (s *testServer) do(method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	var decoded map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &decoded)
	return rr, decoded
}

const registerPayload = `{
	"domain": "example.com",
	"years": 1,
	"registrantInfo": {
		"firstName": "Ada",
		"lastName": "Lovelace",
		"address1": "12 Analytical Row",
		"city": "London",
		"stateProvince": "Greater London",
		"postalCode": "N1 9GU",
		"country": "GB",
		"phone": "+44.2071234567",
		"emailAddress": "ada@example.com"
	}
}`

func TestCheckDomains_Success(t *testing.T) {
	t.Parallel()

	s := newTestServer(&fakeRegistrar{availability: map[string]bool{"example.com": true}}, false)
	rr, body := s.do(http.MethodPost, "/api/namecheap/check", `{"domains":["example.com","taken.org","example.net"]}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if body["success"] != true {
		t.Fatalf("success=%v", body["success"])
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 3 {
		t.Fatalf("data=%#v, want 3 results", body["data"])
	}
	wantOrder := []string{"example.com", "taken.org", "example.net"}
	for i, d := range data {
		entry := d.(map[string]any)
		if entry["domain"] != wantOrder[i] {
			t.Fatalf("data[%d].domain=%v, want %s", i, entry["domain"], wantOrder[i])
		}
	}
	if first := data[0].(map[string]any); first["available"] != true {
		t.Fatalf("example.com available=%v, want true", first["available"])
	}
}

func TestCheckDomains_InvalidInput(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"no body":          "",
		"empty object":     `{}`,
		"empty array":      `{"domains":[]}`,
		"not an array":     `{"domains":"example.com"}`,
		"null":             `{"domains":null}`,
		"object":           `{"domains":{"a":"example.com"}}`,
		"top-level array":  `["example.com"]`,
		"wrong field name": `{"domain":["example.com"]}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			reg := &fakeRegistrar{}
			s := newTestServer(reg, false)
			rr, body := s.do(http.MethodPost, "/api/namecheap/check", payload)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status=%d, want 400", rr.Code)
			}
			if body["success"] != false || body["message"] != msgDomainsRequired {
				t.Fatalf("body=%v", body)
			}
			if len(reg.checkCalls) != 0 {
				t.Fatalf("registrar called %d times", len(reg.checkCalls))
			}
		})
	}
}

func TestCheckDomains_RegistrarFailure(t *testing.T) {
	t.Parallel()

	s := newTestServer(&fakeRegistrar{checkErr: errors.New("namecheap: http 503: maintenance")}, false)
	rr, body := s.do(http.MethodPost, "/api/namecheap/check", `{"domains":["example.com"]}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", rr.Code)
	}
	if body["success"] != false || body["message"] != "namecheap: http 503: maintenance" {
		t.Fatalf("body=%v", body)
	}
	if !strings.Contains(s.logs.String(), "maintenance") {
		t.Fatalf("failure not logged: %q", s.logs.String())
	}
}

func TestRegisterDomain_Success(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{
		availability: map[string]bool{"example.com": true},
		result:       map[string]any{"domain": "example.com", "registered": true, "orderID": 42},
	}
	s := newTestServer(reg, false)
	rr, body := s.do(http.MethodPost, "/api/namecheap/register", registerPayload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["registered"] != true || data["orderID"] != float64(42) {
		t.Fatalf("data=%#v, want registrar result", body["data"])
	}
	if len(reg.registrations) != 1 {
		t.Fatalf("registrations=%d, want 1", len(reg.registrations))
	}
	sub := reg.registrations[0]
	if !sub.AddFreeWhoisguard || !sub.EnableWhoisguard {
		t.Fatalf("whoisguard defaults not applied: %+v", sub)
	}
}

func TestRegisterDomain_Unavailable(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{availability: map[string]bool{}}
	s := newTestServer(reg, false)
	rr, body := s.do(http.MethodPost, "/api/namecheap/register", registerPayload)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rr.Code)
	}
	if body["message"] != "Domain is not available for registration" {
		t.Fatalf("message=%v", body["message"])
	}
	if len(reg.checkCalls) != 1 {
		t.Fatalf("checkCalls=%d, want 1", len(reg.checkCalls))
	}
	if len(reg.registrations) != 0 {
		t.Fatalf("Register called %d times, want 0", len(reg.registrations))
	}
}

func TestRegisterDomain_ValidationErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload string
		want    string
	}{
		{"missing city", strings.Replace(registerPayload, `"city": "London",`, "", 1), "Registrant city is required"},
		{"empty body", "", "Domain name is required"},
		{"empty object", `{}`, "Domain name is required"},
		{"years out of range", strings.Replace(registerPayload, `"years": 1`, `"years": 25`, 1), "Years must be a number between 1 and 10"},
		{"no registrant", `{"domain":"example.com","years":1}`, "Registrant information is required"},
		{"nameservers string without domain", `{"years":1,"nameservers":"ns1"}`, "Domain name is required"},
		{"tech contact string without domain", `{"years":1,"techInfo":"same"}`, "Domain name is required"},
		{"object city without domain", `{"years":1,"registrantInfo":{"city":{"a":1}}}`, "Domain name is required"},
		{"domain as array", `{"domain":["example.com"],"years":1}`, "Domain name is required"},
		{"registrant as string", `{"domain":"example.com","years":1,"registrantInfo":"Ada"}`, "Registrant firstName is required"},
		{"object city", strings.Replace(registerPayload, `"city": "London"`, `"city": {"a": 1}`, 1), "Registrant city must be a string"},
		{"tech contact string", strings.Replace(registerPayload, `"years": 1`, `"years": 1, "techInfo": "same"`, 1), "techInfo must be an object"},
		{"nameservers object", strings.Replace(registerPayload, `"years": 1`, `"years": 1, "nameservers": {"a": "ns1"}`, 1), "nameservers must be an array of strings or a comma-separated string"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := &fakeRegistrar{availability: map[string]bool{"example.com": true}}
			s := newTestServer(reg, false)
			rr, body := s.do(http.MethodPost, "/api/namecheap/register", tc.payload)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status=%d, want 400 (body=%s)", rr.Code, rr.Body.String())
			}
			if body["success"] != false || body["message"] != tc.want {
				t.Fatalf("body=%v, want message %q", body, tc.want)
			}
			if len(reg.checkCalls) != 0 || len(reg.registrations) != 0 {
				t.Fatalf("registrar contacted on invalid input")
			}
		})
	}
}

func TestRegisterDomain_WrongShape(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{}
	s := newTestServer(reg, false)
	rr, body := s.do(http.MethodPost, "/api/namecheap/register", `["example.com"]`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rr.Code)
	}
	msg, _ := body["message"].(string)
	if !strings.HasPrefix(msg, "Invalid request payload: ") {
		t.Fatalf("message=%q", msg)
	}
	if len(reg.checkCalls) != 0 {
		t.Fatalf("registrar called %d times", len(reg.checkCalls))
	}
}

func TestRegisterDomain_NameserversAsString(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{availability: map[string]bool{"example.com": true}}
	s := newTestServer(reg, false)
	payload := strings.Replace(registerPayload, `"years": 1`, `"years": 1, "nameservers": "ns1.x.com, ns2.x.com"`, 1)
	rr, _ := s.do(http.MethodPost, "/api/namecheap/register", payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if len(reg.registrations) != 1 {
		t.Fatalf("registrations=%d, want 1", len(reg.registrations))
	}
	got := reg.registrations[0].Nameservers
	if len(got) != 2 || got[0] != "ns1.x.com" || got[1] != "ns2.x.com" {
		t.Fatalf("Nameservers=%q", got)
	}
}

func TestRegisterDomain_RegistrarFailure(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{
		availability: map[string]bool{"example.com": true},
		registerErr:  errors.New("namecheap: 2033409: insufficient funds"),
	}
	s := newTestServer(reg, false)
	rr, body := s.do(http.MethodPost, "/api/namecheap/register", registerPayload)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", rr.Code)
	}
	if body["message"] != "namecheap: 2033409: insufficient funds" {
		t.Fatalf("message=%v", body["message"])
	}
	if !strings.Contains(s.logs.String(), "insufficient funds") {
		t.Fatalf("failure not logged: %q", s.logs.String())
	}
}

func TestMalformedJSON(t *testing.T) {
	t.Parallel()

	t.Run("production hides detail", func(t *testing.T) {
		s := newTestServer(&fakeRegistrar{}, false)
		rr, body := s.do(http.MethodPost, "/api/namecheap/check", `{"domains": [`)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status=%d, want 400", rr.Code)
		}
		if body["status"] != float64(400) || body["message"] == "" {
			t.Fatalf("body=%v", body)
		}
		detail, ok := body["error"].(map[string]any)
		if !ok || len(detail) != 0 {
			t.Fatalf("error=%#v, want {}", body["error"])
		}
	})

	t.Run("development shows detail", func(t *testing.T) {
		s := newTestServer(&fakeRegistrar{}, true)
		rr, body := s.do(http.MethodPost, "/api/namecheap/register", `{"domain": example.com}`)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status=%d, want 400", rr.Code)
		}
		detail, ok := body["error"].(map[string]any)
		if !ok || detail["type"] != "*json.SyntaxError" {
			t.Fatalf("error=%#v, want syntax error detail", body["error"])
		}
	})
}

func TestBodyTooLarge(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{}
	s := newTestServer(reg, false)
	big := `{"domains":["` + strings.Repeat("a", 2048) + `.com"]}`
	rr, body := s.do(http.MethodPost, "/api/namecheap/check", big)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status=%d, want 413", rr.Code)
	}
	if body["status"] != float64(413) {
		t.Fatalf("body=%v", body)
	}
	if len(reg.checkCalls) != 0 {
		t.Fatalf("registrar called for oversized body")
	}
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	s := newTestServer(&fakeRegistrar{}, false)
	rr, body := s.do(http.MethodGet, "/api/namecheap/unknown", "")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", rr.Code)
	}
	if body["message"] != "Not Found" || body["status"] != float64(404) {
		t.Fatalf("body=%v", body)
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("404 body carries an error field: %v", body)
	}
}

func TestUncaughtErrors(t *testing.T) {
	t.Parallel()

	s := newTestServer(&fakeRegistrar{}, false)

	rr, body := s.do(http.MethodGet, "/panic", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("panic status=%d, want 500", rr.Code)
	}
	if body["message"] != "kaboom" || body["status"] != float64(500) {
		t.Fatalf("panic body=%v", body)
	}

	rr, body = s.do(http.MethodGet, "/fail", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("fail status=%d, want 500", rr.Code)
	}
	if body["message"] != "handler gave up" {
		t.Fatalf("fail body=%v", body)
	}
	if !strings.Contains(s.logs.String(), "handler gave up") {
		t.Fatalf("unclassified error not logged")
	}
}
