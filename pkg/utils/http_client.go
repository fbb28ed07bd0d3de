package utils

import (
	"crypto/tls"
	"log"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// DefaultUserAgent identifies this service to upstream APIs.
const DefaultUserAgent = "registrar-api/1.0 (+https://github.com/vit0-9/registrar_api)"

// NewAPIClient creates an HTTP client tuned for talking to a single upstream
// API: modern TLS only, bounded dial and handshake times and an overall
// request timeout.
func NewAPIClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		// Only fails on a broken public suffix list; proceed without cookies.
		log.Printf("WARN: cookie jar unavailable: %v", err)
		jar = nil
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		DialContext: (&net.Dialer{
			Timeout:   15 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	client := &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
	if jar != nil {
		client.Jar = jar
	}
	return client
}
