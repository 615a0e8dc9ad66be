// Package transport provides http.RoundTripper decorators shared by the tracker backends.
package transport

import "net/http"

// HeaderRoundTripper sets a fixed header on every request.
// Linear personal API keys go into Authorization without a scheme, which
// oauth2.Transport cannot express.
type HeaderRoundTripper struct {
	Base  http.RoundTripper
	Name  string
	Value string
}

// NewHeaderRoundTripper は新しいHeaderRoundTripperを作成する
func NewHeaderRoundTripper(base http.RoundTripper, name, value string) *HeaderRoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &HeaderRoundTripper{Base: base, Name: name, Value: value}
}

// RoundTrip implements http.RoundTripper. The caller's request is cloned, not modified.
func (rt *HeaderRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set(rt.Name, rt.Value)
	return rt.Base.RoundTrip(clone)
}
