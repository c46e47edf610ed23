// Package transport renders credentials into the optical code URI and
// parses scanned URIs back. The URI is the only thing that crosses the
// air gap between issuer and verifier.
package transport

import (
	"fmt"
	"net/url"

	"github.com/pkg/errors"
)

const (
	// Scheme and Host identify a credential URI. Anything else scanned by
	// a device is rejected before verification starts.
	Scheme = "permit"
	Host   = "verify"

	paramPayload   = "d"
	paramSignature = "s"
)

var ErrInvalidURI = errors.New("not a permit credential uri")

// ToURI renders the encoded payload and signature as a scannable URI.
// Both inputs are URL-safe base64 already, so they pass through query
// encoding unchanged.
func ToURI(payloadEncoded, signature string) string {
	return fmt.Sprintf("%s://%s?%s=%s&%s=%s", Scheme, Host, paramPayload, payloadEncoded, paramSignature, signature)
}

// FromURI extracts the encoded payload and signature from a scanned URI.
// Scheme and host must match exactly and both parameters must be present
// and non-empty; the base64 content itself is not validated here.
func FromURI(raw string) (payloadEncoded string, signature string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", errors.Wrap(ErrInvalidURI, err.Error())
	}

	if u.Scheme != Scheme {
		return "", "", errors.Wrapf(ErrInvalidURI, "unexpected scheme %q", u.Scheme)
	}
	if u.Host != Host {
		return "", "", errors.Wrapf(ErrInvalidURI, "unexpected host %q", u.Host)
	}

	q := u.Query()

	payloadEncoded = q.Get(paramPayload)
	if payloadEncoded == "" {
		return "", "", errors.Wrap(ErrInvalidURI, "missing payload parameter")
	}

	signature = q.Get(paramSignature)
	if signature == "" {
		return "", "", errors.Wrap(ErrInvalidURI, "missing signature parameter")
	}

	return payloadEncoded, signature, nil
}
