package signing

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"bitget/pkg/core"
)

// SignedRequest is a fully built request, ready to be sent exactly once.
type SignedRequest struct {
	Method string
	// Path is the request path including the "?query" suffix for GET.
	Path    string
	Headers map[string]string
	// Body is nil for GET and the signed JSON bytes for POST.
	Body []byte
	// Timestamp is the ACCESS-TIMESTAMP value embedded in the signature.
	Timestamp string
}

// Builder signs requests with one set of credentials. It holds no mutable
// state and is safe for concurrent use.
type Builder struct {
	Credentials core.Credentials
	Signer      Signer
	// Now supplies the signing time. It is called once per Build, right
	// before the prehash is formed.
	Now    func() time.Time
	Locale string
}

// NewBuilder validates creds and creates the signer for st.
func NewBuilder(creds core.Credentials, st core.SignType, now func() time.Time, locale string) (*Builder, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	signer, err := NewSigner(st, creds.SecretKey)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &Builder{
		Credentials: creds,
		Signer:      signer,
		Now:         now,
		Locale:      locale,
	}, nil
}

// Build runs the signing pipeline: method check, canonical encoding, prehash,
// signature and headers. Nothing here touches the network.
func (b *Builder) Build(method, path string, params core.Params) (*SignedRequest, error) {
	requestPath, body, err := encode(method, path, params)
	if err != nil {
		return nil, err
	}

	ts := Timestamp(b.Now())
	sign := b.Signer.Sign(Prehash(ts, method, requestPath, body))

	headers, err := Headers(b.Credentials.APIKey, sign, ts, b.Credentials.Passphrase, b.Locale)
	if err != nil {
		return nil, err
	}

	return &SignedRequest{
		Method:    method,
		Path:      requestPath,
		Headers:   headers,
		Body:      body,
		Timestamp: ts,
	}, nil
}

// BuildPublic encodes an unauthenticated request the same way Build does,
// without credential headers.
func BuildPublic(method, path string, params core.Params, locale string) (*SignedRequest, error) {
	requestPath, body, err := encode(method, path, params)
	if err != nil {
		return nil, err
	}
	headers, err := publicHeaders(locale)
	if err != nil {
		return nil, err
	}
	return &SignedRequest{
		Method:  method,
		Path:    requestPath,
		Headers: headers,
		Body:    body,
	}, nil
}

// Timestamp formats t as decimal milliseconds since the Unix epoch.
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// CheckMethod rejects anything but GET and POST.
func CheckMethod(method string) error {
	switch method {
	case http.MethodGet, http.MethodPost:
		return nil
	default:
		return &core.ConfigError{
			Code:  core.ErrCodeUnsupportedMethod,
			Field: method,
			Err:   fmt.Errorf("%w: %q", core.ErrUnsupportedMethod, method),
		}
	}
}

func encode(method, path string, params core.Params) (string, []byte, error) {
	if err := CheckMethod(method); err != nil {
		return "", nil, err
	}

	if method == http.MethodGet {
		query, err := EncodeQuery(params)
		if err != nil {
			return "", nil, err
		}
		return path + query, nil, nil
	}

	body, err := EncodeBody(params)
	if err != nil {
		return "", nil, err
	}
	return path, body, nil
}
