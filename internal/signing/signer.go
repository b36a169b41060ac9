package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"bitget/pkg/core"
)

// Signer produces the ACCESS-SIGN value for a prehash string.
type Signer interface {
	Sign(prehash string) string
	Type() core.SignType
}

// NewSigner returns the signer for st. HmacSHA256 is the only implemented
// scheme; RSA and unknown schemes fail with ErrUnsupportedSignType.
func NewSigner(st core.SignType, secret string) (Signer, error) {
	if err := CheckSignType(st); err != nil {
		return nil, err
	}
	if secret == "" {
		return nil, &core.ConfigError{
			Code:  core.ErrCodeNoCredentials,
			Field: "secret_key",
			Err:   core.ErrNoCredentials,
		}
	}
	return &HMACSigner{secret: []byte(secret)}, nil
}

// CheckSignType reports whether st can be signed without building a signer.
func CheckSignType(st core.SignType) error {
	switch st {
	case core.SignHMACSHA256:
		return nil
	case core.SignRSA:
		return &core.ConfigError{
			Code:  core.ErrCodeUnsupportedSignType,
			Field: string(st),
			Err:   fmt.Errorf("%w: %s signing is not implemented", core.ErrUnsupportedSignType, st),
		}
	default:
		return &core.ConfigError{
			Code:  core.ErrCodeUnsupportedSignType,
			Field: string(st),
			Err:   fmt.Errorf("%w: %q", core.ErrUnsupportedSignType, st),
		}
	}
}

// HMACSigner signs with base64(HMAC-SHA256(secret, prehash)).
type HMACSigner struct {
	secret []byte
}

func (s *HMACSigner) Sign(prehash string) string {
	return signHMAC(prehash, s.secret)
}

func (s *HMACSigner) Type() core.SignType {
	return core.SignHMACSHA256
}

// SignHMAC is the pure form of HMACSigner.Sign.
func SignHMAC(prehash, secret string) string {
	return signHMAC(prehash, []byte(secret))
}

func signHMAC(message string, secret []byte) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
