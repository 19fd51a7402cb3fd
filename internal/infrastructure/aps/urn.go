package aps

import "encoding/base64"

// EncodeURN converts a raw version URN into the URL-safe, unpadded base64
// form the model-derivative endpoints and the embedded viewer expect. The
// transform must stay bit-reproducible: it is embedded directly into
// viewer-facing identifiers.
func EncodeURN(urn string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(urn))
}

// DecodeURN reverses EncodeURN, accepting both padded and unpadded input.
func DecodeURN(encoded string) (string, error) {
	for len(encoded) > 0 && encoded[len(encoded)-1] == '=' {
		encoded = encoded[:len(encoded)-1]
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
