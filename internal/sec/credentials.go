package sec

import (
	"encoding/base64"
	"strings"
)

const basicScheme = "Basic "

// ParseBasicAuth parses an Authorization header value of the form
// "Basic <base64(identifier:secret)>". It reports ok=false if the header is
// empty, the scheme is not Basic, the payload is not valid base64, or the
// decoded payload has no ':' separator. The secret may itself contain ':'
// characters; only the first one separates the pair.
func ParseBasicAuth(header string) (identifier, secret string, ok bool) {
	if len(header) < len(basicScheme) || !strings.EqualFold(header[:len(basicScheme)], basicScheme) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(header[len(basicScheme):])
	if err != nil {
		return "", "", false
	}
	identifier, secret, ok = strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", false
	}
	return identifier, secret, true
}
