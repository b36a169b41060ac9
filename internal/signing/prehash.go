package signing

import "strings"

// Prehash concatenates timestamp, method, request path and body with no
// separators. For GET the path carries the "?query" suffix and body is empty;
// for POST body must be the exact bytes that will be transmitted.
func Prehash(timestamp, method, requestPath string, body []byte) string {
	var b strings.Builder
	b.Grow(len(timestamp) + len(method) + len(requestPath) + len(body))
	b.WriteString(timestamp)
	b.WriteString(method)
	b.WriteString(requestPath)
	b.Write(body)
	return b.String()
}
