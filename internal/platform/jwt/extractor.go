// Package jwtmw issues and verifies identity tokens and provides the gin middleware around them.
package jwtmw

import "strings"

const bearerPrefix = "Bearer "

// ExtractBearer returns the token from an "Authorization: Bearer <token>" header value.
// The prefix is case-sensitive. Any other shape yields ok == false; this is not an error.
func ExtractBearer(header string) (token string, ok bool) {
	token, found := strings.CutPrefix(header, bearerPrefix)
	if !found || token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
