package respond

import (
	"regexp"
)

var (
	// user:password@ inside any URL
	userinfoPattern = regexp.MustCompile(`://([^:/@\s]+):([^@/\s]+)@`)

	// credential-looking query parameters
	secretParamPattern = regexp.MustCompile(`(?i)([?&](?:key|api_key|apikey|token|access_token|sig|signature)=)[^&\s"]+`)

	// bearer tokens echoed back by upstream errors
	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-._~+/]+=*`)
)

// SanitizeError returns the error message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error())
}

// SanitizeString masks credentials embedded in URLs and auth headers.
func SanitizeString(msg string) string {
	msg = userinfoPattern.ReplaceAllString(msg, "://$1:****@")
	msg = secretParamPattern.ReplaceAllString(msg, "${1}****")
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
