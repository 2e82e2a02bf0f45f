package netbilling

import (
	"fmt"
	"regexp"
	"strings"
)

var headerContinuation = regexp.MustCompile(`\n[ \t]`)

// ExtractStatusMessage pulls the gateway's custom status message out of raw
// HTTP response header text. Direct mode returns fine-grained error detail on
// the status line rather than in the body for any non-200 reply, e.g.
// "HTTP/1.0 604 Missing Parameter (pay_type)" with code 604 yields
// "Missing Parameter (pay_type)".
func ExtractStatusMessage(rawHeaders string, code int) string {
	raw := strings.ReplaceAll(rawHeaders, "\r\n", "\n")

	// fold header continuation lines before splitting
	raw = headerContinuation.ReplaceAllString(raw, " ")

	statusLine, _, _ := strings.Cut(raw, "\n")

	message := strings.Replace(statusLine, fmt.Sprintf("HTTP/1.0 %d", code), "", 1)

	return strings.TrimSpace(message)
}
