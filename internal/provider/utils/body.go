package utils

import (
	"io"
	"strings"
)

// BodyToSingleLine reads the response body and collapses it to a
// single line suitable for inclusion in an error message.
func BodyToSingleLine(body io.Reader) (s string) {
	const maxBodyLength = 500
	limitedReader := io.LimitReader(body, maxBodyLength)
	b, err := io.ReadAll(limitedReader)
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(string(b)), " ")
}
