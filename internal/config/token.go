package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrTokenEmpty = errors.New("personal access token file has no token")

// ReadToken reads the personal access token from the given file.
// The token is the last whitespace separated field of the last
// non-blank line, so the file may carry comment lines above it.
func ReadToken(filepath string) (token string, err error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return "", fmt.Errorf("reading personal access token file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			token = fields[len(fields)-1]
		}
	}

	if token == "" {
		return "", fmt.Errorf("%w: %s", ErrTokenEmpty, filepath)
	}
	return token, nil
}
