package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ReadToken(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		fileContent *string // nil means no file
		token       string
		errWrapped  error
		errContains string
	}{
		"single_line": {
			fileContent: ptrTo("dop_v1_0123456789abcdef\n"),
			token:       "dop_v1_0123456789abcdef",
		},
		"no_trailing_newline": {
			fileContent: ptrTo("dop_v1_0123456789abcdef"),
			token:       "dop_v1_0123456789abcdef",
		},
		"comment_lines_above": {
			fileContent: ptrTo("# DigitalOcean personal access token\n" +
				"dop_v1_0123456789abcdef\n\n"),
			token: "dop_v1_0123456789abcdef",
		},
		"last_field_of_last_line": {
			fileContent: ptrTo("token: dop_v1_0123456789abcdef\n"),
			token:       "dop_v1_0123456789abcdef",
		},
		"missing_file": {
			errContains: "reading personal access token file",
		},
		"empty_file": {
			fileContent: ptrTo("\n  \n"),
			errWrapped:  ErrTokenEmpty,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tokenFilepath := filepath.Join(t.TempDir(), "token")
			if testCase.fileContent != nil {
				err := os.WriteFile(tokenFilepath, []byte(*testCase.fileContent), 0o600)
				require.NoError(t, err)
			}

			token, err := ReadToken(tokenFilepath)

			assert.Equal(t, testCase.token, token)
			switch {
			case testCase.errWrapped != nil:
				require.ErrorIs(t, err, testCase.errWrapped)
			case testCase.errContains != "":
				require.ErrorContains(t, err, testCase.errContains)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func ptrTo[T any](value T) *T { return &value }
