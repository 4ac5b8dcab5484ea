package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	providererrors "github.com/updatedns/updatedns/internal/provider/errors"
)

func Test_RecordID(t *testing.T) {
	t.Parallel()

	records := []Record{
		{ID: 11, Name: "example.com", Type: "A"},
		{ID: 12, Name: "www.example.com", Type: "A"},
		{ID: 13, Name: "www.example.com", Type: "AAAA"},
		{ID: 14, Name: "*.example.com", Type: "A"},
		{ID: 15, Name: "sub.anything.example.com", Type: "A"},
	}

	testCases := map[string]struct {
		name       string
		recordType string
		id         int
		errWrapped error
		errMessage string
	}{
		"exact_match": {
			name:       "www.example.com",
			recordType: "A",
			id:         12,
		},
		"type_discriminates": {
			name:       "www.example.com",
			recordType: "AAAA",
			id:         13,
		},
		"wildcard_is_literal": {
			name:       "*.example.com",
			recordType: "A",
			id:         14,
		},
		"wildcard_not_matched_by_subdomain": {
			name:       "anything.example.com",
			recordType: "A",
			errWrapped: providererrors.ErrRecordNotFound,
			errMessage: `record not found: no A record named "anything.example.com"`,
		},
		"no_substring_match": {
			name:       "example.com",
			recordType: "AAAA",
			errWrapped: providererrors.ErrRecordNotFound,
			errMessage: `record not found: no AAAA record named "example.com"`,
		},
		"case_sensitive": {
			name:       "WWW.example.com",
			recordType: "A",
			errWrapped: providererrors.ErrRecordNotFound,
			errMessage: `record not found: no A record named "WWW.example.com"`,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			id, err := RecordID(records, testCase.name, testCase.recordType)

			assert.Equal(t, testCase.id, id)
			if testCase.errWrapped != nil {
				require.ErrorIs(t, err, testCase.errWrapped)
				assert.Equal(t, testCase.errMessage, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
