// Package provider defines the capability interface to a DNS hosting
// provider: listing the records of a domain and updating the data of
// one record, addressed by its provider assigned identifier.
package provider

import (
	"fmt"

	"github.com/updatedns/updatedns/internal/provider/errors"
)

// Record is a DNS record as known to the provider.
type Record struct {
	ID   int
	Name string
	Type string
}

func (r Record) String() string {
	return fmt.Sprintf("%s record %s (id %d)", r.Type, r.Name, r.ID)
}

// RecordID returns the provider identifier of the first record
// matching both name and recordType with exact string equality.
// A configured wildcard name such as "*.example.com" therefore only
// matches a record literally named "*.example.com".
func RecordID(records []Record, name, recordType string) (id int, err error) {
	for _, record := range records {
		if record.Name == name && record.Type == recordType {
			return record.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: no %s record named %q",
		errors.ErrRecordNotFound, recordType, name)
}
