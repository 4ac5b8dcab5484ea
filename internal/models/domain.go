package models

// Domain is a DNS zone hosted at the provider, together with the
// records within it to keep pointed at the current public IP address.
type Domain struct {
	Name    string
	Records []RecordSpec
}

// RecordSpec designates a single provider side record by its
// name and type, for example {Name: "www.example.com", Type: "A"}.
// The name is compared against the provider record name with exact
// string equality, so a wildcard name such as "*.example.com" only
// designates the record literally named "*.example.com".
type RecordSpec struct {
	Name string
	Type string
}

func (r RecordSpec) String() string {
	return r.Type + " record " + r.Name
}
