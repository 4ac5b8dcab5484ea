package utils

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDomainNotSet           = errors.New("domain is not set")
	ErrDomainTooLong          = errors.New("domain name is too long")
	ErrDomainLabelTooLong     = errors.New("domain label is too long")
	ErrDomainLabelEmpty       = errors.New("domain label is empty")
	ErrDomainInvalidCharacter = errors.New("domain name has invalid character")
)

// CheckDomain returns a non-nil error if the domain name is not valid
// per RFC 1035 and RFC 1123 syntax rules.
func CheckDomain(domain string) (err error) {
	const maxDomainLength = 255
	switch {
	case domain == "":
		return fmt.Errorf("%w", ErrDomainNotSet)
	case len(domain) > maxDomainLength:
		return fmt.Errorf("%w: %q has %d characters exceeding the maximum of %d",
			ErrDomainTooLong, domain, len(domain), maxDomainLength)
	}

	for _, label := range strings.Split(domain, ".") {
		err = checkLabel(label)
		if err != nil {
			return fmt.Errorf("%w: in domain %q", err, domain)
		}
	}
	return nil
}

func checkLabel(label string) (err error) {
	const maxLabelLength = 63
	switch {
	case label == "":
		return fmt.Errorf("%w", ErrDomainLabelEmpty)
	case len(label) > maxLabelLength:
		return fmt.Errorf("%w: %q has %d characters exceeding the maximum of %d",
			ErrDomainLabelTooLong, label, len(label), maxLabelLength)
	case label[0] == '-':
		return fmt.Errorf("%w: label %q starts with '-'",
			ErrDomainInvalidCharacter, label)
	case label[len(label)-1] == '-':
		return fmt.Errorf("%w: label %q ends with '-'",
			ErrDomainInvalidCharacter, label)
	}

	for _, character := range label {
		switch {
		case character >= 'a' && character <= 'z',
			character >= 'A' && character <= 'Z',
			character >= '0' && character <= '9',
			character == '-':
		default:
			return fmt.Errorf("%w: '%c' in label %q",
				ErrDomainInvalidCharacter, character, label)
		}
	}
	return nil
}
