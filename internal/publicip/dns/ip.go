package dns

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
	"sync/atomic"
)

// IP4 queries the next configured echo provider for the public IPv4
// address of the host. It makes a single attempt with no retry.
func (f *Fetcher) IP4(ctx context.Context) (publicIP netip.Addr, err error) {
	index := int(atomic.AddUint32(f.counter, 1)) % len(f.providers)
	provider := f.providers[index]
	return fetch(ctx, f.client, provider.data())
}

var (
	ErrIPMalformed       = errors.New("IP address malformed")
	ErrIPOctetOutOfRange = errors.New("IP address octet is out of range")
)

// parseDottedQuad parses s as a dotted quad IPv4 address, range
// checking each octet independently. Echo services answer with
// free-form text so a shape check alone is not enough: a string such
// as "192.168.1.500" must be rejected.
func parseDottedQuad(s string) (ip netip.Addr, err error) {
	octetStrings := strings.Split(s, ".")
	const ipv4Octets = 4
	if len(octetStrings) != ipv4Octets {
		return netip.Addr{}, fmt.Errorf("%w: %d dot separated segments instead of %d in %q",
			ErrIPMalformed, len(octetStrings), ipv4Octets, s)
	}

	var octets [ipv4Octets]byte
	for i, octetString := range octetStrings {
		octet, err := strconv.ParseUint(octetString, 10, 64)
		if err != nil {
			return netip.Addr{}, fmt.Errorf("%w: segment %q in %q",
				ErrIPMalformed, octetString, s)
		}
		const maxOctet = 255
		if octet > maxOctet {
			return netip.Addr{}, fmt.Errorf("%w: %d in %q",
				ErrIPOctetOutOfRange, octet, s)
		}
		octets[i] = byte(octet)
	}

	return netip.AddrFrom4(octets), nil
}
