package dns

import (
	"errors"
	"fmt"

	"github.com/miekg/dns"
)

type Provider string

const (
	OpenDNS    Provider = "opendns"
	Cloudflare Provider = "cloudflare"
)

func ListProviders() []Provider {
	return []Provider{
		OpenDNS,
		Cloudflare,
	}
}

var ErrUnknownProvider = errors.New("unknown public IP echo DNS provider")

func ValidateProvider(provider Provider) error {
	for _, possible := range ListProviders() {
		if provider == possible {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
}

type providerData struct {
	nameserver string
	fqdn       string
	class      dns.Class
	qType      dns.Type
}

func (p Provider) data() providerData {
	switch p {
	case OpenDNS:
		// dig +short myip.opendns.com @resolver1.opendns.com
		return providerData{
			nameserver: "208.67.222.222:53",
			fqdn:       "myip.opendns.com.",
			class:      dns.ClassINET,
			qType:      dns.Type(dns.TypeA),
		}
	case Cloudflare:
		// dig +short -c CH -t TXT whoami.cloudflare @1.1.1.1
		return providerData{
			nameserver: "1.1.1.1:53",
			fqdn:       "whoami.cloudflare.",
			class:      dns.ClassCHAOS,
			qType:      dns.Type(dns.TypeTXT),
		}
	}
	panic(`provider unknown: "` + string(p) + `"`)
}
