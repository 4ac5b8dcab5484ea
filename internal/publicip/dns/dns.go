// Package dns obtains the public IPv4 address of the host by querying
// a public IP echo service over DNS.
package dns

import (
	"github.com/miekg/dns"
)

type Fetcher struct {
	client    Client
	counter   *uint32
	providers []Provider
}

func New(options ...Option) (fetcher *Fetcher, err error) {
	settings := newDefaultSettings()
	for _, option := range options {
		err = option(&settings)
		if err != nil {
			return nil, err
		}
	}

	return &Fetcher{
		client: &dns.Client{
			Net:     "udp4",
			Timeout: settings.timeout,
		},
		counter:   new(uint32),
		providers: settings.providers,
	}, nil
}
