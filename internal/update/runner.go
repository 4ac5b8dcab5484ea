// Package update orchestrates one update cycle: detect the public
// IPv4 address, compare it with the last logged one and, on change,
// update every configured DNS record before logging the new address.
package update

import (
	"net/http"
	"time"

	"github.com/updatedns/updatedns/internal/models"
)

type Runner struct {
	domains        []models.Domain
	fetcher        PublicIPFetcher
	persistentLog  PersistentLog
	providerClient ProviderClient
	httpClient     *http.Client
	logger         Logger
	notifier       Notifier
	timeNow        func() time.Time
}

func NewRunner(domains []models.Domain, fetcher PublicIPFetcher,
	persistentLog PersistentLog, providerClient ProviderClient,
	httpClient *http.Client, logger Logger, notifier Notifier,
	timeNow func() time.Time) *Runner {
	return &Runner{
		domains:        domains,
		fetcher:        fetcher,
		persistentLog:  persistentLog,
		providerClient: providerClient,
		httpClient:     httpClient,
		logger:         logger,
		notifier:       notifier,
		timeNow:        timeNow,
	}
}
