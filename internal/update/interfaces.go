package update

import (
	"context"
	"net/http"
	"net/netip"
	"time"

	"github.com/updatedns/updatedns/internal/provider"
)

//go:generate mockgen -destination=mock_update/interfaces.go -package=mock_update . PublicIPFetcher,PersistentLog,ProviderClient,Logger,Notifier

type PublicIPFetcher interface {
	IP4(ctx context.Context) (publicIP netip.Addr, err error)
}

type PersistentLog interface {
	LastIP() (lastIP netip.Addr, ok bool, err error)
	StoreNewIP(ip netip.Addr, t time.Time) (err error)
}

type ProviderClient interface {
	Records(ctx context.Context, client *http.Client, domain string) (
		records []provider.Record, err error)
	UpdateRecord(ctx context.Context, client *http.Client, domain string,
		recordID int, data string) (err error)
}

type Logger interface {
	Debug(s string)
	Info(s string)
	Warn(s string)
}

type Notifier interface {
	Notify(message string)
}
