package update

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/updatedns/updatedns/internal/models"
	"github.com/updatedns/updatedns/internal/provider"
)

// Run performs one update cycle. It returns a nil error when the
// public IP address did not change (no-op) or when every configured
// record was updated and the new address was logged. The first
// record level failure aborts the cycle, so the state log is only
// written when the full set succeeded and the next run retries the
// full set otherwise.
func (r *Runner) Run(ctx context.Context) (err error) {
	publicIP, err := r.fetcher.IP4(ctx)
	if err != nil {
		return fmt.Errorf("detecting public IP address: %w", err)
	}
	r.logger.Info("The public IP address is " + publicIP.String())

	lastIP, hasLastIP, err := r.persistentLog.LastIP()
	if err != nil {
		return fmt.Errorf("reading last public IP address: %w", err)
	}
	if hasLastIP {
		r.logger.Info("The last public IP address was " + lastIP.String())
	} else {
		r.logger.Info("No public IP address logged yet")
	}

	if hasLastIP && lastIP == publicIP {
		r.logger.Info("No updates performed")
		return nil
	}

	for _, domain := range r.domains {
		err = r.updateDomain(ctx, domain, publicIP)
		if err != nil {
			return fmt.Errorf("updating domain %s: %w", domain.Name, err)
		}
	}

	err = r.persistentLog.StoreNewIP(publicIP, r.timeNow())
	if err != nil {
		return fmt.Errorf("logging new public IP address: %w", err)
	}

	r.notifier.Notify("Public IP address changed to " + publicIP.String())
	r.logger.Info("All updates performed")
	return nil
}

func (r *Runner) updateDomain(ctx context.Context, domain models.Domain,
	publicIP netip.Addr) (err error) {
	records, err := r.providerClient.Records(ctx, r.httpClient, domain.Name)
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}

	for _, recordSpec := range domain.Records {
		recordID, err := provider.RecordID(records, recordSpec.Name, recordSpec.Type)
		if err != nil {
			return err
		}

		r.logger.Info(fmt.Sprintf("Updating DNS %s, %s ...", domain.Name, recordSpec))
		err = r.providerClient.UpdateRecord(ctx, r.httpClient,
			domain.Name, recordID, publicIP.String())
		if err != nil {
			return fmt.Errorf("updating %s: %w", recordSpec, err)
		}
	}
	return nil
}
