// Package config reads and validates the JSON configuration file and
// the personal access token file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gotree"
	"github.com/updatedns/updatedns/internal/models"
	"github.com/updatedns/updatedns/internal/provider/utils"
)

type Settings struct {
	// TokenFilepath is the path to the file holding the
	// DigitalOcean personal access token.
	TokenFilepath string
	// LogFilepath is the path to the public IP address log file.
	LogFilepath string
	// Domains are the domains and records to keep updated,
	// in configuration order.
	Domains []models.Domain
	// HTTPTimeout bounds each DigitalOcean API call.
	HTTPTimeout time.Duration
	// EchoTimeout bounds the public IP echo DNS query.
	EchoTimeout time.Duration
	// ShoutrrrAddresses are optional notification service addresses
	// in shoutrrr URL format.
	ShoutrrrAddresses []string
}

type settingsJSON struct {
	PersonalAccessTokenFile string `json:"personal_access_token_file"`
	PublicIPAddressLogFile  string `json:"public_ip_address_log_file"`
	Domains                 []struct {
		Domain  string `json:"domain"`
		Records []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"records"`
	} `json:"domains"`
	HTTPTimeoutSeconds uint     `json:"http_timeout_seconds"`
	EchoTimeoutSeconds uint     `json:"echo_timeout_seconds"`
	ShoutrrrAddresses  []string `json:"shoutrrr_addresses"`
}

// Read parses the configuration file at the given path.
// It does not set defaults nor validate fields.
func Read(filepath string) (settings Settings, err error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return settings, fmt.Errorf("reading configuration file: %w", err)
	}

	var parsedJSON settingsJSON
	err = json.Unmarshal(data, &parsedJSON)
	if err != nil {
		return settings, fmt.Errorf("parsing configuration file: %w", err)
	}

	settings.TokenFilepath = parsedJSON.PersonalAccessTokenFile
	settings.LogFilepath = parsedJSON.PublicIPAddressLogFile
	settings.Domains = make([]models.Domain, 0, len(parsedJSON.Domains))
	for _, domain := range parsedJSON.Domains {
		records := make([]models.RecordSpec, 0, len(domain.Records))
		for _, record := range domain.Records {
			records = append(records, models.RecordSpec{
				Name: record.Name,
				Type: record.Type,
			})
		}
		settings.Domains = append(settings.Domains, models.Domain{
			Name:    domain.Domain,
			Records: records,
		})
	}
	settings.HTTPTimeout = time.Duration(parsedJSON.HTTPTimeoutSeconds) * time.Second
	settings.EchoTimeout = time.Duration(parsedJSON.EchoTimeoutSeconds) * time.Second
	settings.ShoutrrrAddresses = parsedJSON.ShoutrrrAddresses
	return settings, nil
}

func (s *Settings) SetDefaults() {
	const defaultHTTPTimeout = 10 * time.Second
	s.HTTPTimeout = gosettings.DefaultNumber(s.HTTPTimeout, defaultHTTPTimeout)
	const defaultEchoTimeout = 3 * time.Second
	s.EchoTimeout = gosettings.DefaultNumber(s.EchoTimeout, defaultEchoTimeout)
	s.ShoutrrrAddresses = gosettings.DefaultSlice(s.ShoutrrrAddresses, []string{})
	for i := range s.Domains {
		for j := range s.Domains[i].Records {
			if s.Domains[i].Records[j].Type == "" {
				s.Domains[i].Records[j].Type = "A"
			}
		}
	}
}

var (
	ErrTokenFileNotSet  = errors.New("personal access token file is not set")
	ErrLogFileNotSet    = errors.New("public IP address log file is not set")
	ErrNoDomain         = errors.New("no domain configured")
	ErrNoRecord         = errors.New("no record configured")
	ErrRecordNameNotSet = errors.New("record name is not set")
)

func (s Settings) Validate() (err error) {
	switch {
	case s.TokenFilepath == "":
		return fmt.Errorf("%w", ErrTokenFileNotSet)
	case s.LogFilepath == "":
		return fmt.Errorf("%w", ErrLogFileNotSet)
	case len(s.Domains) == 0:
		return fmt.Errorf("%w", ErrNoDomain)
	}

	for _, domain := range s.Domains {
		err = utils.CheckDomain(domain.Name)
		if err != nil {
			return fmt.Errorf("checking domain name: %w", err)
		}
		if len(domain.Records) == 0 {
			return fmt.Errorf("%w: for domain %s", ErrNoRecord, domain.Name)
		}
		for _, record := range domain.Records {
			if record.Name == "" {
				return fmt.Errorf("%w: for domain %s", ErrRecordNameNotSet, domain.Name)
			}
		}
	}
	return nil
}

func (s Settings) String() string {
	return s.toLinesNode().String()
}

func (s Settings) toLinesNode() *gotree.Node {
	node := gotree.New("Settings summary:")
	node.Appendf("Personal access token file: %s", s.TokenFilepath)
	node.Appendf("Public IP address log file: %s", s.LogFilepath)
	node.Appendf("HTTP timeout: %s", s.HTTPTimeout)
	node.Appendf("Echo query timeout: %s", s.EchoTimeout)

	domainsNode := node.Appendf("Domains")
	for _, domain := range s.Domains {
		domainNode := domainsNode.Appendf("%s", domain.Name)
		for _, record := range domain.Records {
			domainNode.Appendf("%s", record)
		}
	}

	if len(s.ShoutrrrAddresses) > 0 {
		addressesNode := node.Appendf("Shoutrrr addresses")
		for _, address := range s.ShoutrrrAddresses {
			addressesNode.Appendf("%s", address)
		}
	}

	return node
}
