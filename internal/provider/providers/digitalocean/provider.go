// Package digitalocean implements the provider capability interface
// against the DigitalOcean REST API v2.
package digitalocean

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/updatedns/updatedns/internal/provider"
	"github.com/updatedns/updatedns/internal/provider/errors"
	"github.com/updatedns/updatedns/internal/provider/headers"
	"github.com/updatedns/updatedns/internal/provider/utils"
)

type Provider struct {
	scheme string
	host   string
	token  string
}

func New(token string) (p *Provider, err error) {
	if token == "" {
		return nil, fmt.Errorf("%w", errors.ErrEmptyToken)
	}
	return &Provider{
		scheme: "https",
		host:   "api.digitalocean.com",
		token:  token,
	}, nil
}

func (p *Provider) String() string {
	return "DigitalOcean"
}

func (p *Provider) setHeaders(request *http.Request) {
	headers.SetUserAgent(request)
	headers.SetContentType(request, "application/json")
	headers.SetAccept(request, "application/json")
	headers.SetAuthBearer(request, p.token)
}

// Records lists all the DNS records of the domain, following the
// pagination links of the API.
func (p *Provider) Records(ctx context.Context, client *http.Client, domain string) (
	records []provider.Record, err error) {
	const perPage = 200
	for page := 1; ; page++ {
		values := url.Values{}
		values.Set("page", strconv.Itoa(page))
		values.Set("per_page", strconv.Itoa(perPage))
		u := url.URL{
			Scheme:   p.scheme,
			Host:     p.host,
			Path:     "/v2/domains/" + domain + "/records",
			RawQuery: values.Encode(),
		}

		pageRecords, nextPage, err := p.recordsPage(ctx, client, u.String())
		if err != nil {
			return nil, err
		}
		records = append(records, pageRecords...)

		if nextPage == "" {
			return records, nil
		}
	}
}

func (p *Provider) recordsPage(ctx context.Context, client *http.Client, url string) (
	records []provider.Record, nextPage string, err error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	p.setHeaders(request)

	response, err := client.Do(request)
	if err != nil {
		return nil, "", err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: %d: %s",
			errors.ErrBadHTTPStatus, response.StatusCode,
			utils.BodyToSingleLine(response.Body))
	}

	decoder := json.NewDecoder(response.Body)
	var parsedJSON struct {
		DomainRecords []struct {
			ID   int    `json:"id"`
			Type string `json:"type"`
			Name string `json:"name"`
		} `json:"domain_records"`
		Links struct {
			Pages struct {
				Next string `json:"next"`
			} `json:"pages"`
		} `json:"links"`
	}
	err = decoder.Decode(&parsedJSON)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", errors.ErrUnmarshalResponse, err)
	}

	records = make([]provider.Record, 0, len(parsedJSON.DomainRecords))
	for _, domainRecord := range parsedJSON.DomainRecords {
		records = append(records, provider.Record{
			ID:   domainRecord.ID,
			Name: domainRecord.Name,
			Type: domainRecord.Type,
		})
	}
	return records, parsedJSON.Links.Pages.Next, nil
}

// UpdateRecord sets the data field of the record to the given value.
func (p *Provider) UpdateRecord(ctx context.Context, client *http.Client,
	domain string, recordID int, data string) (err error) {
	u := url.URL{
		Scheme: p.scheme,
		Host:   p.host,
		Path:   fmt.Sprintf("/v2/domains/%s/records/%d", domain, recordID),
	}

	buffer := bytes.NewBuffer(nil)
	encoder := json.NewEncoder(buffer)
	requestData := struct {
		Data string `json:"data"`
	}{
		Data: data,
	}
	err = encoder.Encode(requestData)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrRequestEncode, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPut, u.String(), buffer)
	if err != nil {
		return err
	}
	p.setHeaders(request)

	response, err := client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d: %s",
			errors.ErrBadHTTPStatus, response.StatusCode,
			utils.BodyToSingleLine(response.Body))
	}

	decoder := json.NewDecoder(response.Body)
	var parsedJSON struct {
		DomainRecord struct {
			Data string `json:"data"`
		} `json:"domain_record"`
	}
	err = decoder.Decode(&parsedJSON)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrUnmarshalResponse, err)
	}

	if parsedJSON.DomainRecord.Data != data {
		return fmt.Errorf("%w: sent %s to update but received %s",
			errors.ErrIPReceivedMismatch, data, parsedJSON.DomainRecord.Data)
	}
	return nil
}
