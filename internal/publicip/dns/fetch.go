package dns

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"github.com/miekg/dns"
)

var (
	ErrRcodeNotSuccess    = errors.New("response rcode is not success")
	ErrAnswerNotReceived  = errors.New("no answer received")
	ErrAnswerTypeMismatch = errors.New("answer type is not expected")
	ErrRecordEmpty        = errors.New("record is empty")
	ErrTooManyTXTRecords  = errors.New("too many TXT records")
)

func fetch(ctx context.Context, client Client, data providerData) (
	publicIP netip.Addr, err error) {
	message := &dns.Msg{
		MsgHdr: dns.MsgHdr{
			RecursionDesired: true,
			Opcode:           dns.OpcodeQuery,
		},
		Question: []dns.Question{{
			Name:   data.fqdn,
			Qtype:  uint16(data.qType),
			Qclass: uint16(data.class),
		}},
	}

	response, _, err := client.ExchangeContext(ctx, message, data.nameserver)
	if err != nil {
		return netip.Addr{}, err
	}

	if response.Rcode != dns.RcodeSuccess {
		return netip.Addr{}, fmt.Errorf("%w: %s",
			ErrRcodeNotSuccess, dns.RcodeToString[response.Rcode])
	}

	if len(response.Answer) == 0 {
		return netip.Addr{}, fmt.Errorf("%w", ErrAnswerNotReceived)
	}

	answer := response.Answer[0]
	switch typedAnswer := answer.(type) {
	case *dns.A:
		publicIP, err = parseDottedQuad(typedAnswer.A.String())
		if err != nil {
			return netip.Addr{}, fmt.Errorf("handling A answer: %w", err)
		}
	case *dns.TXT:
		publicIP, err = handleTXT(typedAnswer)
		if err != nil {
			return netip.Addr{}, fmt.Errorf("handling TXT answer: %w", err)
		}
	default:
		return netip.Addr{}, fmt.Errorf("%w: %T instead of *dns.A or *dns.TXT",
			ErrAnswerTypeMismatch, answer)
	}

	return publicIP, nil
}

func handleTXT(answer *dns.TXT) (publicIP netip.Addr, err error) {
	switch len(answer.Txt) {
	case 0:
		return netip.Addr{}, fmt.Errorf("%w", ErrRecordEmpty)
	case 1:
	default:
		return netip.Addr{}, fmt.Errorf("%w: %d instead of 1",
			ErrTooManyTXTRecords, len(answer.Txt))
	}
	return parseDottedQuad(answer.Txt[0])
}
