package email

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// DefaultResolvConf is where nameservers are read from when none are configured.
const DefaultResolvConf = "/etc/resolv.conf"

var (
	// ErrInvalidDomain is returned for names that are not valid DNS domain names.
	ErrInvalidDomain = errors.New("invalid domain name")
	// ErrNoRecords is returned when a domain exists but publishes no MX records.
	ErrNoRecords = errors.New("no MX records")
)

// RcodeError reports a non-success DNS response code such as NXDOMAIN.
type RcodeError struct {
	Domain string
	Rcode  int
}

func (e *RcodeError) Error() string {
	return fmt.Sprintf("MX query for %s failed: %s", e.Domain, dns.RcodeToString[e.Rcode])
}

// DNSResolver queries MX records over the DNS protocol. Servers are tried in
// order until one answers; a negative answer from any server is final.
type DNSResolver struct {
	client  *dns.Client
	servers []string
}

var _ MXResolver = (*DNSResolver)(nil)

// NewDNSResolver creates a resolver for the given host[:port] servers. Without
// servers the nameservers of DefaultResolvConf are used.
func NewDNSResolver(servers []string, timeout time.Duration) (*DNSResolver, error) {
	if len(servers) == 0 {
		cc, err := dns.ClientConfigFromFile(DefaultResolvConf)
		if err != nil {
			return nil, fmt.Errorf("could not read resolver config: %w", err)
		}
		for _, s := range cc.Servers {
			servers = append(servers, net.JoinHostPort(s, cc.Port))
		}
		if len(servers) == 0 {
			return nil, fmt.Errorf("no nameservers in %s", DefaultResolvConf)
		}
	}

	addrs := make([]string, 0, len(servers))
	for _, s := range servers {
		if _, _, err := net.SplitHostPort(s); err != nil {
			s = net.JoinHostPort(s, "53")
		}
		addrs = append(addrs, s)
	}

	return &DNSResolver{
		client:  &dns.Client{Net: "udp", Timeout: timeout},
		servers: addrs,
	}, nil
}

// Servers returns the nameserver addresses in the order they are tried.
func (r *DNSResolver) Servers() []string { return r.servers }

// LookupMX returns the MX records of name.
func (r *DNSResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	if _, ok := dns.IsDomainName(name); !ok || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDomain, name)
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), dns.TypeMX)
	m.RecursionDesired = true

	var lastErr error
	for _, server := range r.servers {
		in, err := r.exchange(ctx, m, server)
		if err != nil {
			lastErr = err

			continue
		}
		if in.Rcode != dns.RcodeSuccess {
			return nil, &RcodeError{Domain: name, Rcode: in.Rcode}
		}

		var mxs []*net.MX
		for _, rr := range in.Answer {
			if mx, ok := rr.(*dns.MX); ok {
				mxs = append(mxs, &net.MX{Host: mx.Mx, Pref: mx.Preference})
			}
		}
		if len(mxs) == 0 {
			return nil, fmt.Errorf("%w for %s", ErrNoRecords, name)
		}

		return mxs, nil
	}

	return nil, fmt.Errorf("could not query nameservers: %w", lastErr)
}

// exchange sends m to server over UDP and retries over TCP when the answer was truncated.
func (r *DNSResolver) exchange(ctx context.Context, m *dns.Msg, server string) (*dns.Msg, error) {
	in, _, err := r.client.ExchangeContext(ctx, m, server)
	if err != nil {
		return nil, fmt.Errorf("could not query %s: %w", server, err)
	}
	if !in.Truncated {
		return in, nil
	}

	tcp := &dns.Client{Net: "tcp", Timeout: r.client.Timeout}
	in, _, err = tcp.ExchangeContext(ctx, m, server)
	if err != nil {
		return nil, fmt.Errorf("could not query %s over tcp: %w", server, err)
	}

	return in, nil
}
