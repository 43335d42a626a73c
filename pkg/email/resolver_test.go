package email_test

import (
	"context"
	"net"
	"testing"
	"time"

	"leadfinder/pkg/email"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

// startDNSServer runs a local UDP DNS server answering MX queries from records.
// Names missing from records get NXDOMAIN.
func startDNSServer(t *testing.T, records map[string][]string) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &dns.Server{
		PacketConn: pc,
		Handler: dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
			m := new(dns.Msg)
			m.SetReply(r)
			q := r.Question[0]
			hosts, ok := records[q.Name]
			if !ok {
				m.SetRcode(r, dns.RcodeNameError)
				_ = w.WriteMsg(m)

				return
			}
			for i, h := range hosts {
				m.Answer = append(m.Answer, &dns.MX{
					Hdr:        dns.RR_Header{Name: q.Name, Rrtype: dns.TypeMX, Class: dns.ClassINET, Ttl: 60},
					Preference: uint16(10 * (i + 1)), //nolint: gosec
					Mx:         h,
				})
			}
			_ = w.WriteMsg(m)
		}),
	}
	go func() { _ = srv.ActivateAndServe() }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	return pc.LocalAddr().String()
}

func TestDNSResolver_LookupMX(t *testing.T) {
	addr := startDNSServer(t, map[string][]string{
		"example.com.": {"mx1.example.com.", "mx2.example.com."},
		"nomail.com.":  {},
	})
	r, err := email.NewDNSResolver([]string{addr}, 2*time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	mxs, err := r.LookupMX(ctx, "example.com")
	require.NoError(t, err)
	require.Len(t, mxs, 2)
	require.Equal(t, "mx1.example.com.", mxs[0].Host)
	require.Equal(t, uint16(10), mxs[0].Pref)

	_, err = r.LookupMX(ctx, "nomail.com")
	require.ErrorIs(t, err, email.ErrNoRecords)

	_, err = r.LookupMX(ctx, "missing.com")
	var rcodeErr *email.RcodeError
	require.ErrorAs(t, err, &rcodeErr)
	require.Equal(t, dns.RcodeNameError, rcodeErr.Rcode)
}

func TestDNSResolver_InvalidDomain(t *testing.T) {
	r, err := email.NewDNSResolver([]string{"127.0.0.1:1"}, time.Second)
	require.NoError(t, err)

	_, err = r.LookupMX(context.Background(), "")
	require.ErrorIs(t, err, email.ErrInvalidDomain)
}

func TestDNSResolver_FallsBackToNextServer(t *testing.T) {
	live := startDNSServer(t, map[string][]string{"example.com.": {"mx.example.com."}})

	// a bound but silent socket makes the first server time out
	dead, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = dead.Close() })

	r, err := email.NewDNSResolver([]string{dead.LocalAddr().String(), live}, 200*time.Millisecond)
	require.NoError(t, err)

	mxs, err := r.LookupMX(context.Background(), "example.com")
	require.NoError(t, err)
	require.Len(t, mxs, 1)
}

func TestDNSResolver_DefaultPort(t *testing.T) {
	r, err := email.NewDNSResolver([]string{"192.0.2.1", "2001:db8::1", "192.0.2.2:5353"}, time.Second)
	require.NoError(t, err)
	require.Equal(t, []string{"192.0.2.1:53", "[2001:db8::1]:53", "192.0.2.2:5353"}, r.Servers())
}

func TestDNSResolver_WithVerifier(t *testing.T) {
	addr := startDNSServer(t, map[string][]string{"shop.example.": {"mail.shop.example."}})
	r, err := email.NewDNSResolver([]string{addr}, time.Second)
	require.NoError(t, err)

	v := email.NewMXVerifier(r, email.NewDisposableDomains(), email.Options{Timeout: time.Second, Concurrency: 2})
	got := v.Verify(context.Background(), []string{"owner@shop.example", "x@gone.example"})
	require.Equal(t, []string{"owner@shop.example"}, got)
}
