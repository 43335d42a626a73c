package email_test

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"leadfinder/pkg/email"

	"github.com/stretchr/testify/require"
)

// fakeResolver implements email.MXResolver with a per-test lookup function.
type fakeResolver struct {
	mu      sync.Mutex
	queried []string
	fn      func(ctx context.Context, name string) ([]*net.MX, error)
}

func (f *fakeResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	f.mu.Lock()
	f.queried = append(f.queried, name)
	f.mu.Unlock()

	return f.fn(ctx, name)
}

func mxFor(domains ...string) func(context.Context, string) ([]*net.MX, error) {
	return func(_ context.Context, name string) ([]*net.MX, error) {
		for _, d := range domains {
			if d == name {
				return []*net.MX{{Host: "mx." + d + ".", Pref: 10}}, nil
			}
		}

		return nil, &net.DNSError{Err: "no such host", Name: name, IsNotFound: true}
	}
}

func newVerifier(r email.MXResolver) *email.MXVerifier {
	return email.NewMXVerifier(r, email.NewDisposableDomains(), email.Options{Timeout: time.Second, Concurrency: 4})
}

func TestIsDeliverable(t *testing.T) {
	r := &fakeResolver{fn: mxFor("example.com")}
	v := newVerifier(r)
	ctx := context.Background()

	require.True(t, v.IsDeliverable(ctx, "info@example.com"))
	require.True(t, v.IsDeliverable(ctx, "Info@EXAMPLE.com"))
	require.False(t, v.IsDeliverable(ctx, "info@nowhere.invalid"))
	require.Equal(t, []string{"example.com", "example.com", "nowhere.invalid"}, r.queried)
}

func TestIsDeliverable_DisposableShortCircuits(t *testing.T) {
	r := &fakeResolver{fn: func(context.Context, string) ([]*net.MX, error) {
		return []*net.MX{{Host: "mx.any.", Pref: 1}}, nil
	}}
	v := newVerifier(r)

	builtin := email.BuiltinDisposableDomains()
	require.NotEmpty(t, builtin)
	for _, d := range builtin {
		require.False(t, v.IsDeliverable(context.Background(), "someone@"+d), d)
		require.False(t, v.IsDeliverable(context.Background(), "Someone@"+strings.ToUpper(d)+"."), d)
	}
	require.Empty(t, r.queried, "disposable domains must not reach DNS")
}

func TestIsDeliverable_ExtraDisposableShortCircuits(t *testing.T) {
	r := &fakeResolver{fn: func(context.Context, string) ([]*net.MX, error) {
		return []*net.MX{{Host: "mx.any.", Pref: 1}}, nil
	}}
	v := email.NewMXVerifier(r, email.NewDisposableDomains(" Burner.Example. "), email.Options{Timeout: time.Second, Concurrency: 2})

	require.False(t, v.IsDeliverable(context.Background(), "x@burner.example"))
	require.True(t, v.IsDeliverable(context.Background(), "x@kept.example"))
	require.Equal(t, []string{"kept.example"}, r.queried)
}

func TestBuiltinDisposableDomains_ReturnsCopy(t *testing.T) {
	list := email.BuiltinDisposableDomains()
	list[0] = "changed.example"

	require.NotEqual(t, "changed.example", email.BuiltinDisposableDomains()[0])
	require.Equal(t, len(list), email.NewDisposableDomains().Len())
}

func TestIsDeliverable_MalformedNeverQueries(t *testing.T) {
	r := &fakeResolver{fn: mxFor("example.com")}
	v := newVerifier(r)

	for _, in := range []string{"", "plainaddress", "user@", "@"} {
		require.NotPanics(t, func() {
			require.False(t, v.IsDeliverable(context.Background(), in))
		})
	}
	require.Empty(t, r.queried)
}

func TestIsDeliverable_EmptyAnswerAndErrors(t *testing.T) {
	v := newVerifier(&fakeResolver{fn: func(context.Context, string) ([]*net.MX, error) { return nil, nil }})
	require.False(t, v.IsDeliverable(context.Background(), "a@empty.com"))

	v = newVerifier(&fakeResolver{fn: func(context.Context, string) ([]*net.MX, error) {
		return nil, errors.New("servfail")
	}})
	require.False(t, v.IsDeliverable(context.Background(), "a@broken.com"))
}

func TestIsDeliverable_TimeoutIsLocal(t *testing.T) {
	r := &fakeResolver{fn: func(ctx context.Context, _ string) ([]*net.MX, error) {
		<-ctx.Done()

		return nil, ctx.Err()
	}}
	v := email.NewMXVerifier(r, email.NewDisposableDomains(), email.Options{Timeout: 20 * time.Millisecond})

	start := time.Now()
	require.False(t, v.IsDeliverable(context.Background(), "a@slow.com"))
	require.Less(t, time.Since(start), time.Second)
}

func TestVerify_KeepsDeliverableInInputOrder(t *testing.T) {
	v := newVerifier(&fakeResolver{fn: mxFor("good.com", "also-good.org")})

	got := v.Verify(context.Background(), []string{
		"a@good.com", "b@bad.net", "c@mailinator.com", "d@also-good.org", "broken",
	})
	require.Equal(t, []string{"a@good.com", "d@also-good.org"}, got)

	require.NotNil(t, v.Verify(context.Background(), nil))
}

func TestVerify_BoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	r := &fakeResolver{fn: func(context.Context, string) ([]*net.MX, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)

		return []*net.MX{{Host: "mx.", Pref: 1}}, nil
	}}
	v := email.NewMXVerifier(r, email.NewDisposableDomains(), email.Options{Concurrency: 2})

	addresses := make([]string, 10)
	for i := range addresses {
		addresses[i] = "user@d" + string(rune('a'+i)) + ".com"
	}
	require.Len(t, v.Verify(context.Background(), addresses), 10)
	require.LessOrEqual(t, peak.Load(), int32(2))
}

func TestDisposableDomains(t *testing.T) {
	d := email.NewDisposableDomains(" Burner.Test. ", "")
	require.True(t, d.Contains("mailinator.com"))
	require.True(t, d.Contains("MAILINATOR.COM."))
	require.True(t, d.Contains("burner.test"))
	require.False(t, d.Contains("example.com"))
	require.Equal(t, email.NewDisposableDomains().Len()+1, d.Len())
}
