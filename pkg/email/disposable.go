package email

import "strings"

// builtinDisposable lists well-known throwaway mailbox providers. Their MX
// records are valid, so they must be rejected before any DNS lookup.
var builtinDisposable = []string{ //nolint: gochecknoglobals
	"10minutemail.com",
	"10minutemail.net",
	"20minutemail.com",
	"burnermail.io",
	"discard.email",
	"dispostable.com",
	"emailondeck.com",
	"fakeinbox.com",
	"getairmail.com",
	"getnada.com",
	"guerrillamail.biz",
	"guerrillamail.com",
	"guerrillamail.de",
	"guerrillamail.net",
	"guerrillamail.org",
	"guerrillamailblock.com",
	"mailcatch.com",
	"maildrop.cc",
	"mailinator.com",
	"mailinator.net",
	"mailnesia.com",
	"mintemail.com",
	"moakt.com",
	"mohmal.com",
	"mytemp.email",
	"sharklasers.com",
	"spambox.us",
	"spamgourmet.com",
	"temp-mail.org",
	"tempail.com",
	"tempinbox.com",
	"tempmail.com",
	"tempmailo.com",
	"tempr.email",
	"throwawaymail.com",
	"trashmail.com",
	"trashmail.de",
	"yopmail.com",
	"yopmail.fr",
	"yopmail.net",
}

// BuiltinDisposableDomains returns a copy of the built-in disposable domain list.
func BuiltinDisposableDomains() []string {
	return append([]string(nil), builtinDisposable...)
}

// DisposableDomains is a read-only set of disposable email domains.
type DisposableDomains struct {
	set map[string]struct{}
}

// NewDisposableDomains returns the built-in disposable set extended with extra.
// The result must not be modified afterwards; it is safe for concurrent reads.
func NewDisposableDomains(extra ...string) DisposableDomains {
	set := make(map[string]struct{}, len(builtinDisposable)+len(extra))
	for _, d := range builtinDisposable {
		set[d] = struct{}{}
	}
	for _, d := range extra {
		d = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(d)), ".")
		if d != "" {
			set[d] = struct{}{}
		}
	}

	return DisposableDomains{set: set}
}

// Contains reports whether domain is a known disposable domain.
func (d DisposableDomains) Contains(domain string) bool {
	_, ok := d.set[strings.TrimSuffix(strings.ToLower(domain), ".")]

	return ok
}

// Len returns the number of domains in the set.
func (d DisposableDomains) Len() int { return len(d.set) }
