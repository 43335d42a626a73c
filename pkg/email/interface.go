package email

import (
	"context"
	"net"
)

// MXResolver looks up the mail exchangers of a domain. *net.Resolver and
// *DNSResolver both satisfy it.
type MXResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

// Verifier decides whether addresses belong to domains that can receive mail.
//
//go:generate mockgen -package mockemail -source=interface.go -destination=mock/mockemail.go *
type Verifier interface {
	// IsDeliverable reports whether the domain of address accepts mail. It never fails;
	// any lookup problem counts as not deliverable.
	IsDeliverable(ctx context.Context, address string) bool
	// Verify returns the deliverable subset of addresses.
	Verify(ctx context.Context, addresses []string) []string
}
