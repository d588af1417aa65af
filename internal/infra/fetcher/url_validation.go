// Package fetcher resolves aggregator redirect links to the publisher's URL.
package fetcher

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// errRedirectRejected marks a redirect target refused by validateRedirect.
var errRedirectRejected = errors.New("redirect target rejected")

// validateRedirect checks a redirect target before it is followed.
// Only http/https with a host are allowed. With denyPrivateIPs, literal
// loopback, private and link-local addresses are refused; host names are not
// resolved since the redirect chain leaves through public publisher sites.
func validateRedirect(u *url.URL, denyPrivateIPs bool) error {
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", errRedirectRejected, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", errRedirectRejected)
	}

	if !denyPrivateIPs {
		return nil
	}
	if ip := net.ParseIP(hostname); ip != nil && isPrivateIP(ip) {
		return fmt.Errorf("%w: private address %s", errRedirectRejected, ip.String())
	}
	return nil
}

// isPrivateIP checks if an IP address is in a private, loopback or link-local range.
//
// Blocked IP ranges:
//   - Loopback: 127.0.0.0/8 (IPv4), ::1 (IPv6)
//   - Private: 10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/16 (IPv4), fc00::/7 (IPv6)
//   - Link-local: 169.254.0.0/16 (IPv4), fe80::/10 (IPv6)
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}
