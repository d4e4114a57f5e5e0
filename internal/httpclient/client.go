// Package httpclient downloads remote documentation with SSRF protection.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teranos/dtsgen/errors"
)

// DefaultMaxBodyBytes caps a downloaded document. Ember's data.json is ~10MB.
const DefaultMaxBodyBytes = 64 << 20

// Options configures a Client
type Options struct {
	Timeout time.Duration
	// AllowPrivate permits localhost and private networks (intranet doc hosts, tests)
	AllowPrivate bool
	MaxRedirects int   // Default: 10
	MaxBodyBytes int64 // Default: DefaultMaxBodyBytes
}

// Client fetches documents over http(s) only, refusing private addresses
// unless AllowPrivate is set. Private-address checks also run at dial time
// so DNS answers cannot sidestep them.
type Client struct {
	http         *http.Client
	allowPrivate bool
	maxRedirects int
	maxBodyBytes int64
}

// New creates a Client
func New(opts Options) *Client {
	c := &Client{
		allowPrivate: opts.AllowPrivate,
		maxRedirects: opts.MaxRedirects,
		maxBodyBytes: opts.MaxBodyBytes,
	}
	if c.maxRedirects <= 0 {
		c.maxRedirects = 10
	}
	if c.maxBodyBytes <= 0 {
		c.maxBodyBytes = DefaultMaxBodyBytes
	}

	c.http = &http.Client{
		Timeout: opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= c.maxRedirects {
				return errors.Newf("stopped after %d redirects", c.maxRedirects)
			}
			if err := c.validateURL(req.URL); err != nil {
				return errors.Wrap(err, "redirect blocked")
			}
			return nil
		},
	}

	if !c.allowPrivate {
		dialer := &net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}
		c.http.Transport = &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				host, _, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, errors.Wrap(err, "invalid address")
				}
				ips, err := net.DefaultResolver.LookupIP(ctx, "ip", host)
				if err != nil {
					return nil, errors.Wrapf(err, "failed to resolve host %q", host)
				}
				for _, ip := range ips {
					if isPrivateIP(ip) {
						return nil, errors.Newf("private IP address blocked: %s", ip)
					}
				}
				return dialer.DialContext(ctx, network, addr)
			},
			TLSHandshakeTimeout: 10 * time.Second,
		}
	}
	return c
}

// IsRemote reports whether input names an http(s) URL rather than a file
func IsRemote(input string) bool {
	lower := strings.ToLower(input)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch downloads rawURL and returns the body. Non-2xx responses and bodies
// above the size limit are errors.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid URL")
	}
	if err := c.validateURL(u); err != nil {
		return nil, errors.Wrapf(err, "refusing to fetch %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf("failed to fetch %s: %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", rawURL)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, errors.WithHint(
			errors.Newf("%s is larger than %d bytes", rawURL, c.maxBodyBytes),
			"download the document and pass the local path instead")
	}
	return body, nil
}

// validateURL checks the scheme and, unless private hosts are allowed, the host
func (c *Client) validateURL(u *url.URL) error {
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return errors.Newf("scheme %q not allowed (allowed: http, https)", scheme)
	}

	// http://evil.com@localhost/ style confusion
	if u.User != nil {
		return errors.New("URL must not contain credentials")
	}

	hostname := u.Hostname()
	if hostname == "" {
		return errors.New("URL missing hostname")
	}

	if c.allowPrivate {
		return nil
	}
	if isLocalhost(hostname) {
		return errors.New("localhost access blocked")
	}
	if ip := net.ParseIP(hostname); ip != nil && isPrivateIP(ip) {
		return errors.Newf("private IP address blocked: %s", hostname)
	}
	return nil
}

var privateBlocks = []*net.IPNet{
	cidr("10.0.0.0/8"),
	cidr("172.16.0.0/12"),
	cidr("192.168.0.0/16"),
	cidr("127.0.0.0/8"),    // loopback
	cidr("169.254.0.0/16"), // link-local, cloud metadata
	cidr("0.0.0.0/8"),
	cidr("224.0.0.0/4"), // multicast
	cidr("240.0.0.0/4"), // reserved
	cidr("fc00::/7"),    // unique local
	cidr("fec0::/10"),   // site-local (deprecated)
	cidr("2001:db8::/32"),
}

func cidr(s string) *net.IPNet {
	_, block, err := net.ParseCIDR(s)
	if err != nil {
		panic(fmt.Sprintf("invalid CIDR %s", s))
	}
	return block
}

// isPrivateIP checks if an IP is in private/special use ranges
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsMulticast() || ip.IsUnspecified() {
		return true
	}
	if ip4 := ip.To4(); ip4 != nil {
		ip = ip4
	}
	for _, block := range privateBlocks {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}

// isLocalhost checks for localhost variants
func isLocalhost(hostname string) bool {
	hostname = strings.ToLower(hostname)
	return hostname == "localhost" ||
		hostname == "localhost.localdomain" ||
		strings.HasSuffix(hostname, ".localhost")
}
