package lookup

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/idna"

	"github.com/lc/nslook/internal/filesys"
	"github.com/lc/nslook/internal/log"
	"github.com/lc/nslook/internal/resolvconf"
	"github.com/lc/nslook/internal/transport"
	"github.com/lc/nslook/internal/wire"
)

var (
	// ErrConfiguration is returned when no resolver address can be found.
	// No query is sent in that case.
	ErrConfiguration = errors.New("resolver configuration error")
	// ErrEmptyDomain is returned when an empty domain is provided.
	ErrEmptyDomain = errors.New("empty domain")
	// ErrInvalidDomain is returned for domains that cannot be encoded.
	ErrInvalidDomain = errors.New("invalid domain")
)

var _ Exchanger = (*transport.UDP)(nil)

// Exchanger sends a raw query to server and returns the raw response.
type Exchanger interface {
	Exchange(ctx context.Context, server string, query []byte) ([]byte, error)
}

// Request describes one lookup. Empty fields take the Client's defaults.
type Request struct {
	Domain     string
	RecordType string
	Server     string
}

// Result is the outcome of a lookup that reached the resolver. Addresses
// may be empty: malformed or unrelated responses are not errors.
type Result struct {
	ID         string
	Domain     string
	RecordType string
	Server     string
	Addresses  []string
}

// Client performs lookups.
type Client struct {
	Exchanger  Exchanger
	Builder    *wire.Builder
	Parser     *wire.Parser
	FS         filesys.ReadFS
	ResolvConf string
	// Server is used when a Request names none; when both are empty the
	// resolver is read from ResolvConf.
	Server string
}

// Opt is a function option for configuring the Client.
type Opt func(c *Client)

// New creates a Client that exchanges queries over UDP bounded by timeout
// and discovers the resolver from /etc/resolv.conf.
func New(timeout time.Duration, opts ...Opt) *Client {
	c := &Client{
		Exchanger:  transport.NewUDP(timeout),
		Builder:    wire.NewBuilder(nil),
		Parser:     wire.NewParser(),
		FS:         filesys.OS(),
		ResolvConf: resolvconf.DefaultPath,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithServer returns an option that skips resolver discovery.
func WithServer(server string) Opt {
	return func(c *Client) {
		c.Server = server
	}
}

// WithResolvConf returns an option to discover the resolver from path.
func WithResolvConf(path string) Opt {
	return func(c *Client) {
		c.ResolvConf = path
	}
}

// WithAllSections returns an option that also reports addresses from the
// authority and additional sections.
func WithAllSections() Opt {
	return func(c *Client) {
		c.Parser = wire.NewParser(wire.WithAllSections())
	}
}

// WithSource returns an option to draw transaction ids from src.
func WithSource(src wire.Source) Opt {
	return func(c *Client) {
		c.Builder = wire.NewBuilder(src)
	}
}

// Lookup resolves req.Domain. Resolver discovery and domain checks happen
// before anything is sent, so ErrConfiguration, ErrEmptyDomain and
// ErrInvalidDomain never follow network activity. Transport failures are
// returned as is, wrapping transport.ErrTransport for the UDP exchanger.
func (c *Client) Lookup(ctx context.Context, req Request) (*Result, error) {
	domain, err := normalizeDomain(req.Domain)
	if err != nil {
		return nil, err
	}

	recordType := strings.TrimSpace(req.RecordType)
	if recordType == "" {
		recordType = wire.DefaultRecordType
	}
	if _, known := wire.TypeCode(recordType); !known {
		log.Warn("unsupported record type, sending an A query", "type", recordType)
	}

	server, err := c.server(req.Server)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	query := c.Builder.Build(domain, recordType)
	txid := binary.BigEndian.Uint16(query)
	log.Debug("sending query",
		"lookup_id", id, "server", server, "domain", domain, "type", recordType, "txid", txid)

	start := time.Now()
	resp, err := c.Exchanger.Exchange(ctx, server, query)
	if err != nil {
		log.Debug("exchange failed", "lookup_id", id, "error", err)
		return nil, fmt.Errorf("lookup %s via %s: %w", domain, server, err)
	}

	if h, ok := wire.ParseHeader(resp); ok && h.ID != txid {
		log.Warn("response transaction id does not match query",
			"lookup_id", id, "query_id", txid, "response_id", h.ID)
	}

	addrs := c.Parser.Parse(resp)
	log.Debug("received response",
		"lookup_id", id, "bytes", len(resp), "addresses", len(addrs), "rtt", time.Since(start))

	return &Result{
		ID:         id,
		Domain:     domain,
		RecordType: recordType,
		Server:     server,
		Addresses:  addrs,
	}, nil
}

func (c *Client) server(override string) (string, error) {
	if s := strings.TrimSpace(override); s != "" {
		return s, nil
	}
	if c.Server != "" {
		return c.Server, nil
	}
	server, err := resolvconf.Nameserver(c.FS, c.ResolvConf)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return server, nil
}

// normalizeDomain strips surrounding space and one trailing dot, converts
// internationalized names to their ASCII form and checks label lengths.
func normalizeDomain(domain string) (string, error) {
	domain = strings.TrimSuffix(strings.TrimSpace(domain), ".")
	if domain == "" {
		return "", ErrEmptyDomain
	}
	ascii, err := idna.ToASCII(domain)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDomain, err)
	}
	if err := wire.ValidateDomain(ascii); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDomain, err)
	}
	return ascii, nil
}
