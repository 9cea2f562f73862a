package wire

import (
	"net/netip"

	"github.com/miekg/dns"
)

// Header is the fixed 12-octet DNS message header.
type Header struct {
	ID      uint16
	Flags   uint16
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// ParseHeader decodes the header of buf. It returns ok=false when buf is
// shorter than HeaderLen.
func ParseHeader(buf []byte) (h Header, ok bool) {
	return readHeader(newCursor(buf))
}

func readHeader(c *cursor) (Header, bool) {
	var (
		h      Header
		fields = [...]*uint16{&h.ID, &h.Flags, &h.QDCount, &h.ANCount, &h.NSCount, &h.ARCount}
	)
	if c.remaining() < HeaderLen {
		return Header{}, false
	}
	for _, f := range fields {
		*f, _ = c.uint16()
	}
	return h, true
}

// Parser extracts IPv4 addresses from DNS responses.
type Parser struct {
	allSections bool
}

// ParserOpt configures a Parser.
type ParserOpt func(p *Parser)

// WithAllSections makes the parser read authority and additional records
// after the answers, treating all three sections as one record stream.
func WithAllSections() ParserOpt {
	return func(p *Parser) {
		p.allSections = true
	}
}

// NewParser returns a Parser that reads only the answer section unless
// configured otherwise.
func NewParser(opts ...ParserOpt) *Parser {
	p := &Parser{}
	for _, o := range opts {
		o(p)
	}
	return p
}

var _defaultParser = NewParser()

// ParseResponse returns the addresses of the A records in the answer
// section of buf.
func ParseResponse(buf []byte) []string {
	return _defaultParser.Parse(buf)
}

// Parse returns the dotted-decimal addresses of every A record it reaches,
// in wire order. Records of any other type are skipped. The header id is
// not checked against any query.
//
// Parse never fails: a buffer shorter than the header yields no addresses,
// and a record cut short by the end of the buffer ends the walk with the
// addresses gathered up to that point.
func (p *Parser) Parse(buf []byte) []string {
	c := newCursor(buf)
	h, ok := readHeader(c)
	if !ok {
		return nil
	}

	for i := 0; i < int(h.QDCount); i++ {
		if !skipName(c) || !c.skip(4) { // QTYPE + QCLASS
			return nil
		}
	}

	records := int(h.ANCount)
	if p.allSections {
		records += int(h.NSCount) + int(h.ARCount)
	}

	var addrs []string
	for i := 0; i < records; i++ {
		rr, ok := readRecord(c)
		if !ok {
			break
		}
		if addr, ok := rr.ipv4(); ok {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

// record holds the parts of a resource record this package interprets.
// TTL and class are read past but not kept.
type record struct {
	rtype uint16
	rdata []byte
}

func (r record) ipv4() (string, bool) {
	if r.rtype != dns.TypeA || len(r.rdata) < 4 {
		return "", false
	}
	return netip.AddrFrom4([4]byte(r.rdata[:4])).String(), true
}

// readRecord reads NAME, the 10-octet TYPE/CLASS/TTL/RDLENGTH block and
// RDATA. It fails if any of them runs past the end of the buffer.
func readRecord(c *cursor) (record, bool) {
	if !skipName(c) || c.remaining() < 10 {
		return record{}, false
	}
	rtype, _ := c.uint16()
	_, _ = c.uint16() // CLASS
	_, _ = c.uint32() // TTL
	rdlen, _ := c.uint16()

	rdata, ok := c.next(int(rdlen))
	if !ok {
		return record{}, false
	}
	return record{rtype: rtype, rdata: rdata}, true
}

// skipName advances past a domain name. A compression pointer ends the name
// after its two octets; its target is never followed.
func skipName(c *cursor) bool {
	for {
		n, ok := c.uint8()
		if !ok {
			return false
		}
		switch n & 0xC0 {
		case 0xC0:
			return c.skip(1)
		case 0x00:
			if n == 0 {
				return true
			}
			if !c.skip(int(n)) {
				return false
			}
		default:
			// 0x40 and 0x80 label types are reserved
			return false
		}
	}
}
