package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/miekg/dns"
)

const (
	// HeaderLen is the size of the fixed DNS message header.
	HeaderLen = 12
	// MaxLabelLen is the longest label allowed in a domain name.
	MaxLabelLen = 63
	// MaxNameLen is the longest domain name allowed in wire form.
	MaxNameLen = 255
	// MaxUDPSize is the largest response accepted over plain UDP.
	MaxUDPSize = 512
	// FlagsStandardQuery is a standard query with recursion desired.
	FlagsStandardQuery uint16 = 0x0100
)

var (
	// ErrEmptyLabel is returned by ValidateDomain for names such as "a..b".
	ErrEmptyLabel = errors.New("empty label")
	// ErrLabelTooLong is returned by ValidateDomain for labels over 63 octets.
	ErrLabelTooLong = errors.New("label too long")
	// ErrNameTooLong is returned by ValidateDomain for names over 255 octets.
	ErrNameTooLong = errors.New("name too long")
)

// DefaultRecordType is used when no record type is requested and as the
// fallback for symbols missing from the type table.
const DefaultRecordType = "A"

var _recordTypes = map[string]uint16{
	"A":    dns.TypeA,
	"AAAA": dns.TypeAAAA,
	"MX":   dns.TypeMX,
}

// TypeCode maps a record type symbol to its numeric code. Matching is case
// insensitive. Unknown symbols return the A code with known=false; this
// fallback is deliberate and callers may log it but must not treat it as
// a failure.
func TypeCode(symbol string) (code uint16, known bool) {
	code, known = _recordTypes[strings.ToUpper(strings.TrimSpace(symbol))]
	if !known {
		return dns.TypeA, false
	}
	return code, true
}

// Source supplies transaction ids.
type Source interface {
	Uint16() uint16
}

type randSource struct{}

func (randSource) Uint16() uint16 { return uint16(rand.Intn(1 << 16)) }

// SequenceSource replays a fixed list of ids, wrapping around at the end.
// An empty list always yields zero.
type SequenceSource struct {
	IDs  []uint16
	next int
}

// Uint16 returns the next id in the sequence.
func (s *SequenceSource) Uint16() uint16 {
	if len(s.IDs) == 0 {
		return 0
	}
	id := s.IDs[s.next%len(s.IDs)]
	s.next++
	return id
}

// Builder serializes single-question DNS queries.
type Builder struct {
	src Source
}

// NewBuilder returns a Builder drawing ids from src, or from math/rand/v2
// when src is nil.
func NewBuilder(src Source) *Builder {
	if src == nil {
		src = randSource{}
	}
	return &Builder{src: src}
}

var _defaultBuilder = NewBuilder(nil)

// BuildQuery serializes a query for domain using a random transaction id.
func BuildQuery(domain, recordType string) []byte {
	return _defaultBuilder.Build(domain, recordType)
}

// Build serializes a query for domain and recordType.
//
// The domain is split on "." and written label by label without any length
// checks: labels over 63 octets produce a malformed packet.
func (b *Builder) Build(domain, recordType string) []byte {
	qtype, _ := TypeCode(recordType)

	// header + labels with their length octets and terminator + QTYPE/QCLASS
	buf := make([]byte, 0, HeaderLen+len(domain)+2+4)
	buf = binary.BigEndian.AppendUint16(buf, b.src.Uint16())
	buf = binary.BigEndian.AppendUint16(buf, FlagsStandardQuery)
	buf = binary.BigEndian.AppendUint16(buf, 1) // QDCOUNT
	buf = binary.BigEndian.AppendUint16(buf, 0) // ANCOUNT
	buf = binary.BigEndian.AppendUint16(buf, 0) // NSCOUNT
	buf = binary.BigEndian.AppendUint16(buf, 0) // ARCOUNT

	for _, label := range strings.Split(domain, ".") {
		buf = append(buf, byte(len(label)))
		buf = append(buf, label...)
	}
	buf = append(buf, 0)

	buf = binary.BigEndian.AppendUint16(buf, qtype)
	buf = binary.BigEndian.AppendUint16(buf, dns.ClassINET)
	return buf
}

// ValidateDomain reports whether domain can be encoded by Build without
// producing a malformed name. A single trailing dot is not accepted; strip
// it first.
func ValidateDomain(domain string) error {
	labels := strings.Split(domain, ".")
	wireLen := 1
	for _, label := range labels {
		switch {
		case label == "":
			return fmt.Errorf("%w in %q", ErrEmptyLabel, domain)
		case len(label) > MaxLabelLen:
			return fmt.Errorf("%w: %d octets in %q", ErrLabelTooLong, len(label), domain)
		}
		wireLen += len(label) + 1
	}
	if wireLen > MaxNameLen {
		return fmt.Errorf("%w: %d octets", ErrNameTooLong, wireLen)
	}
	return nil
}
