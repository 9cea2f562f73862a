package wire

import (
	"encoding/binary"
	"net"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/suite"
)

type ResponseTestSuite struct {
	suite.Suite
}

// rawHeader returns a response header with no question echo.
func rawHeader(an, ns, ar uint16) []byte {
	buf := []byte{0xbe, 0xef, 0x81, 0x80, 0x00, 0x00}
	buf = binary.BigEndian.AppendUint16(buf, an)
	buf = binary.BigEndian.AppendUint16(buf, ns)
	return binary.BigEndian.AppendUint16(buf, ar)
}

// rawRecord encodes a record whose NAME is a pointer to offset 12.
func rawRecord(rtype uint16, rdata []byte) []byte {
	buf := []byte{0xc0, 0x0c}
	buf = binary.BigEndian.AppendUint16(buf, rtype)
	buf = binary.BigEndian.AppendUint16(buf, dns.ClassINET)
	buf = binary.BigEndian.AppendUint32(buf, 300)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(rdata)))
	return append(buf, rdata...)
}

func aRR(name, ip string) dns.RR {
	return &dns.A{
		Hdr: dns.RR_Header{Name: name, Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 300},
		A:   net.ParseIP(ip).To4(),
	}
}

// reply packs a response to a question for name, compressing names unless
// told otherwise.
func (s *ResponseTestSuite) reply(name string, qtype uint16, compress bool, answer, ns, extra []dns.RR) []byte {
	query := new(dns.Msg)
	query.SetQuestion(name, qtype)

	resp := new(dns.Msg)
	resp.SetReply(query)
	resp.Compress = compress
	resp.Answer = answer
	resp.Ns = ns
	resp.Extra = extra

	raw, err := resp.Pack()
	s.Require().NoError(err)
	return raw
}

func (s *ResponseTestSuite) TestSingleAnswer() {
	raw := s.reply("example.com.", dns.TypeA, true, []dns.RR{aRR("example.com.", "93.184.216.34")}, nil, nil)

	s.Equal([]string{"93.184.216.34"}, ParseResponse(raw))
}

func (s *ResponseTestSuite) TestAnswersInRecordOrder() {
	ips := []string{"10.0.0.1", "10.0.0.2", "192.0.2.7", "198.51.100.254", "203.0.113.0"}

	for _, compress := range []bool{true, false} {
		var answers []dns.RR
		for _, ip := range ips {
			answers = append(answers, aRR("www.example.com.", ip))
		}
		raw := s.reply("www.example.com.", dns.TypeA, compress, answers, nil, nil)

		s.Equal(ips, ParseResponse(raw), "compress=%v", compress)
	}
}

func (s *ResponseTestSuite) TestSkipsOtherTypes() {
	answers := []dns.RR{
		&dns.CNAME{
			Hdr:    dns.RR_Header{Name: "www.example.com.", Rrtype: dns.TypeCNAME, Class: dns.ClassINET, Ttl: 60},
			Target: "edge.example.net.",
		},
		aRR("edge.example.net.", "192.0.2.1"),
		&dns.AAAA{
			Hdr:  dns.RR_Header{Name: "edge.example.net.", Rrtype: dns.TypeAAAA, Class: dns.ClassINET, Ttl: 60},
			AAAA: net.ParseIP("2001:db8::1"),
		},
		aRR("edge.example.net.", "192.0.2.2"),
	}
	raw := s.reply("www.example.com.", dns.TypeA, true, answers, nil, nil)

	s.Equal([]string{"192.0.2.1", "192.0.2.2"}, ParseResponse(raw))
}

func (s *ResponseTestSuite) TestTypeFilterIndependentOfQuestion() {
	// An MX question answered with A records still yields the addresses.
	raw := s.reply("example.com.", dns.TypeMX, true, []dns.RR{
		aRR("example.com.", "198.51.100.10"),
		&dns.MX{
			Hdr:        dns.RR_Header{Name: "example.com.", Rrtype: dns.TypeMX, Class: dns.ClassINET, Ttl: 60},
			Preference: 10,
			Mx:         "mail.example.com.",
		},
	}, nil, nil)

	s.Equal([]string{"198.51.100.10"}, ParseResponse(raw))
}

func (s *ResponseTestSuite) TestShortBuffers() {
	for n := 0; n < HeaderLen; n++ {
		s.Empty(ParseResponse(make([]byte, n)), "length %d", n)
	}
	s.Empty(ParseResponse(nil))
}

func (s *ResponseTestSuite) TestHeaderOnly() {
	s.Empty(ParseResponse(rawHeader(0, 0, 0)))
	s.Empty(ParseResponse(rawHeader(3, 0, 0)))
}

func (s *ResponseTestSuite) TestTruncatedRecords() {
	raw := s.reply("example.com.", dns.TypeA, true, []dns.RR{
		aRR("example.com.", "192.0.2.1"),
		aRR("example.com.", "192.0.2.2"),
	}, nil, nil)

	// Every cut inside the second record keeps only the first address.
	secondStart := len(raw) - 16
	for cut := secondStart; cut < len(raw); cut++ {
		s.Equal([]string{"192.0.2.1"}, ParseResponse(raw[:cut]), "cut at %d", cut)
	}
	// Every cut inside the first record yields nothing.
	for cut := secondStart - 16; cut < secondStart; cut++ {
		s.Empty(ParseResponse(raw[:cut]), "cut at %d", cut)
	}
}

func (s *ResponseTestSuite) TestRDLengthPastEnd() {
	raw := rawHeader(2, 0, 0)
	raw = append(raw, rawRecord(dns.TypeA, []byte{93, 184, 216, 34})...)
	bad := rawRecord(dns.TypeA, []byte{1, 2, 3, 4})
	binary.BigEndian.PutUint16(bad[10:], 0xffff)
	raw = append(raw, bad...)

	s.NotPanics(func() {
		s.Equal([]string{"93.184.216.34"}, ParseResponse(raw))
	})
}

func (s *ResponseTestSuite) TestCompressionPointerIsTwoOctets() {
	for _, lead := range []byte{0xc0, 0xc5, 0xff} {
		rec := rawRecord(dns.TypeA, []byte{10, 1, 2, 3})
		rec[0] = lead
		raw := append(rawHeader(1, 0, 0), rec...)

		s.Equal([]string{"10.1.2.3"}, ParseResponse(raw), "lead octet %#x", lead)
	}
}

func (s *ResponseTestSuite) TestLabelsThenPointer() {
	// "www" followed by a pointer, as servers emit for names sharing a suffix.
	rec := []byte{3, 'w', 'w', 'w', 0xc0, 0x0c}
	rec = append(rec, rawRecord(dns.TypeA, []byte{10, 9, 8, 7})[2:]...)
	raw := append(rawHeader(1, 0, 0), rec...)

	s.Equal([]string{"10.9.8.7"}, ParseResponse(raw))
}

func (s *ResponseTestSuite) TestReservedLabelType() {
	rec := rawRecord(dns.TypeA, []byte{10, 0, 0, 1})
	rec[0] = 0x40
	raw := append(rawHeader(2, 0, 0), rawRecord(dns.TypeA, []byte{10, 0, 0, 9})...)
	raw = append(raw, rec...)

	s.Equal([]string{"10.0.0.9"}, ParseResponse(raw))
}

func (s *ResponseTestSuite) TestShortRData() {
	raw := rawHeader(2, 0, 0)
	raw = append(raw, rawRecord(dns.TypeA, []byte{10, 0})...)
	raw = append(raw, rawRecord(dns.TypeA, []byte{10, 0, 0, 2})...)

	s.Equal([]string{"10.0.0.2"}, ParseResponse(raw))
}

func (s *ResponseTestSuite) TestSections() {
	answers := []dns.RR{aRR("example.com.", "192.0.2.10")}
	ns := []dns.RR{&dns.NS{
		Hdr: dns.RR_Header{Name: "example.com.", Rrtype: dns.TypeNS, Class: dns.ClassINET, Ttl: 3600},
		Ns:  "ns1.example.com.",
	}}
	extra := []dns.RR{aRR("ns1.example.com.", "192.0.2.53")}
	raw := s.reply("example.com.", dns.TypeA, true, answers, ns, extra)

	testCases := []struct {
		name     string
		parser   *Parser
		expected []string
	}{
		{
			name:     "answers only",
			parser:   NewParser(),
			expected: []string{"192.0.2.10"},
		},
		{
			name:     "all sections",
			parser:   NewParser(WithAllSections()),
			expected: []string{"192.0.2.10", "192.0.2.53"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.parser.Parse(raw))
		})
	}
}

func (s *ResponseTestSuite) TestParseHeader() {
	raw := s.reply("example.com.", dns.TypeA, true, []dns.RR{aRR("example.com.", "192.0.2.1")}, nil, nil)
	msg := new(dns.Msg)
	s.Require().NoError(msg.Unpack(raw))

	h, ok := ParseHeader(raw)
	s.True(ok)
	s.Equal(msg.Id, h.ID)
	s.Equal(uint16(1), h.QDCount)
	s.Equal(uint16(1), h.ANCount)
	s.Zero(h.NSCount)
	s.Zero(h.ARCount)
	s.NotZero(h.Flags & 0x8000)

	_, ok = ParseHeader(raw[:HeaderLen-1])
	s.False(ok)
}

func (s *ResponseTestSuite) TestCursorBounds() {
	c := newCursor([]byte{1, 2, 3})

	_, ok := c.uint32()
	s.False(ok)
	s.Equal(3, c.remaining(), "failed read must not advance")

	v, ok := c.uint16()
	s.True(ok)
	s.Equal(uint16(0x0102), v)

	s.False(c.skip(2))
	s.False(c.skip(-1))
	s.True(c.skip(1))
	_, ok = c.uint8()
	s.False(ok)
}

func TestResponseSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}
