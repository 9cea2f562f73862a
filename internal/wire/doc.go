// Package wire encodes DNS query messages and decodes DNS response messages
// directly on the wire format described in RFC 1035.
//
// # Queries
//
// [BuildQuery] and [*Builder] serialize a (domain, record type) pair into a
// single-question query:
//
//	query := wire.BuildQuery("example.com", "A")
//
// The transaction id comes from a [Source]. The package default draws it
// from math/rand/v2; tests inject a [*SequenceSource] to get deterministic
// packets:
//
//	b := wire.NewBuilder(&wire.SequenceSource{IDs: []uint16{0x1234}})
//	query := b.Build("example.com", "MX")
//
// Record types are looked up in a fixed table (A, AAAA, MX). An unknown
// symbol is not an error: it is encoded as an A query. Use [TypeCode] to
// find out whether the fallback applied.
//
// The builder does not validate label lengths. Callers that accept
// arbitrary input should run [ValidateDomain] first.
//
// # Responses
//
// [ParseResponse] and [*Parser] walk a response buffer with a bounded
// cursor and return the IPv4 addresses carried by A records, in wire order.
// Compressed names are skipped without being followed. Malformed or
// truncated input never produces an error: parsing stops and the
// addresses decoded so far are returned.
//
// By default only the answer section is read, as bounded by the header
// counts. [WithAllSections] extends the walk over the authority and
// additional sections, so glue addresses are reported as well.
package wire
