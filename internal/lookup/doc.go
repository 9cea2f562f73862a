// Package lookup performs a single DNS address lookup.
//
// A lookup runs four steps: find the resolver, build the query, exchange it
// over UDP and decode the response. Codec work is delegated to package
// wire; the exchange goes through the [Exchanger] interface, which
// transport.UDP implements.
//
// # Basic Usage
//
//	c := lookup.New(5 * time.Second)
//	res, err := c.Lookup(ctx, lookup.Request{Domain: "example.com"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, addr := range res.Addresses {
//		fmt.Println(addr)
//	}
//
// # Resolver Selection
//
// The server is taken from, in order: Request.Server, Client.Server, and
// the first nameserver in Client.ResolvConf. Bare addresses get port 53.
//
// # Error Handling
//
//   - ErrConfiguration: no resolver could be found; nothing was sent
//   - ErrEmptyDomain, ErrInvalidDomain: the domain cannot be encoded
//   - transport.ErrTransport: send, receive or timeout failure; no retry
//
// A response that cannot be decoded is not an error. The Result simply
// carries the addresses decoded before the problem, possibly none. An
// unsupported record type is not an error either; an A query is sent and
// a warning is logged.
//
// # Correlation
//
// Each lookup gets a random ID (Result.ID) that is attached to its debug
// log lines. The DNS transaction id of the response is compared to the
// query's and a mismatch is logged, but the response is still decoded.
package lookup
