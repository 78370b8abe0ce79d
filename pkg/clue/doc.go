// Package clue is a small client for triggering named actions ("clues") on a
// remote Clue server.
//
// A Client holds a validated endpoint (host and port) and offers two
// operations:
//
//   - Ping opens a TCP connection to the endpoint and reports how long the
//     connect took, in milliseconds, or Unreachable (-1).
//   - Execute POSTs to https://{host}:{port}/api/clue/{name}, either blocking
//     until the server answers or fire-and-forget.
//
// # Usage
//
//	client, err := clue.New("192.168.1.20", 8443)
//	if err != nil {
//	    return err // *clue.ValidationError
//	}
//
//	if ms := client.Ping(ctx); ms == clue.Unreachable {
//	    return errors.New("clue server is down")
//	}
//
//	// Blocks; non-2xx answers come back as *clue.StatusError.
//	if err := client.Execute(ctx, "front-door", false); err != nil {
//	    return err
//	}
//
//	// Returns immediately, the outcome is only logged.
//	client.Fire("lights-off")
//
// TLS certificates are not verified: Clue servers commonly run with
// self-signed certificates.
//
// # Version
//
// See version.go for version constants that can be used programmatically.
package clue
