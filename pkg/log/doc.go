// Package log is the logging seam used by the clue client.
//
// The client never writes to a logger it was not given. By default it uses
// NoopLogger; callers that want output pass a Logger through
// clue.WithLogger. A zerolog-backed implementation is provided:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	client, err := clue.New("clue.example.com", 443, clue.WithLogger(logger))
//
// Any other logging library can be plugged in by implementing the four
// level methods of Logger.
package log
