package clue

// Version is the release of the clue client. The CLI reports it when the
// binary carries no module version.
const Version = "1.0.0"
