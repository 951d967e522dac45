//go:build chessdebug

package board

// debugChecks enables board invariant assertions. Build or test with
// -tags chessdebug to turn them on.
const debugChecks = true
