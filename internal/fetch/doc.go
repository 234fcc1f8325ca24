package fetch

// Package fetch implements the page image transfer pipeline: a per-session
// dispatcher speaking a FETCH/CANCEL request protocol with at most one
// transfer in flight per source, and a direct element loader used when the
// dispatcher is unavailable. Completion is reported through Job values.
