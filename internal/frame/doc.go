package frame

// Package frame provides the single cooperative context the reader core runs
// on. Callbacks are posted tasks, display refresh ticks, deferred timers and
// ready notifications; all of them run one at a time so page loaders and the
// slider never need locks.
