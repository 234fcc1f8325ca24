package reader

// Package reader assembles a reading session: the main loop, the fetch
// dispatcher, the object URL store, one loader per spine item and the
// slider driving them.
