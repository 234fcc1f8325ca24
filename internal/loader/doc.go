package loader

// Package loader implements the per-page image loader: it decides from the
// distance to the reading position whether to load, delay, evict or cancel,
// shows "Loading..." and "Error!" placeholders on the page canvas, and hands
// finished content to the page's display element.
