package model

// Package model defines the publication data the reader core consumes: pages of
// the spine, chapters of a series, page load states and zoom/direction values.
// Structures are plain data with explicit state transition helpers.
