package platform

// Package platform contains environment integration: the capability
// descriptor resolved once at startup and the publication manifest parser
// that reads local files or remote URLs.
