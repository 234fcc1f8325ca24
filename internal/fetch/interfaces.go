package fetch

// Dispatcher defines the message protocol of the offload fetch worker.
type Dispatcher interface {
	// Post handles a FETCH or CANCEL request. FETCH returns the job for the
	// source, CANCEL returns nil.
	Post(req Request) *Job
}

// Loader defines a direct, undeduplicated image load used as a fallback.
type Loader interface {
	Load(src string) *Job
}
