package fetch

import "sync"

// Job is an in-flight transfer. It completes exactly once.
type Job struct {
	Src string

	done  chan struct{}
	once  sync.Once
	resp  Response
	abort func()
}

func newJob(src string, abort func()) *Job {
	return &Job{
		Src:   src,
		done:  make(chan struct{}),
		abort: abort,
	}
}

// Done is closed when the job completes
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Result returns the response once the job is done
func (j *Job) Result() (Response, bool) {
	select {
	case <-j.done:
		return j.resp, true
	default:
		return Response{}, false
	}
}

// Cancel aborts the transfer. Canceling a finished job is a no-op.
func (j *Job) Cancel() {
	if j.abort != nil {
		j.abort()
	}
}

// finish publishes the response. It reports whether this call completed the job.
func (j *Job) finish(resp Response) bool {
	completed := false
	j.once.Do(func() {
		j.resp = resp
		close(j.done)
		completed = true
	})
	return completed
}

// Completed returns a job that is already done with the given response
func Completed(resp Response) *Job {
	j := newJob(resp.Src, nil)
	j.finish(resp)
	return j
}
