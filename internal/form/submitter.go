package form

// Submitter guards a view's single outstanding write. The submit control is
// disabled exactly while Pending is true.
type Submitter struct {
	pending   bool
	result    Result
	hasResult bool
}

// Begin marks a submission as started. It returns false, and changes nothing,
// when one is already pending. Any previous result is cleared.
func (s *Submitter) Begin() bool {
	if s.pending {
		return false
	}
	s.pending = true
	s.hasResult = false
	s.result = Result{}
	return true
}

// Finish records the outcome and re-enables submission.
func (s *Submitter) Finish(r Result) {
	s.pending = false
	s.Report(r)
}

// Report records a result without a submission, e.g. a local validation
// failure.
func (s *Submitter) Report(r Result) {
	s.result = r
	s.hasResult = true
}

// Pending reports whether a submission is in flight.
func (s *Submitter) Pending() bool { return s.pending }

// Result returns the last reported result, if any.
func (s *Submitter) Result() (Result, bool) { return s.result, s.hasResult }

// Clear drops the last result.
func (s *Submitter) Clear() {
	s.hasResult = false
	s.result = Result{}
}
