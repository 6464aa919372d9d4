package pipeline

// RunStats tracks aggregate counters and artifact byte totals across a
// batch run.
type RunStats struct {
	Total         int
	Succeeded     int
	Failed        int
	ArtifactBytes int64
}

// Done returns how many jobs have resolved so far.
func (s *RunStats) Done() int {
	return s.Succeeded + s.Failed
}
