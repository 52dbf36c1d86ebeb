package walker

// RunStats tracks aggregate counters across a run. Byte totals cover
// transcoded files only; copies are identical on both sides by definition.
type RunStats struct {
	Transcoded   int
	Copied       int
	TreeCopied   int
	EncodeFailed int

	TotalInputBytes  int64
	TotalOutputBytes int64
}

// SpaceSaved returns the byte difference between transcode inputs and
// outputs. Positive means the outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}
