package mockshot

// Reporter observes a run. Calls happen on the run's goroutine, in order.
type Reporter interface {
	// Captured is called after each raster is written.
	Captured(rec *CaptureRecord)
	// Wrote is called after the gallery or the document is written.
	Wrote(path string)
	// Warn receives non-fatal problems such as excluded pages.
	Warn(err error)
}

// nopReporter discards everything.
type nopReporter struct{}

func (nopReporter) Captured(*CaptureRecord) {}
func (nopReporter) Wrote(string)            {}
func (nopReporter) Warn(error)              {}
