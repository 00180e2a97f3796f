package lint

// AuditListener receives the outcome of a run. Listeners are notified
// after all files are processed, in report order, from a single
// goroutine.
type AuditListener interface {
	AuditStarted()
	FileStarted(path string)
	AddViolation(v Violation)
	AddException(path string, err error)
	FileFinished(path string, skipped bool)
	AuditFinished(r *Report)
}

// Notify replays a report to listeners.
func Notify(r *Report, listeners ...AuditListener) {
	for _, l := range listeners {
		l.AuditStarted()
	}
	for _, f := range r.Files {
		for _, l := range listeners {
			l.FileStarted(f.Path)
		}
		for _, v := range f.Violations {
			for _, l := range listeners {
				l.AddViolation(v)
			}
		}
		if f.Err != nil {
			for _, l := range listeners {
				l.AddException(f.Path, f.Err)
			}
		}
		for _, l := range listeners {
			l.FileFinished(f.Path, f.Skipped)
		}
	}
	for _, l := range listeners {
		l.AuditFinished(r)
	}
}
