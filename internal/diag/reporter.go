package diag

// Reporter receives diagnostics from job builders.
type Reporter interface {
	Report(code Code, sev Severity, arg, msg string)
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, arg, msg string) {
	if r != nil {
		r.Report(code, SevError, arg, msg)
	}
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, arg, msg string) {
	if r != nil {
		r.Report(code, SevWarning, arg, msg)
	}
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, arg, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(New(sev, code, arg, msg))
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, string, string) {}
