package diag

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	// Arg is the offending argument as written, if any.
	Arg   string
	Notes []string
}

func New(sev Severity, code Code, arg, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Arg:      arg,
		Message:  msg,
	}
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(d.Notes, msg)
	return d
}
