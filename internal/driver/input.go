package driver

import "ccdriver/internal/options"

type inputKind uint8

const (
	inputNothing inputKind = iota
	inputFilename
	inputArg
)

// InputInfo describes one input or output of a job: either a file on
// disk or a command-line argument that must reach the tool unchanged.
type InputInfo struct {
	kind     inputKind
	filename string
	arg      *options.Arg
	Type     FileType
}

// Nothing is the zero input, used for jobs without an output file.
func Nothing() InputInfo { return InputInfo{} }

// FileInput describes a file.
func FileInput(name string, ty FileType) InputInfo {
	return InputInfo{kind: inputFilename, filename: name, Type: ty}
}

// ArgInput describes a linker-input argument such as -lfoo.
func ArgInput(a *options.Arg) InputInfo {
	return InputInfo{kind: inputArg, arg: a, Type: TypeLinkerArg}
}

func (i InputInfo) IsNothing() bool  { return i.kind == inputNothing }
func (i InputInfo) IsFilename() bool { return i.kind == inputFilename }
func (i InputInfo) IsInputArg() bool { return i.kind == inputArg }

// Filename returns the file path, or "" for non-file inputs.
func (i InputInfo) Filename() string { return i.filename }

// InputArg returns the argument, or nil for non-argument inputs.
func (i InputInfo) InputArg() *options.Arg { return i.arg }

// String renders the input for logs and job listings.
func (i InputInfo) String() string {
	switch i.kind {
	case inputFilename:
		return i.filename
	case inputArg:
		return i.arg.String()
	default:
		return "(nothing)"
	}
}
