package options

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

// ErrMissingValue is returned when an option expecting a value ends argv.
var ErrMissingValue = errors.New("argument to option is missing")

// MissingValueError names the option that ended argv without its value.
type MissingValueError struct {
	Option string
	ID     ID
}

func (e *MissingValueError) Error() string { return fmt.Sprintf("%v: %s", ErrMissingValue, e.Option) }

func (e *MissingValueError) Unwrap() error { return ErrMissingValue }

// Help describes what the missing value was for, or "" when the option
// has no table row.
func (e *MissingValueError) Help() string {
	if opt := Lookup(e.ID); opt != nil {
		return opt.Help
	}
	return ""
}

// Arg is one parsed occurrence of an option.
type Arg struct {
	opt     *Option
	Values  []string
	Index   int
	claimed atomic.Bool
}

// ID returns the option identifier.
func (a *Arg) ID() ID { return a.opt.ID }

// Option returns the table row that produced the argument.
func (a *Arg) Option() *Option { return a.opt }

// Spelling returns the option prefix, e.g. "-L".
func (a *Arg) Spelling() string { return a.opt.Spelling }

// Matches reports whether the argument is id or belongs to group id.
func (a *Arg) Matches(id ID) bool {
	return a.opt.ID == id || (a.opt.Group != 0 && a.opt.Group == id)
}

// Value returns the first value, or "".
func (a *Arg) Value() string {
	if len(a.Values) == 0 {
		return ""
	}
	return a.Values[0]
}

// Claim marks the argument as consumed.
func (a *Arg) Claim() { a.claimed.Store(true) }

// Claimed reports whether some consumer used the argument.
func (a *Arg) Claimed() bool { return a.claimed.Load() }

// Render appends the argument as it is forwarded to an external tool.
func (a *Arg) Render(out []string) []string {
	switch a.opt.ID {
	case OptInput, OptUnknown:
		return append(out, a.Values...)
	}
	switch a.opt.Kind {
	case KindFlag:
		return append(out, a.opt.Spelling)
	case KindJoined:
		return append(out, a.opt.Spelling+a.Value())
	case KindCommaJoined:
		return append(out, a.opt.Spelling+strings.Join(a.Values, ","))
	}
	if a.opt.Has(FlagRenderJoined) {
		return append(out, a.opt.Spelling+a.Value())
	}
	return append(out, a.opt.Spelling, a.Value())
}

// RenderAsInput appends the argument in its linker-input form: options
// flagged render-as-input contribute only their values.
func (a *Arg) RenderAsInput(out []string) []string {
	if a.opt.Has(FlagRenderAsInput) {
		return append(out, a.Values...)
	}
	return a.Render(out)
}

// String returns the argument as the user would write it.
func (a *Arg) String() string {
	return strings.Join(a.Render(nil), " ")
}

// ArgList is the parsed argument collection of one compiler invocation.
// Only claim state changes after Parse; it is safe for concurrent readers.
type ArgList struct {
	args []*Arg
}

// Parse converts raw command-line words into an ArgList.
func Parse(argv []string) (*ArgList, error) {
	list := &ArgList{args: make([]*Arg, 0, len(argv))}
	for i := 0; i < len(argv); i++ {
		word := argv[i]
		if word == "--" {
			for j := i + 1; j < len(argv); j++ {
				list.args = append(list.args, &Arg{opt: &inputOption, Values: []string{argv[j]}, Index: j})
			}
			break
		}
		if word == "-" || !strings.HasPrefix(word, "-") {
			list.args = append(list.args, &Arg{opt: &inputOption, Values: []string{word}, Index: i})
			continue
		}
		opt := match(word)
		if opt == nil {
			list.args = append(list.args, &Arg{opt: &unknownOption, Values: []string{word}, Index: i})
			continue
		}
		arg := &Arg{opt: opt, Index: i}
		rest := word[len(opt.Spelling):]
		switch opt.Kind {
		case KindFlag:
		case KindJoined:
			arg.Values = []string{rest}
		case KindCommaJoined:
			arg.Values = strings.Split(rest, ",")
		case KindSeparate, KindJoinedOrSeparate:
			if rest != "" && opt.Kind == KindJoinedOrSeparate {
				arg.Values = []string{rest}
				break
			}
			if i+1 >= len(argv) {
				return nil, &MissingValueError{Option: word, ID: opt.ID}
			}
			i++
			arg.Values = []string{argv[i]}
		}
		list.args = append(list.args, arg)
	}
	return list, nil
}

// MustParse is Parse for tests and fixed argument vectors.
func MustParse(argv ...string) *ArgList {
	list, err := Parse(argv)
	if err != nil {
		panic(err)
	}
	return list
}

// Args returns every parsed argument in command-line order.
func (l *ArgList) Args() []*Arg {
	if l == nil {
		return nil
	}
	return l.args
}

func matchesAny(a *Arg, ids []ID) bool {
	for _, id := range ids {
		if a.Matches(id) {
			return true
		}
	}
	return false
}

// Filtered returns the arguments matching any of ids, in order, without
// claiming them.
func (l *ArgList) Filtered(ids ...ID) []*Arg {
	if l == nil {
		return nil
	}
	var out []*Arg
	for _, a := range l.args {
		if matchesAny(a, ids) {
			out = append(out, a)
		}
	}
	return out
}

// LastArg returns the last argument matching ids. Every match is claimed.
func (l *ArgList) LastArg(ids ...ID) *Arg {
	var last *Arg
	for _, a := range l.Filtered(ids...) {
		a.Claim()
		last = a
	}
	return last
}

// HasArg reports whether any argument matches ids, claiming the matches.
func (l *ArgList) HasArg(ids ...ID) bool {
	return l.LastArg(ids...) != nil
}

// HasFlag reports whether a flag is present without claiming it.
func (l *ArgList) HasFlag(ids ...ID) bool {
	return len(l.Filtered(ids...)) > 0
}

// LastArgValue returns the value of the last matching argument or def.
func (l *ArgList) LastArgValue(def string, ids ...ID) string {
	if a := l.LastArg(ids...); a != nil {
		return a.Value()
	}
	return def
}

// ClaimAllArgs marks every argument matching ids as consumed.
func (l *ArgList) ClaimAllArgs(ids ...ID) {
	for _, a := range l.Filtered(ids...) {
		a.Claim()
	}
}

// AddAllArgs claims and renders every argument matching ids, preserving
// command-line order.
func (l *ArgList) AddAllArgs(out []string, ids ...ID) []string {
	for _, a := range l.Filtered(ids...) {
		a.Claim()
		out = a.Render(out)
	}
	return out
}

// AddAllArgValues claims every argument matching ids and appends only
// their values.
func (l *ArgList) AddAllArgValues(out []string, ids ...ID) []string {
	for _, a := range l.Filtered(ids...) {
		a.Claim()
		out = append(out, a.Values...)
	}
	return out
}

// Inputs returns positional inputs and linker-input options in order.
func (l *ArgList) Inputs() []*Arg {
	if l == nil {
		return nil
	}
	var out []*Arg
	for _, a := range l.args {
		if a.opt.ID == OptInput || a.opt.Has(FlagLinkerInput) {
			out = append(out, a)
		}
	}
	return out
}

// Unclaimed returns non-input arguments no consumer claimed.
func (l *ArgList) Unclaimed() []*Arg {
	if l == nil {
		return nil
	}
	var out []*Arg
	for _, a := range l.args {
		if a.opt.ID == OptInput || a.Claimed() {
			continue
		}
		out = append(out, a)
	}
	return out
}
