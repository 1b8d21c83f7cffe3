package driver

import (
	"path/filepath"
	"strings"

	"ccdriver/internal/diag"
	"ccdriver/internal/options"
)

// ActionKind is the step a job performs.
type ActionKind uint8

const (
	AssembleJob ActionKind = iota + 1
	LinkJob
)

func (k ActionKind) String() string {
	switch k {
	case AssembleJob:
		return "assemble"
	case LinkJob:
		return "link"
	default:
		return "unknown"
	}
}

// JobAction is one step the driver decided to run.
type JobAction struct {
	Kind   ActionKind
	Inputs []InputInfo
	Output InputInfo
}

// DefaultImageName is the link output when -o is absent.
const DefaultImageName = "a.out"

type plannedInput struct {
	arg *options.Arg
	ty  FileType
}

// PlanActions derives assemble and link actions from the inputs in args.
// Each assembly source gets its own assemble action; with -c no link
// action is planned, and -o is rejected when that yields several objects.
// Inputs no step can handle are reported.
func PlanActions(d *Driver, args *options.ArgList) []*JobAction {
	assembleOnly := args.HasArg(options.OptC)
	output := args.LastArgValue("", options.OptO)

	var (
		planned    []plannedInput
		sources    int
		forcedType = TypeNothing
	)
	for _, a := range args.Args() {
		switch {
		case a.ID() == options.OptX:
			a.Claim()
			forcedType = TypeForLanguage(a.Value())
		case a.ID() == options.OptInput:
			ty := forcedType
			if ty == TypeNothing {
				ty = TypeForFile(a.Value())
			}
			if ty.IsAssembly() {
				sources++
			}
			planned = append(planned, plannedInput{arg: a, ty: ty})
		case a.Option().Has(options.FlagLinkerInput):
			planned = append(planned, plannedInput{arg: a, ty: TypeLinkerArg})
		}
	}

	if assembleOnly && output != "" && sources > 1 {
		d.Report(diag.DrvMultipleOutputs, diag.SevError, "-o",
			"cannot specify -o when generating multiple output files")
		return nil
	}

	var (
		actions    []*JobAction
		linkInputs []InputInfo
	)
	for _, in := range planned {
		switch {
		case in.ty == TypeLinkerArg:
			linkInputs = append(linkInputs, ArgInput(in.arg))
		case in.ty.IsAssembly():
			obj := objectName(in.arg.Value())
			if assembleOnly && output != "" && sources == 1 {
				obj = output
			}
			act := &JobAction{
				Kind:   AssembleJob,
				Inputs: []InputInfo{FileInput(in.arg.Value(), in.ty)},
				Output: FileInput(obj, TypeObject),
			}
			actions = append(actions, act)
			linkInputs = append(linkInputs, act.Output)
		case in.ty.IsLinkable():
			linkInputs = append(linkInputs, FileInput(in.arg.Value(), in.ty))
		default:
			d.Report(diag.DrvUnknownArgument, diag.SevError, in.arg.Value(),
				"no assembler or linker step handles "+in.ty.String()+" input")
		}
	}

	if assembleOnly {
		return actions
	}
	if len(linkInputs) == 0 {
		if len(actions) == 0 {
			d.Report(diag.DrvNoInputs, diag.SevError, "", "no input files")
		}
		return actions
	}
	if output == "" {
		output = DefaultImageName
	}
	return append(actions, &JobAction{
		Kind:   LinkJob,
		Inputs: linkInputs,
		Output: FileInput(output, TypeImage),
	})
}

func objectName(src string) string {
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".o"
}
