package genode

import (
	"ccdriver/internal/driver"
	"ccdriver/internal/options"
	"ccdriver/internal/toolchain"
)

// Assembler is the GNU assembler without the tuning flags it rejects.
type Assembler struct {
	toolchain.GNUAssembler
}

func newAssembler(tc *Toolchain) driver.Tool {
	return &Assembler{GNUAssembler: toolchain.GNUAssembler{TC: &tc.Generic}}
}

// ConstructJob claims -mcmodel= and -mtune= so they neither reach as nor
// show up as unused, then builds the GNU assembler job.
func (a *Assembler) ConstructJob(c *driver.Compilation, ja *driver.JobAction, output driver.InputInfo, inputs []driver.InputInfo, args *options.ArgList) error {
	args.ClaimAllArgs(options.OptMCModel)
	args.ClaimAllArgs(options.OptMTune)

	return a.GNUAssembler.ConstructJob(c, ja, output, inputs, args)
}

// Linker builds ld invocations for Genode images.
type Linker struct {
	tc *Toolchain
}

func newLinker(tc *Toolchain) driver.Tool { return &Linker{tc: tc} }

// Name identifies the tool.
func (l *Linker) Name() string { return "genode::Linker" }

// ConstructJob queues
//
//	<linker> <inputs> <-L/-T/-e/-s/-t/-Z/-r> <extra opts> --eh-frame-hdr [-Bstatic|-shared] -o <output>
//
// The command never uses a response file.
func (l *Linker) ConstructJob(c *driver.Compilation, ja *driver.JobAction, output driver.InputInfo, inputs []driver.InputInfo, args *options.ArgList) error {
	var cmdArgs []string

	cmdArgs = toolchain.AddLinkerInputs(l.tc, c.Driver, inputs, args, cmdArgs)

	cmdArgs = args.AddAllArgs(cmdArgs, options.OptL, options.OptTGroup,
		options.OptE, options.OptS, options.OptLowerT,
		options.OptZFlag, options.OptR)

	cmdArgs = l.tc.AddExtraOpts(cmdArgs)
	cmdArgs = append(cmdArgs, "--eh-frame-hdr")
	if args.HasArg(options.OptStatic) {
		cmdArgs = append(cmdArgs, "-Bstatic")
	} else if args.HasArg(options.OptShared) {
		cmdArgs = append(cmdArgs, "-shared")
	}

	cmdArgs = append(cmdArgs, "-o", output.Filename())

	c.AddCommand(&driver.Command{
		Creator:    l.Name(),
		Kind:       ja.Kind,
		Executable: l.tc.GetLinkerPath(args),
		Arguments:  cmdArgs,
		Inputs:     inputs,
		Output:     output,
		Response:   driver.ResponseNone,
	})
	return nil
}
