package toolchain

import (
	"ccdriver/internal/driver"
	"ccdriver/internal/options"
	"ccdriver/internal/triple"
)

// GNUAssembler builds GNU as invocations for ELF targets.
type GNUAssembler struct {
	TC *Generic
}

// Name identifies the tool.
func (a *GNUAssembler) Name() string { return "GNU::Assembler" }

// ConstructJob queues `as <arch flags> -I... <-Wa values> -o out inputs`.
func (a *GNUAssembler) ConstructJob(c *driver.Compilation, ja *driver.JobAction, output driver.InputInfo, inputs []driver.InputInfo, args *options.ArgList) error {
	var cmdArgs []string

	switch a.TC.Triple.Arch() {
	case triple.X86:
		cmdArgs = append(cmdArgs, "--32")
	case triple.X86_64:
		if a.TC.Triple.Environment() == "gnux32" {
			cmdArgs = append(cmdArgs, "--x32")
		} else {
			cmdArgs = append(cmdArgs, "--64")
		}
	case triple.ARM:
		cmdArgs = addLastArg(cmdArgs, args, options.OptMArch)
		cmdArgs = addLastArg(cmdArgs, args, options.OptMCPU)
		cmdArgs = addLastArg(cmdArgs, args, options.OptMFPU)
	case triple.AArch64:
		cmdArgs = append(cmdArgs, "-EL")
		cmdArgs = addLastArg(cmdArgs, args, options.OptMArch)
		cmdArgs = addLastArg(cmdArgs, args, options.OptMCPU)
	case triple.RISCV64:
		cmdArgs = append(cmdArgs, "-mabi", args.LastArgValue("lp64d", options.OptMABI))
		cmdArgs = append(cmdArgs, "-march", args.LastArgValue("rv64gc", options.OptMArch))
	}

	cmdArgs = args.AddAllArgs(cmdArgs, options.OptI)
	cmdArgs = args.AddAllArgValues(cmdArgs, options.OptWaComma, options.OptXassembler)

	cmdArgs = append(cmdArgs, "-o", output.Filename())
	for _, in := range inputs {
		cmdArgs = append(cmdArgs, in.Filename())
	}

	c.AddCommand(&driver.Command{
		Creator:    a.Name(),
		Kind:       ja.Kind,
		Executable: a.TC.GetProgramPath("as"),
		Arguments:  cmdArgs,
		Inputs:     inputs,
		Output:     output,
		Response:   driver.ResponseGCC,
	})
	return nil
}

func addLastArg(out []string, args *options.ArgList, id options.ID) []string {
	if a := args.LastArg(id); a != nil {
		return a.Render(out)
	}
	return out
}
