package driver

import (
	"fmt"
	"sync"

	"ccdriver/internal/diag"
	"ccdriver/internal/options"
)

// Compilation is one driver invocation: its arguments and the commands
// queued for execution.
type Compilation struct {
	Driver *Driver
	Args   *options.ArgList

	mu   sync.Mutex
	jobs []*Command
}

// NewCompilation starts an empty compilation.
func NewCompilation(d *Driver, args *options.ArgList) *Compilation {
	return &Compilation{Driver: d, Args: args}
}

// AddCommand queues cmd after the commands already pending.
func (c *Compilation) AddCommand(cmd *Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append(c.jobs, cmd)
}

// Jobs returns a copy of the pending commands in queue order.
func (c *Compilation) Jobs() []*Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Command, len(c.jobs))
	copy(out, c.jobs)
	return out
}

// fork returns a compilation sharing driver and arguments with its own
// job list.
func (c *Compilation) fork() *Compilation {
	return &Compilation{Driver: c.Driver, Args: c.Args}
}

// ReportUnusedArgs warns about every argument no job builder or
// driver step claimed. It returns how many were reported.
func (c *Compilation) ReportUnusedArgs() int {
	n := 0
	for _, a := range c.Args.Unclaimed() {
		if a.ID() == options.OptUnknown {
			c.Driver.Report(diag.DrvUnknownArgument, diag.SevWarning, a.String(),
				fmt.Sprintf("unknown argument: '%s'", a.String()))
		} else {
			c.Driver.Report(diag.DrvUnusedArgument, diag.SevWarning, a.String(),
				fmt.Sprintf("argument unused during compilation: '%s'", a.String()))
		}
		n++
	}
	return n
}
