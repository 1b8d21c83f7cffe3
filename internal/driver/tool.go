package driver

import "ccdriver/internal/options"

// Tool builds the command for one job.
type Tool interface {
	// Name identifies the tool in commands and traces.
	Name() string
	// ConstructJob appends the command for ja to c.
	ConstructJob(c *Compilation, ja *JobAction, output InputInfo, inputs []InputInfo, args *options.ArgList) error
}

// ToolChain hands out the tool for each action kind.
type ToolChain interface {
	SelectTool(kind ActionKind) (Tool, error)
	TripleString() string
}
