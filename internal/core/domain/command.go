package domain

import "io"

// Command is an external process invocation.
type Command struct {
	// Name is the executable, either a path or a name looked up on PATH.
	Name string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds "KEY=VALUE" overrides applied on top of the process environment.
	Env []string
	// PathPrepend lists directories put in front of PATH for this child only.
	PathPrepend []string
	Stdin       io.Reader
	// Description is the short, human readable name shown in progress output.
	Description string
}

// Argv returns the full command line.
func (c *Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Name)
	return append(argv, c.Args...)
}

// Label returns the description, falling back to the executable name.
func (c *Command) Label() string {
	if c.Description != "" {
		return c.Description
	}
	return c.Name
}
