// Package plan stores built jobs on disk so they can be executed by a
// later invocation.
package plan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"ccdriver/internal/driver"
)

// SchemaVersion is bumped whenever File changes shape.
const SchemaVersion uint16 = 1

// ErrSchema is returned for plans written by a different schema.
var ErrSchema = errors.New("plan: schema mismatch")

// File is a serialised job list for one target.
type File struct {
	Schema  uint16
	Target  string
	Variant string
	Created time.Time
	Jobs    []Job
}

// Job is the on-disk form of a driver.Command.
type Job struct {
	Creator    string
	Kind       uint8
	Executable string
	Args       []string
	Inputs     []string
	Output     string
	Response   uint8
}

// New captures cmds for target.
func New(target, variant string, cmds []*driver.Command) *File {
	f := &File{
		Schema:  SchemaVersion,
		Target:  target,
		Variant: variant,
		Created: time.Now().UTC().Truncate(time.Second),
		Jobs:    make([]Job, 0, len(cmds)),
	}
	for _, cmd := range cmds {
		f.Jobs = append(f.Jobs, Job{
			Creator:    cmd.Creator,
			Kind:       uint8(cmd.Kind),
			Executable: cmd.Executable,
			Args:       append([]string(nil), cmd.Arguments...),
			Inputs:     cmd.InputFilenames(),
			Output:     cmd.Output.Filename(),
			Response:   uint8(cmd.Response),
		})
	}
	return f
}

// Commands rebuilds the commands. Argument inputs are already part of
// the argument list, so only file inputs are restored.
func (f *File) Commands() []*driver.Command {
	out := make([]*driver.Command, 0, len(f.Jobs))
	for _, j := range f.Jobs {
		kind := driver.ActionKind(j.Kind)
		cmd := &driver.Command{
			Creator:    j.Creator,
			Kind:       kind,
			Executable: j.Executable,
			Arguments:  append([]string(nil), j.Args...),
			Response:   driver.ResponseFileSupport(j.Response),
		}
		for _, in := range j.Inputs {
			cmd.Inputs = append(cmd.Inputs, driver.FileInput(in, driver.TypeForFile(in)))
		}
		if j.Output != "" {
			outType := driver.TypeObject
			if kind == driver.LinkJob {
				outType = driver.TypeImage
			}
			cmd.Output = driver.FileInput(j.Output, outType)
		}
		out = append(out, cmd)
	}
	return out
}

// Encode writes f as msgpack.
func Encode(w io.Writer, f *File) error {
	return msgpack.NewEncoder(w).Encode(f)
}

// Decode reads a plan and checks its schema.
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := msgpack.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("plan: decode: %w", err)
	}
	if f.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, f.Schema, SchemaVersion)
	}
	return &f, nil
}

// WriteFile stores f at path, replacing any previous plan atomically.
func WriteFile(path string, f *File) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Encode(tmp, f); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(tmp.Name(), path)
}

// ReadFile loads a plan from path.
func ReadFile(path string) (*File, error) {
	// #nosec G304 -- plan path comes from the command line
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Decode(fh)
}
