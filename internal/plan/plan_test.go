package plan

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"ccdriver/internal/driver"
	"ccdriver/internal/options"
)

func sampleCommands() []*driver.Command {
	lc := options.MustParse("-lc").Args()[0]
	return []*driver.Command{
		{
			Creator:    "GNU::Assembler",
			Kind:       driver.AssembleJob,
			Executable: "/tool/bin/as",
			Arguments:  []string{"--64", "-o", "crt0.o", "crt0.s"},
			Inputs:     []driver.InputInfo{driver.FileInput("crt0.s", driver.TypeAsm)},
			Output:     driver.FileInput("crt0.o", driver.TypeObject),
			Response:   driver.ResponseGCC,
		},
		{
			Creator:    "genode::Linker",
			Kind:       driver.LinkJob,
			Executable: "ld",
			Arguments:  []string{"crt0.o", "-lc", "--eh-frame-hdr", "-o", "core"},
			Inputs:     []driver.InputInfo{driver.FileInput("crt0.o", driver.TypeObject), driver.ArgInput(lc)},
			Output:     driver.FileInput("core", driver.TypeImage),
		},
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "core.plan")
	want := New("x86_64-pc-genode", "classic", sampleCommands())
	if err := WriteFile(path, want); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.Target != "x86_64-pc-genode" || !want.Created.Equal(got.Created) {
		t.Fatalf("header = %s %v", got.Target, got.Created)
	}
	if len(got.Jobs) != 2 {
		t.Fatalf("jobs = %d", len(got.Jobs))
	}
	// argument inputs are not tracked as files
	if !reflect.DeepEqual(got.Jobs[1].Inputs, []string{"crt0.o"}) {
		t.Fatalf("link inputs = %q", got.Jobs[1].Inputs)
	}

	cmds := got.Commands()
	if len(cmds) != 2 {
		t.Fatalf("commands = %d", len(cmds))
	}
	if cmds[0].Kind != driver.AssembleJob || cmds[0].Response != driver.ResponseGCC {
		t.Fatalf("assemble = %+v", cmds[0])
	}
	if want := []string{"/tool/bin/as", "--64", "-o", "crt0.o", "crt0.s"}; !reflect.DeepEqual(cmds[0].Argv(), want) {
		t.Fatalf("argv = %q, want %q", cmds[0].Argv(), want)
	}
	if cmds[1].Output.Type != driver.TypeImage || cmds[1].Output.Filename() != "core" {
		t.Fatalf("link output = %+v", cmds[1].Output)
	}
}

func TestDecodeRejectsOtherSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&File{Schema: SchemaVersion + 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(&buf); !errors.Is(err, ErrSchema) {
		t.Fatalf("err = %v, want ErrSchema", err)
	}
	if _, err := Decode(bytes.NewReader([]byte{0xc1})); err == nil {
		t.Fatalf("garbage must not decode")
	}
}

func TestCache(t *testing.T) {
	c, err := OpenCacheAt(filepath.Join(t.TempDir(), "ccdriver"))
	if err != nil {
		t.Fatalf("OpenCacheAt: %v", err)
	}

	key := KeyFor("x86_64-pc-genode", "classic", "/src", []string{"a.o", "-o", "out"})
	if key == KeyFor("x86_64-pc-genode", "lld", "/src", []string{"a.o", "-o", "out"}) {
		t.Fatalf("variant must change the key")
	}
	if key == KeyFor("x86_64-pc-genode", "classic", "/src", []string{"a.o-o", "out"}) {
		t.Fatalf("argv boundaries must change the key")
	}

	if _, ok, err := c.Get(key); err != nil || ok {
		t.Fatalf("Get on empty cache = %v, %v", ok, err)
	}
	if err := c.Put(key, New("x86_64-pc-genode", "classic", sampleCommands())); err != nil {
		t.Fatalf("Put: %v", err)
	}
	f, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if len(f.Jobs) != 2 {
		t.Fatalf("jobs = %d", len(f.Jobs))
	}

	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok, err := c.Get(key); err != nil || ok {
		t.Fatalf("Get after DropAll = %v, %v", ok, err)
	}

	var nilCache *Cache
	if err := nilCache.Put(key, f); err != nil {
		t.Fatalf("nil cache Put: %v", err)
	}
}
