package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
)

const (
	configFileName = "ccdriver.toml"
	defaultTarget  = "x86_64-pc-genode"
)

type fileConfig struct {
	Target    targetConfig    `toml:"target"`
	Driver    driverConfig    `toml:"driver"`
	Companion companionConfig `toml:"companion"`
	Link      linkConfig      `toml:"link"`
}

type targetConfig struct {
	Triple  string `toml:"triple"`
	Variant string `toml:"variant"`
}

type driverConfig struct {
	Dir         string `toml:"dir"`
	ResourceDir string `toml:"resource_dir"`
	SysRoot     string `toml:"sysroot"`
}

type companionConfig struct {
	Root          string `toml:"root"`
	Triple        string `toml:"triple"`
	Version       string `toml:"version"`
	GCCSuffix     string `toml:"gcc_suffix"`
	OSSuffix      string `toml:"os_suffix"`
	IncludeSuffix string `toml:"include_suffix"`
}

type linkConfig struct {
	BuildID bool   `toml:"build_id"`
	Linker  string `toml:"linker"`
}

// settings is the merged view of ccdriver.toml and command-line flags.
type settings struct {
	ConfigPath  string
	Target      string
	Variant     string
	DriverDir   string
	ResourceDir string
	SysRoot     string
	Companion   companionConfig
	BuildID     bool
	Linker      string
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fileConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("companion") {
		if !meta.IsDefined("companion", "root") || strings.TrimSpace(cfg.Companion.Root) == "" {
			return fileConfig{}, fmt.Errorf("%s: missing [companion].root", path)
		}
		if !meta.IsDefined("companion", "version") || strings.TrimSpace(cfg.Companion.Version) == "" {
			return fileConfig{}, fmt.Errorf("%s: missing [companion].version", path)
		}
	}

	base := filepath.Dir(path)
	cfg.Driver.Dir = normalizePath(base, cfg.Driver.Dir)
	cfg.Driver.ResourceDir = normalizePath(base, cfg.Driver.ResourceDir)
	cfg.Driver.SysRoot = normalizePath(base, cfg.Driver.SysRoot)
	cfg.Companion.Root = normalizePath(base, cfg.Companion.Root)
	return cfg, nil
}

// normalizePath makes a configured path absolute relative to base. Paths
// are NFC-normalised so that names typed on different systems compare
// equal to what the filesystem returns.
func normalizePath(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = norm.NFC.String(p)
	if !filepath.IsAbs(p) && base != "" {
		p = filepath.Join(base, p)
	}
	return filepath.Clean(p)
}

// loadSettings merges the configuration file with flags; flags win.
func loadSettings(cmd *cobra.Command) (settings, error) {
	pf := cmd.Root().PersistentFlags()
	configPath, err := pf.GetString("config")
	if err != nil {
		return settings{}, err
	}

	var cfg fileConfig
	s := settings{}
	if configPath == "" {
		found, ok, err := findConfig(".")
		if err != nil {
			return settings{}, err
		}
		if ok {
			configPath = found
		}
	}
	if configPath != "" {
		cfg, err = loadConfig(configPath)
		if err != nil {
			return settings{}, err
		}
		s.ConfigPath = configPath
	}

	s.Target = cfg.Target.Triple
	s.Variant = cfg.Target.Variant
	s.DriverDir = cfg.Driver.Dir
	s.ResourceDir = cfg.Driver.ResourceDir
	s.SysRoot = cfg.Driver.SysRoot
	s.Companion = cfg.Companion
	s.BuildID = cfg.Link.BuildID
	s.Linker = cfg.Link.Linker

	strFlags := []struct {
		name string
		dst  *string
		path bool
	}{
		{"target", &s.Target, false},
		{"variant", &s.Variant, false},
		{"linker", &s.Linker, false},
		{"driver-dir", &s.DriverDir, true},
		{"resource-dir", &s.ResourceDir, true},
		{"sysroot", &s.SysRoot, true},
		{"companion-root", &s.Companion.Root, true},
		{"companion-triple", &s.Companion.Triple, false},
		{"companion-version", &s.Companion.Version, false},
		{"companion-gcc-suffix", &s.Companion.GCCSuffix, false},
		{"companion-os-suffix", &s.Companion.OSSuffix, false},
		{"companion-include-suffix", &s.Companion.IncludeSuffix, false},
	}
	for _, f := range strFlags {
		if !pf.Changed(f.name) {
			continue
		}
		v, err := pf.GetString(f.name)
		if err != nil {
			return settings{}, fmt.Errorf("failed to get %s flag: %w", f.name, err)
		}
		if f.path {
			v = normalizePath("", v)
		}
		*f.dst = v
	}
	if pf.Changed("build-id") {
		if s.BuildID, err = pf.GetBool("build-id"); err != nil {
			return settings{}, fmt.Errorf("failed to get build-id flag: %w", err)
		}
	}

	if s.Target == "" {
		s.Target = defaultTarget
	}
	if s.Companion.Root != "" && s.Companion.Version == "" {
		return settings{}, errors.New("companion root given without a companion version")
	}
	return s, nil
}
