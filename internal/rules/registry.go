// Package rules holds the correction heuristics shipped with ohcrab and
// assembles them into the registry the dispatcher runs.
package rules

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/vocab"
)

// Deps are the outside-world views heuristics are allowed to use.
type Deps struct {
	// Vocab discovers subcommands from a tool's help output.
	Vocab vocab.Source
	// FS is probed for files and directories named in the command.
	FS afero.Fs
	// Getenv reads environment variables such as EDITOR.
	Getenv func(string) string
	// Executables lists the program names reachable through PATH.
	Executables func() []string
}

// DefaultDeps wires the real process runner, OS filesystem and environment.
func DefaultDeps() Deps {
	fs := afero.NewOsFs()
	return Deps{
		Vocab:  vocab.New(),
		FS:     fs,
		Getenv: os.Getenv,
		Executables: sync.OnceValue(func() []string {
			return PathExecutables(fs, os.Getenv("PATH"))
		}),
	}
}

func (d Deps) withDefaults() Deps {
	if d.Vocab == nil {
		d.Vocab = vocab.Static{}
	}
	if d.FS == nil {
		d.FS = afero.NewMemMapFs()
	}
	if d.Getenv == nil {
		d.Getenv = func(string) string { return "" }
	}
	if d.Executables == nil {
		d.Executables = func() []string { return nil }
	}
	return d
}

func (d Deps) section(app string, args []string, header string) []string {
	return d.Vocab.Section(context.Background(), app, args, header)
}

// Registry returns every heuristic, built once against deps. Missing deps
// are replaced with inert stand-ins so a partial Deps is safe in tests.
func Registry(deps Deps) []rule.Rule {
	d := deps.withDefaults()
	return []rule.Rule{
		aptGetSearch(),
		aptInvalidOperation(d),
		brewInstall(),
		cargoNoCommand(),
		catDir(d),
		cdCs(),
		cdMkdir(),
		cdParent(),
		chmodX(d),
		cpCreateDestination(),
		dockerLogin(),
		dry(),
		fixFile(d),
		gitAdd(d),
		gitBranchExists(),
		gitNotCommand(),
		gitPull(),
		gitPushSetUpstream(),
		goRun(),
		grepArgumentsOrder(d),
		lnNoHardLink(),
		lsLah(),
		mkdirP(),
		noCommand(d),
		pythonCommand(),
		rmDir(),
		slLs(),
		sshKnownHosts(),
		sudo(),
		touch(),
	}
}

// Selection adjusts the registry from user configuration.
type Selection struct {
	// Enabled turns on rules that are off by default.
	Enabled []string
	// Disabled drops rules.
	Disabled []string
	// Priority overrides the base priority of named rules.
	Priority map[string]int
}

// Select applies sel to all and returns the rules to run, plus every name in
// sel that matched no rule.
func Select(all []rule.Rule, sel Selection) ([]rule.Rule, []string) {
	known := make(map[string]bool, len(all))
	for _, r := range all {
		known[r.Name()] = true
	}

	var unknown []string
	check := func(name string) {
		if !known[name] && !slices.Contains(unknown, name) {
			unknown = append(unknown, name)
		}
	}
	for _, n := range sel.Enabled {
		check(n)
	}
	for _, n := range sel.Disabled {
		check(n)
	}
	names := make([]string, 0, len(sel.Priority))
	for n := range sel.Priority {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		check(n)
	}

	out := make([]rule.Rule, 0, len(all))
	for _, r := range all {
		if slices.Contains(sel.Disabled, r.Name()) {
			continue
		}
		if !r.Enabled() {
			if !slices.Contains(sel.Enabled, r.Name()) {
				continue
			}
			r = r.WithEnabled(true)
		}
		if p, ok := sel.Priority[r.Name()]; ok {
			r = r.WithPriority(p)
		}
		out = append(out, r)
	}
	return out, unknown
}

// Names returns the rule names in registry order.
func Names(all []rule.Rule) []string {
	names := make([]string, len(all))
	for i, r := range all {
		names[i] = r.Name()
	}
	return names
}

// PathExecutables lists the executable regular files found in the
// directories of pathList, de-duplicated and sorted.
func PathExecutables(fs afero.Fs, pathList string) []string {
	seen := make(map[string]bool)
	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			continue
		}
		entries, err := afero.ReadDir(fs, dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || e.Mode().Perm()&0o111 == 0 {
				continue
			}
			seen[e.Name()] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func isDir(fs afero.Fs, path string) bool {
	ok, err := afero.IsDir(fs, path)
	return err == nil && ok
}

func isFile(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// matchedLines returns the trimmed, non-empty lines that follow the first
// line containing any of the separators.
func matchedLines(output string, separators ...string) []string {
	var out []string
	yielding := false
	for _, line := range strings.Split(output, "\n") {
		hit := false
		for _, sep := range separators {
			if strings.Contains(line, sep) {
				hit = true
				break
			}
		}
		if hit {
			yielding = true
			continue
		}
		if yielding && strings.TrimSpace(line) != "" {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}
