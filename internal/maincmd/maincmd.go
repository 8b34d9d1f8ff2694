// Package maincmd holds the jsuniq CLI driver: flag parsing, subcommand
// dispatch and top-level error handling - a mainer.Parser-driven flag
// struct backing a reflection-based subcommand table, generalized here
// to kebab-case command names (dump-scopes) since this module's
// commands aren't all single words.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"unicode"

	"github.com/mna/mainer"
)

const binName = "jsuniq"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> <path>...
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> <path>...
       %[1]s -h|--help
       %[1]s -v|--version

Identifier-uniquifying pass for a JavaScript compiler's AST. Each <path>
is parsed with the fixture s-expression notation (see internal/fixture)
rather than real JavaScript source.

The <command> can be one of:
       rename                    Run a renaming pass (--strategy selects
                                 contextual or inline) and print the
                                 resulting tree.
       invert                    Undo a prior Contextual (or unprefixed
                                 Inline) renaming pass and print the
                                 resulting tree.
       dump-scopes               Print the built scope tree as YAML,
                                 without renaming anything.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Valid flag options for the <rename> command are:
       --strategy                "contextual" (default) or "inline".
       --local-name-prefix       Inserted before inline's numeric
                                 suffix. Inline only.
       --remove-const            Un-const ALL_CAPS-by-convention
                                 constants. Inline only.
       --mangle-underscore       Rewrite a leading "_" to "JSCompiler_"
                                 before suffixing. Inline only.

More information on the jsuniq repository:
       https://github.com/mna/jsuniq
`, binName)
)

// Cmd is the CLI entry point, one flag-tagged field per option plus the
// build-time version stamp mainer.Parser expects a target struct to
// carry.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Strategy         string `flag:"strategy"`
	LocalNamePrefix  string `flag:"local-name-prefix"`
	RemoveConst      bool   `flag:"remove-const"`
	MangleUnderscore bool   `flag:"mangle-underscore"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]
	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	if len(c.args[1:]) == 0 {
		return fmt.Errorf("%s: at least one file must be provided", cmdName)
	}

	if cmdName != "rename" {
		for _, flag := range []string{"strategy", "local-name-prefix", "remove-const", "mangle-underscore"} {
			if c.flags[flag] {
				return fmt.Errorf("%s: invalid flag '%s'", cmdName, flag)
			}
		}
	}

	if c.Strategy == "" {
		c.Strategy = "contextual"
	}
	if c.Strategy != "contextual" && c.Strategy != "inline" {
		return fmt.Errorf("rename: invalid --strategy %q", c.Strategy)
	}
	if c.Strategy == "contextual" {
		for _, flag := range []string{"local-name-prefix", "remove-const", "mangle-underscore"} {
			if c.flags[flag] {
				return fmt.Errorf("rename: invalid flag '%s' with --strategy=contextual", flag)
			}
		}
	}

	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) (code mainer.ExitCode) {
	defer func() {
		// An IllegalScopeRootError is the one fatal error kind this pass
		// defines; surface it as a clean diagnostic instead of a raw
		// stack trace.
		if r := recover(); r != nil {
			fmt.Fprintf(stdio.Stderr, "%s: fatal: %v\n", binName, r)
			code = mainer.Failure
		}
	}()

	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: invalid environment configuration: %s\n", binName, err)
		return mainer.InvalidArgs
	}
	c.applyConfig(cfg)

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

// applyConfig fills any option whose flag was not set on the command line
// from env, so a flag always wins over an environment override.
func (c *Cmd) applyConfig(cfg Config) {
	if !c.flags["strategy"] && cfg.Strategy != "" {
		c.Strategy = cfg.Strategy
	}
	if !c.flags["local-name-prefix"] && cfg.LocalNamePrefix != "" {
		c.LocalNamePrefix = cfg.LocalNamePrefix
	}
	if !c.flags["remove-const"] && cfg.RemoveConst {
		c.RemoveConst = cfg.RemoveConst
	}
	if !c.flags["mangle-underscore"] && cfg.MangleUnderscore {
		c.MangleUnderscore = cfg.MangleUnderscore
	}
}

// valid commands are those that take a mainer.Stdio and a slice of strings
// as input and return an error as output; the command name is the
// method's own name converted to kebab-case (DumpScopes -> dump-scopes).
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[kebabCase(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}

func kebabCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
