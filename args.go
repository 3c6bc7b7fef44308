package main

import (
	"strings"

	"github.com/cockroachdb/errors"
)

type flagKind int

const (
	flagBool flagKind = iota
	flagString
	flagList
)

// FlagValue is one parsed flag. Kind selects the shape: a bare flag is
// flagBool with no values, a single occurrence with a value is flagString,
// and a flag repeated with values is flagList in order of appearance.
type FlagValue struct {
	Kind   flagKind
	Values []string
}

// Flags maps flag names (without dashes) to their parsed values.
type Flags map[string]FlagValue

// ParsedCommand is the structured form of the command line.
type ParsedCommand struct {
	Resource string
	Action   string
	Args     []string
	Flags    Flags
}

// parseArgs converts the raw argument list (program name excluded) into a
// ParsedCommand. It never fails: resource and action legality is checked at
// dispatch time.
func parseArgs(argv []string) ParsedCommand {
	cmd := ParsedCommand{Flags: Flags{}}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case strings.HasPrefix(arg, "--"):
			key := arg[2:]
			if i+1 < len(argv) && argv[i+1] != "" && !strings.HasPrefix(argv[i+1], "-") {
				cmd.Flags.add(key, argv[i+1])
				i++
			} else {
				cmd.Flags.setBool(key)
			}
		case strings.HasPrefix(arg, "-"):
			cmd.Flags.setBool(arg[1:])
		case cmd.Resource == "":
			cmd.Resource = arg
		case cmd.Action == "":
			cmd.Action = arg
		default:
			cmd.Args = append(cmd.Args, arg)
		}
	}

	return cmd
}

func (f Flags) add(key, value string) {
	cur, ok := f[key]
	if !ok || cur.Kind == flagBool {
		f[key] = FlagValue{Kind: flagString, Values: []string{value}}
		return
	}
	f[key] = FlagValue{Kind: flagList, Values: append(cur.Values, value)}
}

// setBool records a bare flag. Values already collected for the key win.
func (f Flags) setBool(key string) {
	if _, ok := f[key]; ok {
		return
	}
	f[key] = FlagValue{Kind: flagBool}
}

// Has reports whether the flag was given in any shape.
func (f Flags) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Lookup returns the value of a single-valued flag. When the flag was
// repeated the last value wins. ok is false when the flag is absent; a flag
// given without a value is a usage error.
func (f Flags) Lookup(key string) (value string, ok bool, err error) {
	v, present := f[key]
	if !present {
		return "", false, nil
	}
	if v.Kind == flagBool {
		return "", false, errors.Mark(errors.Newf("flag --%s requires a value", key), errUsage)
	}
	return v.Values[len(v.Values)-1], true, nil
}

// Values returns every value given for a repeatable flag, in order.
func (f Flags) Values(key string) []string {
	return f[key].Values
}

func (c ParsedCommand) wantsHelp() bool {
	return c.Flags.Has("help") || c.Flags.Has("h")
}

func (c ParsedCommand) wantsJSON() bool {
	return c.Flags.Has("json")
}
