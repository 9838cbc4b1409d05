// Package flagx contains helpers for parsing a subset of the command line.
//
// Several packages in this module parse their own flags out of os.Args
// without registering the flags owned by other packages. FilterArgs makes
// that safe: it keeps only the flags a caller declares (plus their values)
// so an unrelated flag never trips flag.Parse.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args containing only the allowed flags
// and their values.
//
// Two argument shapes are recognized:
//
//	-f value      (flag and value as separate arguments)
//	-f=value      (combined with '='; also --flag=value)
//
// A token starting with '-' immediately after an allowed flag is treated as
// the next flag, not as a value. Everything else (unknown flags, their
// values, positional arguments) is dropped. Order and repetitions are
// preserved.
func FilterArgs(args []string, allowed []string) []string {
	keep := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		keep[name] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, ok := keep[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := keep[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// ConfigFilePath extracts the JSON config file path given via -c or -config.
// Other arguments are ignored, so the caller can invoke this before its own
// flag parsing. Returns "" when neither flag is present.
func ConfigFilePath() string {
	var path string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(args)

	return path
}
