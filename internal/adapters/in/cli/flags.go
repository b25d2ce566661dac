// internal/adapters/in/cli/flags.go
package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// unknownFlags returns the flags in args that fs does not define.
// A value following an unknown flag is skipped the same way pflag
// skips it when unknown flags are whitelisted.
func unknownFlags(fs *pflag.FlagSet, args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		if len(a) < 2 || a[0] != '-' {
			continue
		}

		long := strings.HasPrefix(a, "--")
		name, _, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if name == "" {
			continue
		}

		var f *pflag.Flag
		if long {
			f = fs.Lookup(name)
		} else {
			f = fs.ShorthandLookup(name[:1])
			if f != nil && len(name) > 1 {
				// -hvalue / -abc
				continue
			}
		}

		if f == nil {
			if long {
				out = append(out, "--"+name)
			} else {
				out = append(out, "-"+name)
			}
			if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}

		// 値を取る既知フラグは次の引数を消費する
		if !hasValue && f.NoOptDefVal == "" && i+1 < len(args) {
			i++
		}
	}
	return out
}
