package cli

import (
	"strconv"

	"github.com/spf13/pflag"
)

// switchValue backs a --with-X / --no-X flag pair writing to one bool.
// pflag applies flags in command-line order, so the last one given wins.
type switchValue struct {
	value   *bool
	changed *bool
	enable  bool
}

func (s *switchValue) Set(v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*s.value = b == s.enable
	*s.changed = true
	return nil
}

func (s *switchValue) String() string {
	if s.value == nil {
		return "false"
	}
	return strconv.FormatBool(*s.value == s.enable)
}

func (s *switchValue) Type() string {
	return "bool"
}

// addSwitch registers --with-<name> and --no-<name>.
func addSwitch(fs *pflag.FlagSet, name, usage string, value, changed *bool) {
	with := fs.VarPF(&switchValue{value: value, changed: changed, enable: true}, "with-"+name, "", "Download "+usage)
	with.NoOptDefVal = "true"

	without := fs.VarPF(&switchValue{value: value, changed: changed, enable: false}, "no-"+name, "", "Skip "+usage)
	without.NoOptDefVal = "true"
}
