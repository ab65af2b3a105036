package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Binary byte units.
const (
	KiB ByteSize = 1 << (10 * (iota + 1))
	MiB
	GiB
)

// ByteSize is a size in bytes that decodes from "64KiB", "1MB" or plain integers.
type ByteSize int64

// ParseByteSize parses a human-readable byte size. Units are binary:
// "KB" and "KiB" both mean 1024 bytes.
func ParseByteSize(s string) (ByteSize, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)

	multiplier := ByteSize(1)
	for _, unit := range []struct {
		suffix string
		mult   ByteSize
	}{
		{"GIB", GiB}, {"MIB", MiB}, {"KIB", KiB},
		{"GB", GiB}, {"MB", MiB}, {"KB", KiB},
		{"G", GiB}, {"M", MiB}, {"K", KiB},
		{"B", 1},
	} {
		if strings.HasSuffix(upper, unit.suffix) {
			multiplier = unit.mult
			s = strings.TrimSpace(s[:len(s)-len(unit.suffix)])
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid byte size %q", s)
	}
	if n > math.MaxInt64/int64(multiplier) {
		return 0, fmt.Errorf("byte size %q overflows", s)
	}
	return ByteSize(n) * multiplier, nil
}

// UnmarshalYAML accepts integers and unit strings.
func (b *ByteSize) UnmarshalYAML(value *yaml.Node) error {
	size, err := ParseByteSize(value.Value)
	if err != nil {
		return err
	}
	*b = size
	return nil
}

// Set implements pflag.Value so sizes can be given on the command line.
func (b *ByteSize) Set(s string) error {
	size, err := ParseByteSize(s)
	if err != nil {
		return err
	}
	*b = size
	return nil
}

// Type implements pflag.Value.
func (b *ByteSize) Type() string {
	return "bytes"
}

// String formats the size with the largest exact binary unit.
func (b ByteSize) String() string {
	switch {
	case b >= GiB && b%GiB == 0:
		return fmt.Sprintf("%dGiB", b/GiB)
	case b >= MiB && b%MiB == 0:
		return fmt.Sprintf("%dMiB", b/MiB)
	case b >= KiB && b%KiB == 0:
		return fmt.Sprintf("%dKiB", b/KiB)
	default:
		return strconv.FormatInt(int64(b), 10)
	}
}
