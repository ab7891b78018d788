package parse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var seqRe = regexp.MustCompile(`-(\d+)\s*$`)

// MachineKey holds the structured sort key parsed from a machine number.
// The first character of the machine number names its production line.
type MachineKey struct {
	Raw    string
	Line   string
	Prefix string
	Seq    int
	HasSeq bool
}

// Key parses a raw machine number like "D-10" into its natural sort key.
// Numbers without a numeric "-N" suffix keep the whole string as prefix
// and fall back to plain lexical comparison.
func Key(raw string) MachineKey {
	s := strings.TrimSpace(raw)
	k := MachineKey{Raw: s, Prefix: s}
	if s != "" {
		r, _ := utf8.DecodeRuneInString(s)
		k.Line = strings.ToUpper(string(r))
	}
	if loc := seqRe.FindStringSubmatchIndex(s); loc != nil {
		if n, err := strconv.Atoi(s[loc[2]:loc[3]]); err == nil {
			k.Seq = n
			k.HasSeq = true
			k.Prefix = strings.TrimSpace(s[:loc[0]])
		}
	}
	return k
}

// Less orders machine keys by (prefix, numeric suffix), falling back to
// lexical comparison when either side has no numeric suffix.
func Less(a, b MachineKey) bool {
	if !a.HasSeq || !b.HasSeq {
		return a.Raw < b.Raw
	}
	if a.Prefix != b.Prefix {
		return a.Prefix < b.Prefix
	}
	return a.Seq < b.Seq
}
