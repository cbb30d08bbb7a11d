package life

import (
	"errors"
	"fmt"
	"strings"
)

//MaxNeighbours is the largest neighbour count a cell can have
const MaxNeighbours = 8

//DefaultRuleText is the canonical Conway rule
const DefaultRuleText = "B3/S23"

var (
	ErrEmptyRule  = errors.New("empty rule string")
	ErrRuleFormat = errors.New("malformed rule string")
)

//DefaultRules is B3/S23
var DefaultRules = NewRuleSet([]int{3}, []int{2, 3})

//RuleSet holds the neighbour counts which give birth to a dead cell and keep a live cell alive.
//Values are comparable, two rule sets with the same counts are equal
type RuleSet struct {
	births   uint16
	survives uint16
}

//NewRuleSet builds the rule set, counts outside 0..8 are ignored
func NewRuleSet(births []int, survives []int) RuleSet {
	return RuleSet{births: countMask(births), survives: countMask(survives)}
}

//ParseRules parses the B<digits>/S<digits> notation.
//Any failure results in DefaultRules, the caller never sees an error
func ParseRules(text string) RuleSet {
	r, err := ParseRulesStrict(text)
	if err != nil {
		return DefaultRules
	}
	return r
}

//ParseRulesStrict parses the B<digits>/S<digits> notation and reports why it failed.
//Prefixes are case-insensitive, non-digit characters inside the digit runs are skipped
func ParseRulesStrict(text string) (RuleSet, error) {
	if strings.TrimSpace(text) == "" {
		return DefaultRules, ErrEmptyRule
	}
	parts := strings.Split(text, "/")
	if len(parts) != 2 {
		return DefaultRules, fmt.Errorf("%w %q: expected exactly one '/'", ErrRuleFormat, text)
	}
	births, err := parseCounts(parts[0], 'B')
	if err != nil {
		return DefaultRules, fmt.Errorf("%w %q: %v", ErrRuleFormat, text, err)
	}
	survives, err := parseCounts(parts[1], 'S')
	if err != nil {
		return DefaultRules, fmt.Errorf("%w %q: %v", ErrRuleFormat, text, err)
	}
	return RuleSet{births: births, survives: survives}, nil
}

//parseCounts reads one segment of a rule string
func parseCounts(segment string, prefix byte) (uint16, error) {
	segment = strings.ToUpper(strings.TrimSpace(segment))
	if segment == "" || segment[0] != prefix {
		return 0, fmt.Errorf("segment %q must start with %c", segment, prefix)
	}
	var mask uint16
	for _, c := range segment[1:] {
		if c < '0' || c > '9' {
			continue
		}
		n := int(c - '0')
		if n > MaxNeighbours {
			continue
		}
		mask |= 1 << uint(n)
	}
	return mask, nil
}

//CanBeBorn reports whether a dead cell with n live neighbours becomes alive
func (r RuleSet) CanBeBorn(n int) bool {
	return hasCount(r.births, n)
}

//CanSurvive reports whether a live cell with n live neighbours stays alive
func (r RuleSet) CanSurvive(n int) bool {
	return hasCount(r.survives, n)
}

//Births returns the birth counts in ascending order
func (r RuleSet) Births() []int {
	return maskCounts(r.births)
}

//Survives returns the survival counts in ascending order
func (r RuleSet) Survives() []int {
	return maskCounts(r.survives)
}

//String renders the rule as B<births>/S<survives> with ascending digits
func (r RuleSet) String() string {
	var b strings.Builder
	b.WriteByte('B')
	writeCounts(&b, r.births)
	b.WriteString("/S")
	writeCounts(&b, r.survives)
	return b.String()
}

func (r RuleSet) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

//UnmarshalText is lenient the same way ParseRules is
func (r *RuleSet) UnmarshalText(text []byte) error {
	*r = ParseRules(string(text))
	return nil
}

func writeCounts(b *strings.Builder, mask uint16) {
	for n := 0; n <= MaxNeighbours; n++ {
		if hasCount(mask, n) {
			b.WriteByte(byte('0' + n))
		}
	}
}

func hasCount(mask uint16, n int) bool {
	if n < 0 || n > MaxNeighbours {
		return false
	}
	return mask&(1<<uint(n)) != 0
}

func countMask(counts []int) (mask uint16) {
	for _, n := range counts {
		if n < 0 || n > MaxNeighbours {
			continue
		}
		mask |= 1 << uint(n)
	}
	return
}

func maskCounts(mask uint16) []int {
	counts := make([]int, 0, MaxNeighbours+1)
	for n := 0; n <= MaxNeighbours; n++ {
		if hasCount(mask, n) {
			counts = append(counts, n)
		}
	}
	return counts
}
