// Package locale derives the default display unit from the process locale.
package locale

import (
	"os"
	"strings"

	"weighttrack/internal/domain"

	"golang.org/x/text/language"
)

// poundRegions use pounds by default; every other region uses kilograms.
var poundRegions = map[string]bool{"US": true, "LR": true, "MM": true}

// Hint implements domain.LocaleHint for a fixed locale string.
type Hint struct {
	region string
}

// New parses a POSIX ("en_US.UTF-8") or BCP 47 ("en-US") locale. An empty or
// unparseable locale yields no region.
func New(locale string) Hint {
	return Hint{region: Region(locale)}
}

// FromEnv builds a Hint from LC_ALL, falling back to LANG.
func FromEnv() Hint {
	for _, key := range []string{"LC_ALL", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return New(v)
		}
	}
	return Hint{}
}

// DefaultUnit returns pounds for US, LR and MM and kilograms otherwise.
func (h Hint) DefaultUnit() domain.Unit {
	if poundRegions[h.region] {
		return domain.Pounds
	}
	return domain.Kilograms
}

// Region extracts the ISO 3166 region of locale, or "".
func Region(locale string) string {
	s := strings.TrimSpace(locale)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return ""
	}
	region, conf := tag.Region()
	if conf != language.Exact {
		return ""
	}
	return region.String()
}
