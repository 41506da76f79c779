package deed

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// NormalizeText canonicalizes a raw field value for comparison: trim, fold to
// upper case, drop periods and commas, collapse whitespace runs to one space.
// Idempotent and total; empty in, empty out.
func NormalizeText(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case r == '.' || r == ',':
			// dropped
		default:
			if space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = false
			out = append(out, unicode.ToUpper(r))
		}
	}
	return string(out)
}

var (
	reUSDate  = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	reISODate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	reDigits  = regexp.MustCompile(`^\d+$`)
)

// excelEpoch is the spreadsheet serial-date epoch (the 1900 date system with
// its historical leap-year quirk already folded in).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// NormalizeDate maps the three date shapes seen in imported deed metadata to
// canonical MM/DD/YYYY text: pass-through, ISO reorder, or spreadsheet serial.
// Anything else degrades to trimmed text, so comparison falls back to exact
// string equality. Never errors.
func NormalizeDate(s string) string {
	v := strings.TrimSpace(s)
	if v == "" {
		return ""
	}
	if reUSDate.MatchString(v) {
		return v
	}
	if m := reISODate.FindStringSubmatch(v); m != nil {
		return fmt.Sprintf("%s/%s/%s", m[2], m[3], m[1])
	}
	if reDigits.MatchString(v) {
		if serial, err := strconv.Atoi(v); err == nil {
			d := excelEpoch.AddDate(0, 0, serial)
			return d.Format("01/02/2006")
		}
	}
	return v
}
