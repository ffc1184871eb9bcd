package parser

import "regexp"

// Statement date shapes. The loose recognizer accepts anything that plausibly
// reads as a date; only the strict month+day pair in statementDate gates row
// acceptance.
var (
	monthAbbrevPattern = regexp.MustCompile(`^[A-Z][a-z]{2}$`)
	dayNumberPattern   = regexp.MustCompile(`^\d{1,2}$`)

	monthDayPattern  = regexp.MustCompile(`^[A-Z][a-z]{2,8}\s+\d{1,2}$`)
	dayMonthPattern  = regexp.MustCompile(`^\d{1,2}\s+[A-Z][a-z]{2,8}$`)
	slashDatePattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// LooksLikeDate reports whether a token plausibly reads as a statement date:
// a capitalized month abbreviation ("Jan"), month-then-day ("January 5"),
// day-then-month ("5 Jan"), a slash date ("15/01/2024"), or an ISO date
// ("2024-01-15"). It is a secondary signal only; table rows are admitted by
// the strict gate in statementDate.
func LooksLikeDate(token string) bool {
	switch {
	case monthAbbrevPattern.MatchString(token):
		return true
	case monthDayPattern.MatchString(token):
		return true
	case dayMonthPattern.MatchString(token):
		return true
	case slashDatePattern.MatchString(token):
		return true
	case isoDatePattern.MatchString(token):
		return true
	}
	return false
}

// statementDate applies the strict two-token gate to a line's leading fields:
// token 1 must be a 3-letter capitalized month abbreviation and token 2 a
// 1-2 digit day. Returns the combined "Mon D" date fragment.
func statementDate(fields []string) (string, bool) {
	if len(fields) < 2 {
		return "", false
	}
	if !monthAbbrevPattern.MatchString(fields[0]) {
		return "", false
	}
	if !dayNumberPattern.MatchString(fields[1]) {
		return "", false
	}
	return fields[0] + " " + fields[1], true
}
