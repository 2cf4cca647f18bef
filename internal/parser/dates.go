package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	numericDatePattern = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	isoDatePattern     = regexp.MustCompile(`\b(\d{4})[/-](\d{1,2})[/-](\d{1,2})\b`)
	textualDatePattern = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{4})\b`)

	timePattern = regexp.MustCompile(`\b(\d{1,2}):(\d{2})(?::\d{2})?\s*([AaPp][Mm])?\b`)
)

var monthAbbrevs = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// extractDate applies the ordered date patterns to each line and returns the
// first candidate that is a real calendar date no later than now. Dates are
// never guessed: no match means nil.
func extractDate(lines []string, now time.Time) *time.Time {
	for _, line := range lines {
		// ISO first: it is unambiguous, and the numeric pattern would
		// otherwise misread "2023-12-15" starting at "23-12-15".
		if m := isoDatePattern.FindStringSubmatch(line); m != nil {
			year, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			day, _ := strconv.Atoi(m[3])
			if d := validDate(year, month, day, now); d != nil {
				return d
			}
		}

		if m := numericDatePattern.FindStringSubmatch(line); m != nil {
			month, _ := strconv.Atoi(m[1])
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])

			// Two-digit years pivot at 50.
			if year < 100 {
				if year > 50 {
					year += 1900
				} else {
					year += 2000
				}
			}

			// Day-first formats show up on international receipts.
			if month > 12 && day <= 12 {
				month, day = day, month
			}

			if d := validDate(year, month, day, now); d != nil {
				return d
			}
		}

		if m := textualDatePattern.FindStringSubmatch(line); m != nil {
			month, ok := monthAbbrevs[strings.ToLower(m[1])]
			if !ok {
				continue
			}
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			if d := validDate(year, int(month), day, now); d != nil {
				return d
			}
		}
	}

	return nil
}

// validDate builds a date and rejects impossible calendar values (via the
// normalization time.Date applies) and anything after now.
func validDate(year, month, day int, now time.Time) *time.Time {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1990 {
		return nil
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return nil
	}
	if d.After(now) {
		return nil
	}
	return &d
}

// extractTime finds the first HH:MM token, with an optional AM/PM suffix.
func extractTime(lines []string) string {
	for _, line := range lines {
		m := timePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			continue
		}

		t := m[1] + ":" + m[2]
		if m[3] != "" {
			t += " " + strings.ToUpper(m[3])
		}
		return t
	}
	return ""
}
