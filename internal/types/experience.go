package types

import (
	"strconv"
	"strings"
	"time"
)

const present = "present"

// IsCurrent reports whether the entry has no end date or ends "Present".
func (e Experience) IsCurrent() bool {
	end := strings.TrimSpace(e.EndDate)
	return end == "" || strings.EqualFold(end, present)
}

// DurationYears returns the length of the entry in years from MM/YYYY dates.
// A current entry counts whole years from the start year to now's year. Missing or
// malformed dates yield 0, as do negative spans.
func (e Experience) DurationYears(now time.Time) float64 {
	start := strings.TrimSpace(e.StartDate)
	if start == "" {
		return 0
	}

	startMonth, startYear, ok := parseMonthYear(start)
	if e.IsCurrent() {
		if !ok {
			return 0
		}
		return floorZero(float64(now.Year() - startYear))
	}

	endMonth, endYear, endOK := parseMonthYear(e.EndDate)
	if !ok || !endOK {
		return 0
	}
	return floorZero(float64(endYear-startYear) + float64(endMonth-startMonth)/12)
}

// TotalExperienceYears sums whole-year spans across entries, ignoring months.
// Entries with an unparseable start are skipped; an unparseable end counts as zero years.
func (r *StructuredResume) TotalExperienceYears(now time.Time) float64 {
	if r == nil {
		return 0
	}
	total := 0.0
	for _, e := range r.Experience {
		startYear, ok := parseYear(e.StartDate)
		if !ok {
			continue
		}
		endYear := startYear
		if e.IsCurrent() {
			endYear = now.Year()
		} else if y, ok := parseYear(e.EndDate); ok {
			endYear = y
		}
		total += floorZero(float64(endYear - startYear))
	}
	return total
}

// parseMonthYear splits on "/" and reads the first part as month and the last as year.
func parseMonthYear(value string) (month, year int, ok bool) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) < 2 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	year, err = strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return 0, 0, false
	}
	return month, year, true
}

// parseYear reads the year of an MM/YYYY date.
func parseYear(value string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) < 2 {
		return 0, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return 0, false
	}
	return year, true
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
