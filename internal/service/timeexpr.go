package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/model"
)

// Time expression handling for weekly slots. A slot's temporal identity is
// heterogeneous: an explicit "HH:MM" start/end pair, a free-form period
// label ("P3", "08h00-09h00", a bare count), or both. Validation accepts the
// stored form unchanged; the grid ordering key is derived on every listing
// call and never persisted, so the canonical fields stay independently
// editable.

const minutesUnknown = 1 << 30 // sorts after any real clock value

var (
	clockRe      = regexp.MustCompile(`^([0-9]{1,2})[:hH]([0-9]{2})?$`)
	labelRangeRe = regexp.MustCompile(`^([0-9]{1,2}[:hH][0-9]{0,2})\s*[-–]\s*[0-9]{1,2}[:hH][0-9]{0,2}$`)
	ordinalRe    = regexp.MustCompile(`^[pP]?\s*([0-9]{1,2})$`)
)

// parseClock parses "08:00", "8h30" and "08h" into minutes since midnight.
func parseClock(s string) (int, bool) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	min := 0
	if m[2] != "" {
		min, _ = strconv.Atoi(m[2])
	}
	if h > 23 || min > 59 {
		return 0, false
	}
	return h*60 + min, true
}

// validateTimeExpression checks the time-completeness invariant on a merged row: at
// least one of {non-empty period, complete start/end pair} must hold, both
// times must parse, and end must be strictly after start. Pure; returns
// field-level errors and touches nothing.
func validateTimeExpression(period, startTime, endTime *string) *ValidationError {
	hasPeriod := period != nil && strings.TrimSpace(*period) != ""
	hasStart := startTime != nil && strings.TrimSpace(*startTime) != ""
	hasEnd := endTime != nil && strings.TrimSpace(*endTime) != ""

	var fields []FieldError

	if !hasPeriod && !(hasStart && hasEnd) {
		fields = append(fields, FieldError{
			Field:   "period",
			Message: "either a period label or a complete start_time/end_time pair is required",
		})
		if hasStart != hasEnd {
			missing := "end_time"
			if !hasStart {
				missing = "start_time"
			}
			fields = append(fields, FieldError{Field: missing, Message: "required when the other time bound is given"})
		}
		return &ValidationError{Fields: fields}
	}

	var startMin, endMin int
	if hasStart {
		var ok bool
		if startMin, ok = parseClock(*startTime); !ok {
			fields = append(fields, FieldError{Field: "start_time", Message: fmt.Sprintf("invalid time %q, expected HH:MM", *startTime)})
		}
	}
	if hasEnd {
		var ok bool
		if endMin, ok = parseClock(*endTime); !ok {
			fields = append(fields, FieldError{Field: "end_time", Message: fmt.Sprintf("invalid time %q, expected HH:MM", *endTime)})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	if hasStart && hasEnd && endMin <= startMin {
		return invalid("end_time", "must be strictly after start_time")
	}

	return nil
}

// slotSortKey is the derived weekly-grid ordering key.
//
// Tier policy: slots with an explicit start time (0) sort before slots with
// only a period label (1), which sort before slots with neither (2, a
// defensive fallback the schema should prevent). Within a tier: ascending
// minutes, then period label, then id for a stable total order.
type slotSortKey struct {
	tier    int
	minutes int
	label   string
}

func sortKeyFor(slot *model.WeeklySlot) slotSortKey {
	if slot.StartTime != nil {
		if m, ok := parseClock(*slot.StartTime); ok {
			return slotSortKey{tier: 0, minutes: m}
		}
	}

	if slot.Period != nil && strings.TrimSpace(*slot.Period) != "" {
		label := strings.TrimSpace(*slot.Period)
		key := slotSortKey{tier: 1, minutes: minutesUnknown, label: label}

		// best effort: a label embedding a time range ("08h00-09h00")
		// orders by its start; an ordinal label ("P3", "3") by its rank
		if m := labelRangeRe.FindStringSubmatch(label); m != nil {
			if min, ok := parseClock(m[1]); ok {
				key.minutes = min
			}
		} else if m := ordinalRe.FindStringSubmatch(label); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				key.minutes = n
			}
		}
		return key
	}

	return slotSortKey{tier: 2, minutes: minutesUnknown}
}

// less compares two sort keys.
func (k slotSortKey) less(o slotSortKey) bool {
	if k.tier != o.tier {
		return k.tier < o.tier
	}
	if k.minutes != o.minutes {
		return k.minutes < o.minutes
	}
	return k.label < o.label
}

// ── derived title ──

var frenchDayAbbrev = [8]string{"", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam", "Dim"}

// slotTitle composes the display title recomputed whenever day, time,
// subject or teacher change without an explicit title:
// "<Subject> — Lun 08:00–09:00 — <Teacher>".
func slotTitle(slot *model.WeeklySlot, subject *model.Subject, teacher *model.User) string {
	day := ""
	if slot.DayOfWeek >= 1 && slot.DayOfWeek <= 7 {
		day = frenchDayAbbrev[slot.DayOfWeek]
	}

	var when string
	switch {
	case slot.StartTime != nil && slot.EndTime != nil:
		when = fmt.Sprintf("%s–%s", *slot.StartTime, *slot.EndTime)
	case slot.Period != nil:
		when = strings.TrimSpace(*slot.Period)
	}

	parts := make([]string, 0, 3)
	if subject != nil {
		parts = append(parts, subject.Name)
	}
	parts = append(parts, strings.TrimSpace(day+" "+when))
	if teacher != nil {
		parts = append(parts, teacher.FullName())
	}
	return strings.Join(parts, " — ")
}
