package printwatch

import (
	"fmt"
	"strconv"
)

// FieldMapper derives a sensor's display state from the current job list.
//
// FieldMapper follows functional programming principles: it is a pure
// function where the same inputs always produce the same output. This makes
// mappers easy to test, compose, and reason about.
//
// The bool return reports whether a value could be derived. When false, the
// sensor keeps its previous state and the reading is marked stale. Mappers
// are only invoked for successful polls; a failed poll stales every sensor
// without calling any mapper.
//
// # Panic Safety
//
// FieldMapper functions are called within a panic recovery boundary. If a
// mapper panics, the sensor keeps its previous state and the reading carries
// an error with a correlation ID; the full stack trace is logged
// server-side. A misbehaving custom mapper cannot crash the monitor.
type FieldMapper func(jobs []Job) (string, bool)

// TimeElapsedMapper derives the elapsed print time of the first job as an
// HH:MM clock string.
//
// No value is derived when the printer is idle or the job has no elapsed
// time yet.
var TimeElapsedMapper FieldMapper = func(jobs []Job) (string, bool) {
	if len(jobs) == 0 || jobs[0].TimeElapsed == nil {
		return "", false
	}
	return formatClock(*jobs[0].TimeElapsed), true
}

// TimeTotalMapper derives the estimated total print time of the first job
// as an HH:MM clock string.
//
// No value is derived when the printer is idle or the job has no estimate
// yet.
var TimeTotalMapper FieldMapper = func(jobs []Job) (string, bool) {
	if len(jobs) == 0 || jobs[0].TimeTotal == nil {
		return "", false
	}
	return formatClock(*jobs[0].TimeTotal), true
}

// PercentageMapper derives the completion percentage of the first job as a
// decimal integer string, clamped to 100.
//
// No value is derived when the printer is idle or either time field is
// missing. A zero total also yields no value rather than dividing by zero.
var PercentageMapper FieldMapper = func(jobs []Job) (string, bool) {
	if len(jobs) == 0 {
		return "", false
	}
	elapsed, total := jobs[0].TimeElapsed, jobs[0].TimeTotal
	if elapsed == nil || total == nil || *total == 0 {
		return "", false
	}
	pct := int(*elapsed / *total * 100)
	if pct > 100 {
		pct = 100
	}
	return strconv.Itoa(pct), true
}

// ActiveMapper reports whether the printer has any job in the printing
// list. It always derives a value from a successful poll, so the active
// sensor goes back to "false" the moment the printer turns idle.
var ActiveMapper FieldMapper = func(jobs []Job) (string, bool) {
	return strconv.FormatBool(len(jobs) > 0), true
}

// fieldMapperFor returns the built-in mapper for a sensor type.
func fieldMapperFor(t SensorType) FieldMapper {
	switch t {
	case SensorTimeElapsed:
		return TimeElapsedMapper
	case SensorTimeTotal:
		return TimeTotalMapper
	case SensorPercentage:
		return PercentageMapper
	case SensorActive:
		return ActiveMapper
	default:
		return nil
	}
}

// formatClock renders a duration in seconds as an HH:MM clock string.
//
// The value wraps at 24 hours, matching strftime("%H:%M", gmtime(sec)):
// a 25-hour print shows as 01:00. Ultimaker jobs rarely cross a day, and
// the wrap keeps the display identical to the original integration.
func formatClock(seconds float64) string {
	s := int(seconds) % 86400
	if s < 0 {
		s += 86400
	}
	return fmt.Sprintf("%02d:%02d", s/3600, s%3600/60)
}
