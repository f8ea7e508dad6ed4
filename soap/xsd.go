package soap

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Char is a single UTF-16 style character. Data contracts serialize it as its numeric code,
// which is why it needs a type distinct from int32.
type Char rune

const dateTimeLocalLayout = "2006-01-02T15:04:05.999999999"

var weekdays = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// FormatValue returns the XML Schema lexical form of a primitive value. Pointers are
// dereferenced, so the same value list can be used for writing and reading.
func FormatValue(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case *string:
		return *v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case *bool:
		return strconv.FormatBool(*v), nil
	case int:
		return strconv.Itoa(v), nil
	case *int:
		return strconv.Itoa(*v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case *int8:
		return strconv.FormatInt(int64(*v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case *int16:
		return strconv.FormatInt(int64(*v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case *int32:
		return strconv.FormatInt(int64(*v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case *int64:
		return strconv.FormatInt(*v, 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case *uint8:
		return strconv.FormatUint(uint64(*v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case *uint16:
		return strconv.FormatUint(uint64(*v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case *uint32:
		return strconv.FormatUint(uint64(*v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case *uint64:
		return strconv.FormatUint(*v, 10), nil
	case float32:
		return formatFloat(float64(v), 32), nil
	case *float32:
		return formatFloat(float64(*v), 32), nil
	case float64:
		return formatFloat(v, 64), nil
	case *float64:
		return formatFloat(*v, 64), nil
	case Char:
		return strconv.FormatInt(int64(v), 10), nil
	case *Char:
		return strconv.FormatInt(int64(*v), 10), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case *time.Time:
		return v.Format(time.RFC3339Nano), nil
	case time.Duration:
		return formatDuration(v), nil
	case *time.Duration:
		return formatDuration(*v), nil
	case time.Weekday:
		return v.String(), nil
	case *time.Weekday:
		return v.String(), nil
	case uuid.UUID:
		return v.String(), nil
	case *uuid.UUID:
		return v.String(), nil
	case []byte:
		return base64.StdEncoding.EncodeToString(v), nil
	case *[]byte:
		return base64.StdEncoding.EncodeToString(*v), nil
	}
	return "", fmt.Errorf("no XML schema mapping for %T", value)
}

// ParseValue parses the XML Schema lexical form in text into the value that dest points to.
func ParseValue(text string, dest interface{}) error {
	var err error
	switch d := dest.(type) {
	case *string:
		*d = text
	case *bool:
		*d, err = parseBool(text)
	case *int:
		var n int64
		n, err = strconv.ParseInt(strings.TrimSpace(text), 10, strconv.IntSize)
		*d = int(n)
	case *int8:
		var n int64
		n, err = strconv.ParseInt(strings.TrimSpace(text), 10, 8)
		*d = int8(n)
	case *int16:
		var n int64
		n, err = strconv.ParseInt(strings.TrimSpace(text), 10, 16)
		*d = int16(n)
	case *int32:
		var n int64
		n, err = strconv.ParseInt(strings.TrimSpace(text), 10, 32)
		*d = int32(n)
	case *int64:
		*d, err = strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	case *uint8:
		var n uint64
		n, err = strconv.ParseUint(strings.TrimSpace(text), 10, 8)
		*d = uint8(n)
	case *uint16:
		var n uint64
		n, err = strconv.ParseUint(strings.TrimSpace(text), 10, 16)
		*d = uint16(n)
	case *uint32:
		var n uint64
		n, err = strconv.ParseUint(strings.TrimSpace(text), 10, 32)
		*d = uint32(n)
	case *uint64:
		*d, err = strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	case *float32:
		var f float64
		f, err = parseFloat(text, 32)
		*d = float32(f)
	case *float64:
		*d, err = parseFloat(text, 64)
	case *Char:
		var n int64
		n, err = strconv.ParseInt(strings.TrimSpace(text), 10, 32)
		*d = Char(n)
	case *time.Time:
		*d, err = parseDateTime(text)
	case *time.Duration:
		*d, err = parseDuration(text)
	case *time.Weekday:
		day, ok := weekdays[strings.TrimSpace(text)]
		if !ok {
			err = fmt.Errorf("unknown day of week %q", text)
		}
		*d = day
	case *uuid.UUID:
		*d, err = uuid.Parse(strings.TrimSpace(text))
	case *[]byte:
		*d, err = base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	default:
		return fmt.Errorf("no XML schema mapping for %T", dest)
	}
	if err != nil {
		return fmt.Errorf("invalid value %q for %T: %w", text, dest, err)
	}
	return nil
}

func parseBool(text string) (bool, error) {
	switch strings.TrimSpace(text) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("not an xs:boolean")
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'G', -1, bits)
}

func parseFloat(text string, bits int) (float64, error) {
	switch s := strings.TrimSpace(text); s {
	case "INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	default:
		return strconv.ParseFloat(s, bits)
	}
}

func parseDateTime(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	// Values without a zone designator are treated as UTC.
	return time.ParseInLocation(dateTimeLocalLayout, s, time.UTC)
}

// formatDuration writes d as an xs:duration using days, hours, minutes and seconds only,
// which keeps the mapping exact over the whole time.Duration range.
func formatDuration(d time.Duration) string {
	if d == 0 {
		return "PT0S"
	}
	var b strings.Builder
	u := uint64(d)
	if d < 0 {
		b.WriteByte('-')
		u = -u
	}
	b.WriteByte('P')
	day := uint64(24 * time.Hour)
	if days := u / day; days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	u %= day
	if u == 0 {
		return b.String()
	}
	b.WriteByte('T')
	if hours := u / uint64(time.Hour); hours > 0 {
		fmt.Fprintf(&b, "%dH", hours)
	}
	u %= uint64(time.Hour)
	if minutes := u / uint64(time.Minute); minutes > 0 {
		fmt.Fprintf(&b, "%dM", minutes)
	}
	u %= uint64(time.Minute)
	if u > 0 {
		secs, frac := u/uint64(time.Second), u%uint64(time.Second)
		fmt.Fprintf(&b, "%d", secs)
		if frac > 0 {
			b.WriteString("." + strings.TrimRight(fmt.Sprintf("%09d", frac), "0"))
		}
		b.WriteByte('S')
	}
	return b.String()
}

func parseDuration(text string) (time.Duration, error) {
	s := strings.TrimSpace(text)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if !strings.HasPrefix(s, "P") {
		return 0, fmt.Errorf("not an xs:duration")
	}
	s = s[1:]

	var total uint64
	inTime, seen := false, false
	for len(s) > 0 {
		if s[0] == 'T' {
			if inTime {
				return 0, fmt.Errorf("repeated time designator")
			}
			inTime = true
			s = s[1:]
			continue
		}
		i := 0
		for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
			i++
		}
		if i == 0 || i == len(s) {
			return 0, fmt.Errorf("malformed xs:duration component")
		}
		number, unit := s[:i], s[i]
		s = s[i+1:]

		var scale time.Duration
		switch {
		case !inTime && unit == 'D':
			scale = 24 * time.Hour
		case inTime && unit == 'H':
			scale = time.Hour
		case inTime && unit == 'M':
			scale = time.Minute
		case inTime && unit == 'S':
			scale = time.Second
		default:
			return 0, fmt.Errorf("unsupported xs:duration designator %q", unit)
		}
		n, err := scaleDurationComponent(number, uint64(scale), unit == 'S')
		if err != nil {
			return 0, err
		}
		if total+n < total {
			return 0, fmt.Errorf("xs:duration out of range")
		}
		total += n
		seen = true
	}
	if !seen {
		return 0, fmt.Errorf("empty xs:duration")
	}

	limit := uint64(math.MaxInt64)
	if negative {
		limit++
	}
	if total > limit {
		return 0, fmt.Errorf("xs:duration out of range")
	}
	if negative {
		// 1<<63 wraps to math.MinInt64, which is the intended value.
		return time.Duration(-int64(total)), nil
	}
	return time.Duration(total), nil
}

func scaleDurationComponent(number string, scale uint64, fractionAllowed bool) (uint64, error) {
	whole, fraction := number, ""
	if dot := strings.IndexByte(number, '.'); dot >= 0 {
		if !fractionAllowed {
			return 0, fmt.Errorf("fractional value only allowed for seconds")
		}
		whole, fraction = number[:dot], number[dot+1:]
	}
	n, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, err
	}
	if n > math.MaxUint64/scale {
		return 0, fmt.Errorf("xs:duration out of range")
	}
	n *= scale
	if fraction != "" {
		if len(fraction) > 9 {
			fraction = fraction[:9]
		}
		fraction += strings.Repeat("0", 9-len(fraction))
		nanos, err := strconv.ParseUint(fraction, 10, 64)
		if err != nil {
			return 0, err
		}
		if n+nanos < n {
			return 0, fmt.Errorf("xs:duration out of range")
		}
		n += nanos
	}
	return n, nil
}
