package window

import (
	"fmt"
	"strings"
	"time"
)

// Local weekday alphabet, indexed by time.Weekday (Sunday first).
var localSymbols = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// Day codes used by the authoritative schedule store, indexed the same way.
var serverCodes = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// Symbol returns the local alphabet symbol for wd.
func Symbol(wd time.Weekday) string {
	return localSymbols[wd]
}

// ParseSymbol maps a single local symbol back to its weekday.
func ParseSymbol(s string) (time.Weekday, error) {
	for i, sym := range localSymbols {
		if sym == s {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday symbol %q", s)
}

// ParseDays reads a run of local symbols ("월수금"). Commas and spaces are
// tolerated as separators. Duplicates are dropped, first occurrence wins.
func ParseDays(s string) ([]time.Weekday, error) {
	var (
		days []time.Weekday
		seen [7]bool
	)
	for _, r := range s {
		if r == ',' || r == ' ' {
			continue
		}
		wd, err := ParseSymbol(string(r))
		if err != nil {
			return nil, err
		}
		if seen[wd] {
			continue
		}
		seen[wd] = true
		days = append(days, wd)
	}
	return days, nil
}

// FormatDays writes days as a run of local symbols.
func FormatDays(days []time.Weekday) string {
	var b strings.Builder
	for _, d := range days {
		b.WriteString(localSymbols[d])
	}
	return b.String()
}

// ServerToLocal translates a server day list ("MON,WED") into local symbols,
// keeping the server's order. Codes are matched case-insensitively.
func ServerToLocal(codes string) ([]string, error) {
	if strings.TrimSpace(codes) == "" {
		return nil, nil
	}
	parts := strings.Split(codes, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		code := strings.ToUpper(strings.TrimSpace(p))
		idx := -1
		for i, c := range serverCodes {
			if c == code {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("unknown server day code %q", p)
		}
		out = append(out, localSymbols[idx])
	}
	return out, nil
}

// LocalToServer is the inverse of ServerToLocal.
func LocalToServer(symbols []string) (string, error) {
	codes := make([]string, 0, len(symbols))
	for _, s := range symbols {
		wd, err := ParseSymbol(s)
		if err != nil {
			return "", err
		}
		codes = append(codes, serverCodes[wd])
	}
	return strings.Join(codes, ","), nil
}
