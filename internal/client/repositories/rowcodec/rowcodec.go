// Package rowcodec converts list-valued model fields to and from the SQLite
// text columns that hold them.
package rowcodec

import (
	"encoding/json"
	"strings"
)

// EncodeDays writes local weekday symbols as one run ("월수").
func EncodeDays(days []string) string {
	return strings.Join(days, "")
}

// DecodeDays splits a symbol run back into single symbols, preserving order.
func DecodeDays(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s)/3)
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// EncodeApps stores an app list as a JSON array. Nil becomes "[]".
func EncodeApps(apps []string) (string, error) {
	if apps == nil {
		apps = []string{}
	}
	b, err := json.Marshal(apps)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeApps is the inverse of EncodeApps; an empty array decodes to nil.
func DecodeApps(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var apps []string
	if err := json.Unmarshal([]byte(s), &apps); err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, nil
	}
	return apps, nil
}
