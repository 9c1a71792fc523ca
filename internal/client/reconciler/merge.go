package reconciler

import (
	"strings"

	"github.com/dmitrijs2005/focuslock/internal/client/models"
)

// precedence ranks origins; lower wins.
var precedence = map[models.Origin]int{
	models.OriginAuthoritative: 0,
	models.OriginPreset:        1,
	models.OriginAdhoc:         2,
}

// MergePolicy resolves conflicts between schedules of different origins.
//
// Origins are taken in precedence order: authoritative, preset, ad-hoc. A
// candidate whose id is already merged is dropped, so the first-seen origin
// owns an id. With MatchNames on, a candidate is also dropped when its trimmed
// name equals the name of a merged schedule from a higher-precedence origin;
// two schedules that share a name but not their times then collide, the lower
// one losing.
type MergePolicy struct {
	MatchNames bool
}

// Merge returns the effective schedule set. The result keeps source order
// within each origin.
func (p MergePolicy) Merge(authoritative, presets, adhoc []*models.Schedule) []*models.Schedule {
	var (
		merged []*models.Schedule
		ids    = make(map[string]bool)
		// best precedence seen per trimmed name
		names = make(map[string]int)
	)

	add := func(candidates []*models.Schedule) {
		for _, s := range candidates {
			if ids[s.ID] {
				continue
			}
			rank := precedence[s.Origin]
			name := strings.TrimSpace(s.Name)
			if p.MatchNames && name != "" {
				if seen, ok := names[name]; ok && seen < rank {
					continue
				}
			}
			ids[s.ID] = true
			if seen, ok := names[name]; !ok || rank < seen {
				names[name] = rank
			}
			merged = append(merged, s)
		}
	}

	add(authoritative)
	add(presets)
	add(adhoc)
	return merged
}
