package services

import (
	aps "github.com/buildsight/hubview-go/internal/domain/entities/aps"
)

// LatestVersionURN selects the viewable version of an item from its version
// list and returns its URN. The API documents its ordering as most recent
// first, but positional trust alone is fragile, so when every version carries
// a parseable createTime the most recent one is picked by that field instead.
// Lists with any unparseable createTime fall back to the first element. An
// empty list yields ok=false and the item contributes nothing to the catalog.
func LatestVersionURN(list *aps.ResourceList) (string, bool) {
	if list == nil || len(list.Data) == 0 {
		return "", false
	}

	latest := list.Data[0]
	latestTime, ok := latest.CreateTime()
	if !ok {
		return latest.ID, true
	}

	for _, candidate := range list.Data[1:] {
		t, ok := candidate.CreateTime()
		if !ok {
			// Mixed records without timestamps; trust the API ordering.
			return list.Data[0].ID, true
		}
		if t.After(latestTime) {
			latest = candidate
			latestTime = t
		}
	}
	return latest.ID, true
}
