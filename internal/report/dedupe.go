package report

import "fmt"

// Deduplicate removes records whose identity field value was already
// seen, keeping the first occurrence in encounter order. A record whose
// identity value is nil is always dropped. The second return is the
// number of records removed.
func Deduplicate(records []Record, identityField string) ([]Record, int) {
	if identityField == "" {
		return records, 0
	}
	out := make([]Record, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	dropped := 0
	for _, rec := range records {
		id := rec[identityField]
		if id == nil {
			dropped++
			continue
		}
		key := fmt.Sprintf("%v", id)
		if _, ok := seen[key]; ok {
			dropped++
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out, dropped
}
