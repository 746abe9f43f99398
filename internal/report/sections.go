package report

import "strings"

// Section is one contiguous table slice of the input, bounded by marker
// rows. Exactly one of Lines or Rows is populated depending on the input
// kind.
type Section struct {
	Marker string
	Lines  []string
	Rows   Grid
}

// SplitTextSections partitions normalized lines into per-marker sections.
// Marker matching is a case-insensitive substring test against the whole
// line. With no markers configured the entire input is a single section.
// Every configured marker must be present; otherwise a MissingMarkerError
// reports which were and were not found.
func SplitTextSections(lines []string, markers []string) ([]Section, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}
	if len(markers) == 0 {
		return []Section{{Lines: lines}}, nil
	}

	positions, err := locateMarkers(lines, markers)
	if err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(markers))
	for i, pos := range positions {
		end := len(lines)
		if i+1 < len(positions) {
			end = positions[i+1]
		}
		sections = append(sections, Section{
			Marker: markers[i],
			Lines:  lines[pos+1 : end],
		})
	}
	return sections, nil
}

// SplitGridSections partitions grid rows into per-marker sections, then
// trims leading and trailing blank rows from each section.
func SplitGridSections(rows Grid, markers []string) ([]Section, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	contents := make([]string, len(rows))
	for i, r := range rows {
		contents[i] = rowContent(r)
	}

	if len(markers) == 0 {
		return []Section{{Rows: trimBlankRows(rows)}}, nil
	}

	positions, err := locateMarkers(contents, markers)
	if err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(markers))
	for i, pos := range positions {
		end := len(rows)
		if i+1 < len(positions) {
			end = positions[i+1]
		}
		sections = append(sections, Section{
			Marker: markers[i],
			Rows:   trimBlankRows(rows[pos+1 : end]),
		})
	}
	return sections, nil
}

// locateMarkers finds, for each marker in order, the first content index
// at or after the previous marker's position that contains it.
func locateMarkers(contents []string, markers []string) ([]int, error) {
	positions := make([]int, 0, len(markers))
	var found, missing []string
	from := 0
	for _, m := range markers {
		idx := -1
		needle := strings.ToLower(m)
		for i := from; i < len(contents); i++ {
			if strings.Contains(strings.ToLower(contents[i]), needle) {
				idx = i
				break
			}
		}
		if idx < 0 {
			missing = append(missing, m)
			continue
		}
		found = append(found, m)
		positions = append(positions, idx)
		from = idx + 1
	}
	if len(missing) > 0 {
		return nil, &MissingMarkerError{Found: found, Missing: missing}
	}
	return positions, nil
}

func trimBlankRows(rows Grid) Grid {
	start, end := 0, len(rows)
	for start < end && isBlankRow(rows[start]) {
		start++
	}
	for end > start && isBlankRow(rows[end-1]) {
		end--
	}
	return rows[start:end]
}
