package docdex

import (
	"strconv"
	"strings"
	"unicode"
)

// Section represents a heading in a markdown page.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// ExtractSections scans markdown line by line and returns all headings
// (H1-H6). It generates URL-safe anchors and handles duplicate headings with
// numeric suffixes: the second occurrence of an identical heading text gets
// "-1", the third "-2", and so on. Headings inside fenced code blocks are
// ignored.
//
// The same algorithm assigns anchors at generation time and locates sections
// at retrieval time, so the two sides never disagree on where a slug points.
func ExtractSections(markdown string) []Section {
	var sections []Section
	anchorCounts := make(map[string]int)

	inFence := false
	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		level, title, ok := parseHeading(line)
		if !ok {
			continue
		}

		baseAnchor := Slug(title)
		anchor := baseAnchor
		if count, exists := anchorCounts[baseAnchor]; exists {
			anchor = baseAnchor + "-" + strconv.Itoa(count)
			anchorCounts[baseAnchor]++
		} else {
			anchorCounts[baseAnchor] = 1
		}

		sections = append(sections, Section{
			Level:  level,
			Title:  title,
			Anchor: anchor,
		})
	}

	return sections
}

// ExtractSection returns the markdown section matching anchor: the heading
// line plus everything up to (but not including) the next heading whose level
// is less than or equal to the matched heading's level. The anchor matches a
// heading when it equals either the raw heading text or its computed slug.
// Returns "" when no heading matches.
func ExtractSection(markdown, anchor string) string {
	anchorCounts := make(map[string]int)
	lines := strings.Split(markdown, "\n")

	matchLevel := -1
	start := -1
	end := len(lines)

	inFence := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		level, title, ok := parseHeading(line)
		if !ok {
			continue
		}

		baseAnchor := Slug(title)
		slug := baseAnchor
		if count, exists := anchorCounts[baseAnchor]; exists {
			slug = baseAnchor + "-" + strconv.Itoa(count)
			anchorCounts[baseAnchor]++
		} else {
			anchorCounts[baseAnchor] = 1
		}

		if start == -1 {
			if title == anchor || slug == anchor {
				matchLevel = level
				start = i
			}
			continue
		}

		// Section ends at the next heading at the same or a shallower level.
		if level <= matchLevel {
			end = i
			break
		}
	}

	if start == -1 {
		return ""
	}
	return strings.TrimRight(strings.Join(lines[start:end], "\n"), "\n")
}

// parseHeading reports whether line is an ATX heading and returns its level
// and trimmed title text.
func parseHeading(line string) (level int, title string, ok bool) {
	if !strings.HasPrefix(line, "#") {
		return 0, "", false
	}
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level > 6 || level == len(line) || line[level] != ' ' {
		return 0, "", false
	}
	title = strings.TrimSpace(line[level:])
	if title == "" {
		return 0, "", false
	}
	return level, title, true
}

// Slug creates a URL-safe anchor from a heading title. Converts to lowercase,
// strips punctuation, collapses whitespace runs to single hyphens, and trims
// leading and trailing hyphens.
func Slug(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
