package retrieve

import (
	"bufio"
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/fwojciec/docdex"
)

// DefaultLimit bounds search results when the caller does not.
const DefaultLimit = 10

// maxLineBytes sizes the scanner buffer; concept chunks carry whole narrative
// pages, which overflow bufio's default token limit.
const maxLineBytes = 4 << 20

// Query describes one search over the chunk corpus. Filter fields are
// case-insensitive; a filter with multiple values matches any of them.
type Query struct {
	Text    string
	Stages  []string
	Kinds   []string
	Names   []string
	Members []string
	Limit   int
}

// Hit is one scored search result.
type Hit struct {
	Score   int    `json:"score"`
	ID      string `json:"id"`
	Stage   string `json:"stage"`
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Member  string `json:"member,omitempty"`
	RelPath string `json:"relPath,omitempty"`
	Anchor  string `json:"anchor,omitempty"`
	Snippet string `json:"snippet"`
}

// Search streams the corpus once, scoring each chunk against the query and
// keeping only the top Limit hits. Memory use is bounded by the limit, not the
// corpus size. Malformed corpus lines are skipped.
func (e *Engine) Search(q Query) ([]Hit, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "search query required")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	f, err := os.Open(e.chunksPath())
	if err != nil {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "chunk corpus for version %s not found: %v", e.Version, err)
	}
	defer f.Close()

	needle := strings.ToLower(q.Text)
	stages := lowerSet(q.Stages)
	kinds := lowerSet(q.Kinds)
	names := lowerSet(q.Names)
	members := lowerSet(q.Members)

	var hits []Hit
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		var chunk docdex.Chunk
		if err := json.Unmarshal(scanner.Bytes(), &chunk); err != nil {
			continue
		}
		if !matchSet(stages, chunk.Stage) || !matchSet(kinds, chunk.Kind) ||
			!matchSet(names, chunk.Name) || !matchSet(members, chunk.Member) {
			continue
		}
		score := scoreChunk(&chunk, needle)
		if score == 0 {
			continue
		}
		hits = insertHit(hits, Hit{
			Score:   score,
			ID:      chunk.ID,
			Stage:   chunk.Stage,
			Kind:    chunk.Kind,
			Name:    chunk.Name,
			Member:  chunk.Member,
			RelPath: chunk.RelPath,
			Anchor:  chunk.Anchor,
			Snippet: snippet(chunk.Text, q.Text),
		}, limit)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return hits, nil
}

func scoreChunk(chunk *docdex.Chunk, needle string) int {
	score := 0
	if strings.Contains(strings.ToLower(chunk.ID), needle) {
		score += 20
	}
	if strings.Contains(strings.ToLower(chunk.Name), needle) {
		score += 10
	}
	if chunk.Member != "" && strings.Contains(strings.ToLower(chunk.Member), needle) {
		score += 8
	}
	occurrences := strings.Count(strings.ToLower(chunk.Text), needle)
	if occurrences > 20 {
		occurrences = 20
	}
	score += occurrences * 2
	return score
}

// insertHit keeps hits sorted by score descending with id ascending as the
// tiebreak, truncated to limit.
func insertHit(hits []Hit, hit Hit, limit int) []Hit {
	pos := sort.Search(len(hits), func(i int) bool {
		if hits[i].Score != hit.Score {
			return hits[i].Score < hit.Score
		}
		return hits[i].ID > hit.ID
	})
	if pos >= limit {
		return hits
	}
	hits = append(hits, Hit{})
	copy(hits[pos+1:], hits[pos:])
	hits[pos] = hit
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// snippet returns a window of the chunk text around the first match, with the
// text collapsed to single spaces. Falls back to the leading text when the
// match was in the metadata rather than the body.
func snippet(text, query string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	idx := strings.Index(strings.ToLower(collapsed), strings.ToLower(query))
	if idx < 0 {
		if len(collapsed) > 140 {
			return collapsed[:140] + "…"
		}
		return collapsed
	}

	start := idx - 60
	if start < 0 {
		start = 0
	}
	end := idx + len(query) + 120
	if end > len(collapsed) {
		end = len(collapsed)
	}

	s := collapsed[start:end]
	if start > 0 {
		s = "…" + s
	}
	if end < len(collapsed) {
		s += "…"
	}
	return s
}

func lowerSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(strings.ToLower(v))
		if v != "" {
			set[v] = true
		}
	}
	return set
}

func matchSet(set map[string]bool, value string) bool {
	if set == nil {
		return true
	}
	return set[strings.ToLower(value)]
}
