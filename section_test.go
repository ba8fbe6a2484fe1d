package docdex_test

import (
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
)

func TestExtractSections(t *testing.T) {
	t.Parallel()

	t.Run("extracts H1 heading", func(t *testing.T) {
		t.Parallel()

		markdown := "# Introduction\n\nSome content here."

		sections := docdex.ExtractSections(markdown)

		assert.Len(t, sections, 1)
		assert.Equal(t, 1, sections[0].Level)
		assert.Equal(t, "Introduction", sections[0].Title)
		assert.Equal(t, "introduction", sections[0].Anchor)
	})

	t.Run("extracts H2 through H6 headings", func(t *testing.T) {
		t.Parallel()

		markdown := `# H1 Title
## H2 Title
### H3 Title
#### H4 Title
##### H5 Title
###### H6 Title`

		sections := docdex.ExtractSections(markdown)

		assert.Len(t, sections, 6)
		for i, s := range sections {
			assert.Equal(t, i+1, s.Level)
		}
	})

	t.Run("generates URL-safe anchors", func(t *testing.T) {
		t.Parallel()

		markdown := "# Getting Started With Widgets"

		sections := docdex.ExtractSections(markdown)

		assert.Len(t, sections, 1)
		assert.Equal(t, "getting-started-with-widgets", sections[0].Anchor)
	})

	t.Run("handles duplicate headings with numeric suffixes", func(t *testing.T) {
		t.Parallel()

		markdown := `# Example
## Example
### Example`

		sections := docdex.ExtractSections(markdown)

		assert.Len(t, sections, 3)
		assert.Equal(t, "example", sections[0].Anchor)
		assert.Equal(t, "example-1", sections[1].Anchor)
		assert.Equal(t, "example-2", sections[2].Anchor)
	})

	t.Run("strips special characters from anchors", func(t *testing.T) {
		t.Parallel()

		markdown := "# API Reference (v2.0)"

		sections := docdex.ExtractSections(markdown)

		assert.Len(t, sections, 1)
		assert.Equal(t, "api-reference-v20", sections[0].Anchor)
	})

	t.Run("ignores code blocks with hash symbols", func(t *testing.T) {
		t.Parallel()

		markdown := "# Real Heading\n\n```bash\n# This is a comment\necho hello\n```\n\n## Another Real Heading"

		sections := docdex.ExtractSections(markdown)

		assert.Len(t, sections, 2)
		assert.Equal(t, "Real Heading", sections[0].Title)
		assert.Equal(t, "Another Real Heading", sections[1].Title)
	})

	t.Run("returns empty slice for markdown without headings", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, docdex.ExtractSections("Just some text\n\nWith paragraphs."))
		assert.Empty(t, docdex.ExtractSections(""))
	})
}

func TestExtractSection(t *testing.T) {
	t.Parallel()

	page := `# Widget

A widget.

## Methods

### destroy

Removes the widget.

Second paragraph.

### clone

Copies the widget.

## Attributes

### name

The display name.`

	t.Run("matches a heading by raw text", func(t *testing.T) {
		t.Parallel()

		got := docdex.ExtractSection(page, "destroy")

		assert.Equal(t, "### destroy\n\nRemoves the widget.\n\nSecond paragraph.", got)
	})

	t.Run("matches a heading by slug", func(t *testing.T) {
		t.Parallel()

		got := docdex.ExtractSection(page, "methods")

		assert.Contains(t, got, "## Methods")
		assert.Contains(t, got, "### destroy")
		assert.Contains(t, got, "### clone")
		assert.NotContains(t, got, "## Attributes")
	})

	t.Run("section runs to end of page when last", func(t *testing.T) {
		t.Parallel()

		got := docdex.ExtractSection(page, "name")

		assert.Equal(t, "### name\n\nThe display name.", got)
	})

	t.Run("returns empty string for unknown anchor", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, docdex.ExtractSection(page, "missing"))
	})

	t.Run("duplicate headings resolve deterministically", func(t *testing.T) {
		t.Parallel()

		markdown := "## Example\n\nfirst\n\n## Example\n\nsecond"

		// Repeated extraction must not accumulate hidden state.
		for i := 0; i < 3; i++ {
			first := docdex.ExtractSection(markdown, "example")
			second := docdex.ExtractSection(markdown, "example-1")

			assert.Equal(t, "## Example\n\nfirst", first)
			assert.Equal(t, "## Example\n\nsecond", second)
		}
	})
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "lowercases and hyphenates", title: "Getting Started", want: "getting-started"},
		{name: "strips punctuation", title: "What's new?", want: "whats-new"},
		{name: "collapses whitespace runs", title: "a  \t b", want: "a-b"},
		{name: "trims hyphens", title: "-- hello --", want: "hello"},
		{name: "keeps digits", title: "Version 2", want: "version-2"},
		{name: "drops underscores", title: "on_tick", want: "ontick"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, docdex.Slug(tt.title))
		})
	}
}
