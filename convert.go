package docdex

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown. The input should be
	// clean HTML with its links already rewritten.
	Convert(html string) (string, error)
}
