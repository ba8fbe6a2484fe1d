package mock

import "github.com/fwojciec/docdex"

var _ docdex.Converter = (*Converter)(nil)

// Converter is a mock implementation of docdex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
