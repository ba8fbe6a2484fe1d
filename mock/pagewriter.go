package mock

import "github.com/fwojciec/docdex"

var _ docdex.PageWriter = (*PageWriter)(nil)

// PageWriter is a mock implementation of docdex.PageWriter. When WriteFn is
// nil, pages are recorded in Pages keyed by relPath.
type PageWriter struct {
	WriteFn func(relPath, content string) error

	Pages map[string]string
}

func (w *PageWriter) WritePage(relPath, content string) error {
	if w.WriteFn != nil {
		return w.WriteFn(relPath, content)
	}
	if w.Pages == nil {
		w.Pages = make(map[string]string)
	}
	w.Pages[relPath] = content
	return nil
}
