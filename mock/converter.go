package mock

import "github.com/fwojciec/kitchensage"

var _ kitchensage.Converter = (*Converter)(nil)

// Converter is a mock implementation of kitchensage.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
