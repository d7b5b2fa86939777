package mock

import "github.com/henfal/mdubot"

var _ mdubot.Converter = (*Converter)(nil)

// Converter is a mock implementation of mdubot.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
