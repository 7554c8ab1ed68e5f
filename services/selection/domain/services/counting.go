package services

// CountingSource wraps a Source and counts the values handed out, so callers
// can derive how many candidates DrawIndices rejected.
type CountingSource struct {
	Source
	calls int
}

// NewCountingSource wraps src.
func NewCountingSource(src Source) *CountingSource {
	return &CountingSource{Source: src}
}

// Uint32 forwards to the wrapped source.
func (c *CountingSource) Uint32() uint32 {
	c.calls++
	return c.Source.Uint32()
}

// Calls reports how many values were drawn so far.
func (c *CountingSource) Calls() int {
	return c.calls
}
