// Package buffer holds a fixed-size circular trace of float64 samples
// with iterators over the older and newer halves of the window, which
// is what a split-window convergence diagnostic needs.
package buffer

// CircularFloat is a circular buffer of float64 values with the
// ability to iterate over the first and second halves of the values
// collected, in the order that they were appended.
type CircularFloat struct {
	buffer    []float64 // actual storage
	pos       int       // Current position in buffer
	BufSize   int       // BufSize is the fixed number of values maintained in memory
	Count     int       // Count is the number of values in memory. Will always be <= BufSize
	TotalSeen int64     // TotalSeen is the total number of times Add has been called
}

// NewCircularFloat creates a new circular buffer of totalSize. If
// totalSize is not a multiple of 2, it will be adjusted.
func NewCircularFloat(totalSize int) *CircularFloat {
	// Fix odd number situations
	half := totalSize / 2
	total := half + half

	return &CircularFloat{
		buffer:  make([]float64, total),
		pos:     0,
		BufSize: total,
		Count:   0,
	}
}

// Internal: return the next array position
func (c *CircularFloat) nextPos() int {
	return (c.pos + 1) % c.BufSize
}

// Add appends the given value to the buffer, overwriting the oldest entry
func (c *CircularFloat) Add(v float64) {
	c.TotalSeen++

	c.buffer[c.pos] = v

	c.pos = c.nextPos()

	c.Count++
	if c.Count > c.BufSize {
		c.Count = c.BufSize // max out
	}
}

// FirstHalf returns an iterator over the first (oldest) half of the
// stored values. Will not return a valid iterator until Add has been
// called at least BufSize times
func (c *CircularFloat) FirstHalf() *CircularFloatIterator {
	if c.Count < c.BufSize {
		return nil
	}

	return &CircularFloatIterator{
		buf:    c,
		curr:   c.pos, // Oldest is the one we're about to write
		remain: c.BufSize / 2,
	}
}

// SecondHalf returns an iterator over the second (most recent) half of
// the stored values. Will not return a valid iterator until Add has
// been called at least BufSize times
func (c *CircularFloat) SecondHalf() *CircularFloatIterator {
	if c.Count < c.BufSize {
		return nil
	}

	half := c.BufSize / 2
	pos := (c.pos + half) % c.BufSize

	return &CircularFloatIterator{
		buf:    c,
		curr:   pos,
		remain: half,
	}
}

// SplitHalfDiff returns the absolute difference between the means of
// the older and newer halves of the window, or -1 if the window has
// not filled yet. Large values suggest the trace is still drifting.
func (c *CircularFloat) SplitHalfDiff() float64 {
	first := c.FirstHalf()
	second := c.SecondHalf()
	if first == nil || second == nil {
		return -1.0
	}

	m1, m2 := 0.0, 0.0
	n := float64(c.BufSize / 2)
	for first.Next() {
		m1 += first.Value()
	}
	for second.Next() {
		m2 += second.Value()
	}

	d := m1/n - m2/n
	if d < 0 {
		d = -d
	}
	return d
}

// CircularFloatIterator provides an iterator over a CircularFloat buffer
type CircularFloatIterator struct {
	buf    *CircularFloat
	curr   int
	remain int
}

// Next returns True when there are more values to read via Value
func (i *CircularFloatIterator) Next() bool {
	return i.remain > 0
}

// Value return the next value to be read. Should only be called if
// Next() is True
func (i *CircularFloatIterator) Value() float64 {
	v := i.buf.buffer[i.curr]
	i.curr = (i.curr + 1) % i.buf.BufSize
	i.remain--
	return v
}
