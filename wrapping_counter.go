package astisi

// wrappingCounter counts through a fixed-width numbering space, wrapping back
// to zero past wrapAt. Used for the 4-bit descriptor_number sequence when one
// logical value is split over several records.
type wrappingCounter struct {
	value  int
	wrapAt int
}

// newWrappingCounter returns a counter whose first inc() yields 0.
func newWrappingCounter(wrapAt int) wrappingCounter {
	return wrappingCounter{
		value:  wrapAt + 1,
		wrapAt: wrapAt,
	}
}

func (c *wrappingCounter) inc() int {
	c.value++
	if c.value > c.wrapAt {
		c.value = 0
	}
	return c.value
}
