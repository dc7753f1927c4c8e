package decoder

import "github.com/ayakovlev/market-feed-parser/internal/platform/models"

// collector accumulates diagnostics in document order. The cap limits stored
// diagnostics only: past it, errors are counted and discarded so parsing can
// still finish structurally and offer counts stay correct.
type collector struct {
	max     int
	errs    []models.ParseError
	dropped int
}

// newCollector returns a collector storing at most maxErrs diagnostics;
// maxErrs <= 0 keeps them all.
func newCollector(maxErrs int) *collector {
	return &collector{max: maxErrs}
}

func (c *collector) add(kind models.ErrorKind, line, col int, msg, value string) {
	if c.max > 0 && len(c.errs) >= c.max {
		c.dropped++
		return
	}
	c.errs = append(c.errs, models.ParseError{
		Kind:    kind,
		Line:    line,
		Column:  col,
		Message: msg,
		Value:   value,
	})
}
