package decoder

import "errors"

// ErrNoRoot is returned when a feed ends before any root element starts.
var ErrNoRoot = errors.New("feed has no root element")

// ErrShopInvalid is returned in strict mode when the shop block lacks
// required fields, or the feed has no shop at all.
var ErrShopInvalid = errors.New("shop is missing required fields")
