package fetcher

import "errors"

var (
	// ErrStatusNotOK is returned when http response had status different than 200 OK.
	ErrStatusNotOK = errors.New("response status is not 200 OK")
	// ErrContentTypeNotSupported is returned when the response cannot be a feed,
	// like an html error page served instead of one.
	ErrContentTypeNotSupported = errors.New("response content type not supported")
)
