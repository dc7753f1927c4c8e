package decoder_test

import (
	"context"
	"io"
	"runtime"
	"testing"

	"github.com/ayakovlev/market-feed-parser/internal/decoder"
	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
)

var (
	memFeedHeader = []byte(`<yml_catalog date="2024-01-01"><shop><name>S</name><company>C</company><url>http://s.example</url><offers>`)
	memFeedOffer  = []byte(`<offer id="mem-1"><name>Thing</name><price>99</price><currencyId>RUR</currencyId></offer>`)
	memFeedFooter = []byte(`</offers></shop></yml_catalog>`)
)

// offerStream produces a syntactically complete feed with count offers
// without ever materializing it.
type offerStream struct {
	remaining int
	state     int
	buf       []byte
	offset    int
}

const (
	streamStateHeader = iota
	streamStateOffers
	streamStateFooter
	streamStateDone
)

func newOfferStream(count int) io.Reader {
	return &offerStream{
		remaining: count,
		state:     streamStateHeader,
	}
}

func (s *offerStream) Read(p []byte) (int, error) {
	if s.state == streamStateDone {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	if s.offset >= len(s.buf) {
		switch s.state {
		case streamStateHeader:
			s.buf = memFeedHeader
		case streamStateOffers:
			if s.remaining == 0 {
				s.state = streamStateFooter
				s.buf = memFeedFooter
			} else {
				s.buf = memFeedOffer
				s.remaining--
			}
		case streamStateFooter:
			s.state = streamStateDone
			return 0, io.EOF
		}
		s.offset = 0
	}

	n := copy(p, s.buf[s.offset:])
	s.offset += n
	if s.offset >= len(s.buf) {
		switch s.state {
		case streamStateHeader:
			s.state = streamStateOffers
		case streamStateFooter:
			s.state = streamStateDone
		}
	}
	return n, nil
}

func TestUnitDecodeConstantMemory(t *testing.T) {
	runStreamDecode(t, 5)
	runtime.GC()

	heapSmall := measureDecodeHeapDelta(t, 10)
	heapLarge := measureDecodeHeapDelta(t, 10000)

	const maxDelta = 512 * 1024
	if heapLarge > heapSmall+maxDelta {
		t.Fatalf("heap usage grew: 10 offers=%d bytes, 10000 offers=%d bytes (delta=%d)",
			heapSmall, heapLarge, heapLarge-heapSmall)
	}
}

func runStreamDecode(t *testing.T, count int) {
	t.Helper()

	offers := make(chan models.Offer)
	done := make(chan struct{})
	seen := 0
	go func() {
		defer close(done)
		for range offers {
			seen++
		}
	}()

	dec := decoder.NewDecoder(decoder.Config{})
	summary, err := dec.Decode(context.Background(), newOfferStream(count), offers)
	close(offers)
	<-done

	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if seen != count || summary.OfferCount != count {
		t.Fatalf("Decode() emitted %d of %d offers", seen, count)
	}
	if len(summary.Errors) != 0 {
		t.Fatalf("Decode() recorded %d unexpected diagnostics", len(summary.Errors))
	}
}

func measureDecodeHeapDelta(t *testing.T, count int) uint64 {
	t.Helper()

	runtime.GC()
	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	runStreamDecode(t, count)

	runtime.GC()
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	if after.HeapAlloc < before.HeapAlloc {
		return 0
	}
	return after.HeapAlloc - before.HeapAlloc
}
