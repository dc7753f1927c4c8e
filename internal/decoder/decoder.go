// Package decoder contains a streaming Decoder for YML product feeds which
// keeps going on malformed input: broken markup and bad values become
// positioned diagnostics instead of failures.
package decoder

import (
	"context"
	"fmt"
	"io"

	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
)

// SectionPolicy selects which offer placements are collected. Feeds in the
// wild put <offers> inside <shop>, next to it, or skip the wrapper entirely.
type SectionPolicy uint8

const (
	// SectionsAll collects offers wherever they appear, in document order.
	SectionsAll SectionPolicy = iota
	// SectionsNested collects only offers nested inside <shop>.
	SectionsNested
	// SectionsTopLevel collects only offers outside <shop>.
	SectionsTopLevel
)

// ParseSectionPolicy returns the policy named by s, one of "all", "nested"
// or "top-level".
func ParseSectionPolicy(s string) (SectionPolicy, error) {
	switch s {
	case "all":
		return SectionsAll, nil
	case "nested":
		return SectionsNested, nil
	case "top-level":
		return SectionsTopLevel, nil
	}
	return SectionsAll, fmt.Errorf("unknown offer sections policy %q", s)
}

// Config controls decoding. The zero value keeps every diagnostic, treats
// missing shop fields as non-fatal and collects offers in any placement.
type Config struct {
	// MaxErrors caps stored diagnostics; 0 keeps them all.
	MaxErrors int
	// StrictShop makes a feed without a valid shop block fatal.
	StrictShop bool
	// Sections picks which offer placements are collected.
	Sections SectionPolicy
}

// Decoder decodes YML feeds. It is stateless between Decode calls and safe
// for concurrent use.
type Decoder struct {
	cfg Config
}

// NewDecoder returns a decoder with the given configuration.
func NewDecoder(cfg Config) *Decoder {
	return &Decoder{cfg: cfg}
}

// Decode reads the feed and sends every collected offer to offers as soon as
// its closing tag is reached, so memory stays flat regardless of feed size.
// The summary holds the catalog, the emitted offer count and all diagnostics,
// and is returned even when the error is not nil. Fatal outcomes are a feed
// without a root element, an underlying read failure, a canceled context
// and, in strict mode, a missing or invalid shop; everything else is
// recorded in the summary and survived.
func (d *Decoder) Decode(ctx context.Context, feed io.Reader, offers chan<- models.Offer) (*models.ParseSummary, error) {
	p := &parse{
		cfg:  d.cfg,
		ctx:  ctx,
		out:  offers,
		errs: newCollector(d.cfg.MaxErrors),
	}
	p.tok = newTokenizer(feed, p.errs)
	err := p.run()
	return &models.ParseSummary{
		Catalog:       p.catalog,
		OfferCount:    p.emitted,
		Errors:        p.errs.errs,
		DroppedErrors: p.errs.dropped,
	}, err
}

// parse is the state of a single Decode call.
type parse struct {
	cfg  Config
	ctx  context.Context
	tok  *tokenizer
	errs *collector
	out  chan<- models.Offer

	catalog *models.Catalog
	emitted int
}

func (p *parse) run() error {
	root, err := p.findRoot()
	if err != nil {
		return err
	}
	p.catalog = &models.Catalog{}
	if date, ok := root.attr("date"); ok {
		p.catalog.Date = date
	}
	if root.name != "yml_catalog" {
		p.errs.add(models.UnrecognizedField, root.line, root.col, "unexpected root element <"+root.name+">", "")
	}
	if root.selfClosing {
		return p.finish()
	}
	for {
		t, err := p.tok.next()
		if err != nil {
			return p.streamFailed(err)
		}
		switch t.kind {
		case tokenOpen:
			switch t.name {
			case "shop":
				if p.catalog.Shop != nil {
					p.errs.add(models.MalformedXML, t.line, t.col, "duplicate <shop> element", "")
					if err := p.skipElement(t); err != nil {
						return err
					}
					continue
				}
				shop, err := p.parseShop(t)
				if err != nil {
					return err
				}
				p.catalog.Shop = shop
			case "offers":
				if err := p.parseOffers(t, false); err != nil {
					return err
				}
			case "offer":
				if err := p.parseOffer(t, false); err != nil {
					return err
				}
			default:
				p.errs.add(models.UnrecognizedField, t.line, t.col, "unrecognized element <"+t.name+">", "")
				if err := p.skipElement(t); err != nil {
					return err
				}
			}
		case tokenClose:
			if t.name == root.name {
				return p.finish()
			}
		case tokenText:
			// loose text under the root is noise
		case tokenEOF:
			return p.finish()
		}
	}
}

// findRoot skips prolog noise until the root element opens.
func (p *parse) findRoot() (token, error) {
	for {
		t, err := p.tok.next()
		if err != nil {
			return token{}, p.streamFailed(err)
		}
		switch t.kind {
		case tokenOpen:
			return t, nil
		case tokenEOF:
			p.errs.add(models.MalformedXML, t.line, t.col, "feed has no root element", "")
			return token{}, ErrNoRoot
		}
	}
}

func (p *parse) finish() error {
	if p.cfg.StrictShop && p.catalog.Shop == nil {
		return fmt.Errorf("feed has no shop: %w", ErrShopInvalid)
	}
	return nil
}

// emit hands a finished offer to the consumer, honoring cancellation.
func (p *parse) emit(offer models.Offer) error {
	select {
	case p.out <- offer:
		p.emitted++
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// skipElement consumes everything up to the matching close of open.
func (p *parse) skipElement(open token) error {
	if open.selfClosing {
		return nil
	}
	depth := 1
	for depth > 0 {
		t, err := p.tok.next()
		if err != nil {
			return p.streamFailed(err)
		}
		switch t.kind {
		case tokenOpen:
			if !t.selfClosing {
				depth++
			}
		case tokenClose:
			depth--
		case tokenEOF:
			return nil
		}
	}
	return nil
}

func (p *parse) streamFailed(err error) error {
	return fmt.Errorf("feed stream failed: %w", err)
}
