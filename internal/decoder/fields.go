package decoder

import (
	"strconv"
	"strings"

	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
)

// readText returns the flattened text of an element: every text fragment of
// its subtree, trimmed and concatenated in document order. Markup nested
// inside scalar elements is descended into silently.
func (p *parse) readText(open token) (string, error) {
	if open.selfClosing {
		return "", nil
	}
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		t, err := p.tok.next()
		if err != nil {
			return "", p.streamFailed(err)
		}
		switch t.kind {
		case tokenText:
			sb.WriteString(t.text)
		case tokenOpen:
			if !t.selfClosing {
				depth++
			}
		case tokenClose:
			depth--
		case tokenEOF:
			depth = 0
		}
	}
	return sb.String(), nil
}

func (p *parse) textInto(t token, dst *string) error {
	s, err := p.readText(t)
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

// readBool coerces element text into dst. Only the exact strings "true" and
// "false" are booleans; anything else is a mismatch and dst stays untouched.
func (p *parse) readBool(t token, dst *bool) error {
	s, err := p.readText(t)
	if err != nil {
		return err
	}
	b, ok := parseBool(s)
	if !ok {
		p.errs.add(models.TypeMismatch, t.line, t.col, "element <"+t.name+"> is not a boolean", s)
		return nil
	}
	*dst = b
	return nil
}

// readTriBool is readBool for tri-state fields: dst stays nil on mismatch.
func (p *parse) readTriBool(t token, dst **bool) error {
	s, err := p.readText(t)
	if err != nil {
		return err
	}
	b, ok := parseBool(s)
	if !ok {
		p.errs.add(models.TypeMismatch, t.line, t.col, "element <"+t.name+"> is not a boolean", s)
		return nil
	}
	*dst = &b
	return nil
}

func (p *parse) readUint32(t token, dst *uint32) error {
	s, err := p.readText(t)
	if err != nil {
		return err
	}
	n, ok := parseUint(s, 32)
	if !ok {
		p.errs.add(models.TypeMismatch, t.line, t.col, "element <"+t.name+"> is not a valid number", s)
		return nil
	}
	*dst = uint32(n)
	return nil
}

func (p *parse) readOptUint32(t token, dst **uint32) error {
	s, err := p.readText(t)
	if err != nil {
		return err
	}
	n, ok := parseUint(s, 32)
	if !ok {
		p.errs.add(models.TypeMismatch, t.line, t.col, "element <"+t.name+"> is not a valid number", s)
		return nil
	}
	v := uint32(n)
	*dst = &v
	return nil
}

func (p *parse) readUint64(t token, dst *uint64) error {
	s, err := p.readText(t)
	if err != nil {
		return err
	}
	n, ok := parseUint(s, 64)
	if !ok {
		p.errs.add(models.TypeMismatch, t.line, t.col, "element <"+t.name+"> is not a valid number", s)
		return nil
	}
	*dst = n
	return nil
}

func (p *parse) readFloat32(t token, dst *float32) error {
	s, err := p.readText(t)
	if err != nil {
		return err
	}
	f, perr := strconv.ParseFloat(s, 32)
	if perr != nil {
		p.errs.add(models.TypeMismatch, t.line, t.col, "element <"+t.name+"> is not a valid number", s)
		return nil
	}
	*dst = float32(f)
	return nil
}

// readPrice reads a price element: float text plus the `from` attribute.
// A nil, nil return means the text was not a price and was reported.
func (p *parse) readPrice(t token) (*models.Price, error) {
	from := false
	if b := p.boolAttr(t, "from"); b != nil {
		from = *b
	}
	s, err := p.readText(t)
	if err != nil {
		return nil, err
	}
	f, perr := strconv.ParseFloat(s, 32)
	if perr != nil {
		p.errs.add(models.TypeMismatch, t.line, t.col, "element <"+t.name+"> is not a valid price", s)
		return nil, nil
	}
	return &models.Price{Value: float32(f), From: from}, nil
}

// uintAttr reads an unsigned numeric attribute. Absent attributes are not an
// error; non-numeric values are reported at the element position.
func (p *parse) uintAttr(t token, name string, bits int) (uint64, bool) {
	v, ok := t.attr(name)
	if !ok {
		return 0, false
	}
	n, ok := parseUint(strings.TrimSpace(v), bits)
	if !ok {
		p.errs.add(models.TypeMismatch, t.line, t.col, "attribute "+name+" of <"+t.name+"> is not a valid number", v)
		return 0, false
	}
	return n, true
}

// hourAttr reads an hour-of-day attribute, 0 through 23.
func (p *parse) hourAttr(t token, name string) *uint32 {
	v, ok := t.attr(name)
	if !ok {
		return nil
	}
	n, ok := parseUint(strings.TrimSpace(v), 32)
	if !ok || n > 23 {
		p.errs.add(models.TypeMismatch, t.line, t.col, "attribute "+name+" of <"+t.name+"> is not an hour between 0 and 23", v)
		return nil
	}
	h := uint32(n)
	return &h
}

func (p *parse) boolAttr(t token, name string) *bool {
	v, ok := t.attr(name)
	if !ok {
		return nil
	}
	b, ok := parseBool(strings.TrimSpace(v))
	if !ok {
		p.errs.add(models.TypeMismatch, t.line, t.col, "attribute "+name+" of <"+t.name+"> is not a boolean", v)
		return nil
	}
	return &b
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func parseUint(s string, bits int) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, bits)
	return n, err == nil
}
