package decoder

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
)

type tokenKind uint8

const (
	tokenOpen  tokenKind = iota // <name a="v"> or <name/>
	tokenClose                  // </name>, possibly synthesized
	tokenText                   // character data or CDATA, decoded and trimmed
	tokenEOF
)

// attr is a single element attribute, in document order.
type attr struct {
	name  string
	value string
}

// token is one parse event. Line and col are 1-based and point at the first
// byte of the construct; col counts bytes.
type token struct {
	kind  tokenKind
	name  string
	attrs []attr
	text  string
	// selfClosing marks <name/> opens: no matching close will follow.
	selfClosing bool
	line        int
	col         int
}

func (t token) attr(name string) (string, bool) {
	for _, a := range t.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// tokenizer is a pull tokenizer for loosely well-formed XML. It never holds
// more than the current construct in memory, records malformed markup as
// diagnostics instead of failing, and resynchronizes at the next tag
// boundary. Close tags are balanced against the open-element stack, so
// callers always see matched opens and closes.
type tokenizer struct {
	r    *bufio.Reader
	errs *collector

	// position of the next unread byte
	line int
	col  int

	stack   []openElement
	pending []token

	streamErr error
}

type openElement struct {
	name string
	line int
	col  int
}

func newTokenizer(r io.Reader, errs *collector) *tokenizer {
	return &tokenizer{
		r:    bufio.NewReaderSize(r, 32*1024),
		errs: errs,
		line: 1,
		col:  1,
	}
}

// next returns the next token. It returns an error only when the underlying
// reader fails; malformed markup is recorded and skipped. After the last
// byte it keeps returning tokenEOF tokens.
func (z *tokenizer) next() (token, error) {
	if len(z.pending) > 0 {
		t := z.pending[0]
		z.pending = z.pending[1:]
		return t, nil
	}
	for {
		if z.streamErr != nil {
			return token{}, z.streamErr
		}
		line, col := z.line, z.col
		b, ok := z.peekByte()
		if !ok {
			if z.streamErr != nil {
				return token{}, z.streamErr
			}
			return z.atEOF(line, col), nil
		}
		if b == '<' {
			z.readByte()
			if t, ok := z.parseMarkup(line, col); ok {
				return t, nil
			}
			continue
		}
		if t, ok := z.parseText(line, col); ok {
			return t, nil
		}
	}
}

// atEOF closes elements left open at the end of input so builders can still
// finalize partial entities.
func (z *tokenizer) atEOF(line, col int) token {
	if len(z.stack) == 0 {
		return token{kind: tokenEOF, line: line, col: col}
	}
	top := z.stack[len(z.stack)-1]
	z.errs.add(models.MalformedXML, top.line, top.col, "element <"+top.name+"> is never closed", "")
	for i := len(z.stack) - 1; i >= 0; i-- {
		z.pending = append(z.pending, token{kind: tokenClose, name: z.stack[i].name, line: line, col: col})
	}
	z.stack = z.stack[:0]
	t := z.pending[0]
	z.pending = z.pending[1:]
	return t
}

func (z *tokenizer) parseMarkup(line, col int) (token, bool) {
	b, ok := z.peekByte()
	if !ok {
		z.errs.add(models.MalformedXML, line, col, "unterminated tag", "")
		return token{}, false
	}
	switch {
	case b == '/':
		z.readByte()
		return z.parseCloseTag(line, col)
	case b == '?':
		z.readByte()
		z.skipPast("?>")
		return token{}, false
	case b == '!':
		z.readByte()
		if z.peekString("--") {
			z.discard(2)
			z.skipPast("-->")
			return token{}, false
		}
		if z.peekString("[CDATA[") {
			z.discard(7)
			return z.cdata(line, col)
		}
		// DOCTYPE and other declarations
		z.skipPast(">")
		return token{}, false
	case isNameStart(b):
		return z.parseOpenTag(line, col)
	default:
		z.errs.add(models.MalformedXML, line, col, "malformed tag", "")
		z.resync()
		return token{}, false
	}
}

func (z *tokenizer) parseOpenTag(line, col int) (token, bool) {
	name, _ := z.readName()
	t := token{kind: tokenOpen, name: name, line: line, col: col}
	for {
		z.skipSpace()
		b, ok := z.peekByte()
		if !ok {
			z.errs.add(models.MalformedXML, line, col, "unterminated tag", "<"+name)
			return token{}, false
		}
		switch {
		case b == '>':
			z.readByte()
			z.stack = append(z.stack, openElement{name: name, line: line, col: col})
			return t, true
		case b == '/':
			z.readByte()
			if b, ok := z.peekByte(); !ok || b != '>' {
				z.errs.add(models.MalformedXML, line, col, "malformed tag", "<"+name)
				z.resync()
				return token{}, false
			}
			z.readByte()
			t.selfClosing = true
			return t, true
		case isNameStart(b):
			a, ok := z.parseAttr(line, col, name)
			if !ok {
				z.resync()
				return token{}, false
			}
			t.attrs = append(t.attrs, a)
		default:
			z.errs.add(models.MalformedXML, line, col, "malformed tag", "<"+name)
			z.resync()
			return token{}, false
		}
	}
}

func (z *tokenizer) parseAttr(tagLine, tagCol int, tag string) (attr, bool) {
	name, _ := z.readName()
	z.skipSpace()
	if b, ok := z.peekByte(); !ok || b != '=' {
		z.errs.add(models.MalformedXML, tagLine, tagCol, "malformed attribute "+name+" in <"+tag+">", "")
		return attr{}, false
	}
	z.readByte()
	z.skipSpace()
	q, ok := z.peekByte()
	if !ok || (q != '"' && q != '\'') {
		z.errs.add(models.MalformedXML, tagLine, tagCol, "unquoted value of attribute "+name+" in <"+tag+">", "")
		return attr{}, false
	}
	z.readByte()
	var sb strings.Builder
	for {
		b, ok := z.peekByte()
		if !ok || b == '<' {
			z.errs.add(models.MalformedXML, tagLine, tagCol, "unterminated value of attribute "+name+" in <"+tag+">", "")
			return attr{}, false
		}
		if b == q {
			z.readByte()
			return attr{name: name, value: sb.String()}, true
		}
		if b == '&' {
			eline, ecol := z.line, z.col
			z.readByte()
			sb.WriteString(z.entity(eline, ecol))
			continue
		}
		z.readByte()
		sb.WriteByte(b)
	}
}

func (z *tokenizer) parseCloseTag(line, col int) (token, bool) {
	name, ok := z.readName()
	if !ok {
		z.errs.add(models.MalformedXML, line, col, "malformed closing tag", "")
		z.resync()
		return token{}, false
	}
	z.skipSpace()
	if b, ok := z.peekByte(); !ok || b != '>' {
		z.errs.add(models.MalformedXML, line, col, "malformed closing tag", "</"+name)
		z.resync()
		return token{}, false
	}
	z.readByte()
	return z.matchClose(name, line, col)
}

// matchClose balances a close tag against the open-element stack. A close
// matching an outer element abandons the inner ones with synthesized closes;
// a close matching nothing is dropped.
func (z *tokenizer) matchClose(name string, line, col int) (token, bool) {
	depth := -1
	for i := len(z.stack) - 1; i >= 0; i-- {
		if z.stack[i].name == name {
			depth = i
			break
		}
	}
	if depth < 0 {
		z.errs.add(models.MalformedXML, line, col, "unexpected closing tag </"+name+">", "")
		return token{}, false
	}
	if top := len(z.stack) - 1; depth < top {
		z.errs.add(models.MalformedXML, line, col, "element <"+z.stack[top].name+"> closed by </"+name+">", "")
	}
	for i := len(z.stack) - 1; i >= depth; i-- {
		z.pending = append(z.pending, token{kind: tokenClose, name: z.stack[i].name, line: line, col: col})
	}
	z.stack = z.stack[:depth]
	t := z.pending[0]
	z.pending = z.pending[1:]
	return t, true
}

// parseText reads character data up to the next tag. Fragments are
// whitespace-trimmed; whitespace-only fragments produce no token.
func (z *tokenizer) parseText(line, col int) (token, bool) {
	var sb strings.Builder
	for {
		b, ok := z.peekByte()
		if !ok || b == '<' {
			break
		}
		if b == '&' {
			eline, ecol := z.line, z.col
			z.readByte()
			sb.WriteString(z.entity(eline, ecol))
			continue
		}
		z.readByte()
		sb.WriteByte(b)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return token{}, false
	}
	return token{kind: tokenText, text: text, line: line, col: col}, true
}

func (z *tokenizer) cdata(line, col int) (token, bool) {
	buf := make([]byte, 0, 256)
	for {
		b, ok := z.readByte()
		if !ok {
			z.errs.add(models.MalformedXML, line, col, "unterminated CDATA section", "")
			break
		}
		buf = append(buf, b)
		if n := len(buf); n >= 3 && buf[n-3] == ']' && buf[n-2] == ']' && buf[n-1] == '>' {
			buf = buf[:n-3]
			break
		}
	}
	text := strings.TrimSpace(string(buf))
	if text == "" {
		return token{}, false
	}
	return token{kind: tokenText, text: text, line: line, col: col}, true
}

const maxEntityName = 10

// entity decodes a reference right after its '&'. Unknown or unterminated
// references are recorded and kept verbatim.
func (z *tokenizer) entity(line, col int) string {
	var name strings.Builder
	for name.Len() < maxEntityName {
		b, ok := z.peekByte()
		if !ok {
			break
		}
		if b == ';' {
			z.readByte()
			if dec, ok := decodeEntity(name.String()); ok {
				return dec
			}
			z.errs.add(models.MalformedXML, line, col, "unknown entity reference", "&"+name.String()+";")
			return "&" + name.String() + ";"
		}
		if !isEntityByte(b) {
			break
		}
		z.readByte()
		name.WriteByte(b)
	}
	z.errs.add(models.MalformedXML, line, col, "unterminated entity reference", "&"+name.String())
	return "&" + name.String()
}

func decodeEntity(name string) (string, bool) {
	switch name {
	case "lt":
		return "<", true
	case "gt":
		return ">", true
	case "amp":
		return "&", true
	case "apos":
		return "'", true
	case "quot":
		return `"`, true
	}
	if len(name) > 1 && name[0] == '#' {
		digits, base := name[1:], 10
		if len(digits) > 1 && (digits[0] == 'x' || digits[0] == 'X') {
			digits, base = digits[1:], 16
		}
		if n, err := strconv.ParseUint(digits, base, 32); err == nil && utf8.ValidRune(rune(n)) {
			return string(rune(n)), true
		}
	}
	return "", false
}

// resync skips input until the next tag boundary.
func (z *tokenizer) resync() {
	for {
		b, ok := z.peekByte()
		if !ok || b == '<' {
			return
		}
		z.readByte()
	}
}

func (z *tokenizer) readName() (string, bool) {
	if b, ok := z.peekByte(); !ok || !isNameStart(b) {
		return "", false
	}
	var sb strings.Builder
	for {
		b, ok := z.peekByte()
		if !ok || !isNameByte(b) {
			return sb.String(), true
		}
		z.readByte()
		sb.WriteByte(b)
	}
}

func (z *tokenizer) skipSpace() {
	for {
		b, ok := z.peekByte()
		if !ok || !isSpace(b) {
			return
		}
		z.readByte()
	}
}

// skipPast consumes input through the end of pattern, for constructs the
// tokenizer does not surface (comments, processing instructions, DOCTYPE).
func (z *tokenizer) skipPast(pattern string) {
	tail := make([]byte, 0, len(pattern))
	for {
		b, ok := z.readByte()
		if !ok {
			return
		}
		if len(tail) == len(pattern) {
			copy(tail, tail[1:])
			tail[len(tail)-1] = b
		} else {
			tail = append(tail, b)
		}
		if string(tail) == pattern {
			return
		}
	}
}

func (z *tokenizer) peekString(s string) bool {
	b, err := z.r.Peek(len(s))
	if err != nil {
		return false
	}
	return string(b) == s
}

func (z *tokenizer) discard(n int) {
	for i := 0; i < n; i++ {
		z.readByte()
	}
}

func (z *tokenizer) readByte() (byte, bool) {
	b, err := z.r.ReadByte()
	if err != nil {
		z.fail(err)
		return 0, false
	}
	if b == '\n' {
		z.line++
		z.col = 1
	} else {
		z.col++
	}
	return b, true
}

func (z *tokenizer) peekByte() (byte, bool) {
	b, err := z.r.Peek(1)
	if err != nil {
		z.fail(err)
		return 0, false
	}
	return b[0], true
}

// fail poisons the tokenizer on the first non-EOF read error. Stream
// failures are the only fatal tokenizer outcome.
func (z *tokenizer) fail(err error) {
	if err == io.EOF || z.streamErr != nil {
		return
	}
	z.streamErr = err
	z.errs.add(models.StreamFailure, z.line, z.col, "feed stream failed: "+err.Error(), "")
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isNameStart(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '_' || b >= 0x80
}

func isNameByte(b byte) bool {
	return isNameStart(b) || b >= '0' && b <= '9' || b == '-' || b == '.' || b == ':'
}

func isEntityByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '#'
}
