package txb

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/OKaluzny/sui-tips/internal/bcs"
)

type tagKind uint32

// BCS variant indices of Move type tags.
const (
	tagBool tagKind = iota
	tagU8
	tagU64
	tagU128
	tagAddress
	tagSigner
	tagVector
	tagStruct
	tagU16
	tagU32
	tagU256
)

var primitiveTags = map[string]tagKind{
	"bool":    tagBool,
	"u8":      tagU8,
	"u16":     tagU16,
	"u32":     tagU32,
	"u64":     tagU64,
	"u128":    tagU128,
	"u256":    tagU256,
	"address": tagAddress,
	"signer":  tagSigner,
}

// TypeTag is a Move type used as a type argument.
type TypeTag struct {
	kind tagKind
	elem *TypeTag
	st   *StructTag
}

// StructTag names a Move struct type.
type StructTag struct {
	Address    Address
	Module     string
	Name       string
	TypeParams []TypeTag
}

// ParseTypeTag parses forms like "u64", "vector<u8>" and
// "0x2::coin::Coin<0x2::sui::SUI>".
func ParseTypeTag(s string) (TypeTag, error) {
	p := &tagParser{s: strings.Join(strings.Fields(s), "")}
	t, err := p.parse()
	if err != nil {
		return TypeTag{}, errors.Wrapf(err, "type tag %q", s)
	}
	if p.pos != len(p.s) {
		return TypeTag{}, errors.Errorf("type tag %q: unexpected %q", s, p.s[p.pos:])
	}
	return t, nil
}

// SameType reports whether two type strings name the same Move type, so that
// "0x2::sui::SUI" matches its full-length form.
func SameType(a, b string) bool {
	ta, err := ParseTypeTag(a)
	if err != nil {
		return false
	}
	tb, err := ParseTypeTag(b)
	if err != nil {
		return false
	}
	return ta.String() == tb.String()
}

// String renders the tag with full-length addresses.
func (t TypeTag) String() string {
	switch t.kind {
	case tagVector:
		return "vector<" + t.elem.String() + ">"
	case tagStruct:
		return t.st.String()
	}
	for name, k := range primitiveTags {
		if k == t.kind {
			return name
		}
	}
	return "unknown"
}

func (s *StructTag) String() string {
	var b strings.Builder
	b.WriteString(s.Address.String())
	b.WriteString("::")
	b.WriteString(s.Module)
	b.WriteString("::")
	b.WriteString(s.Name)
	if len(s.TypeParams) > 0 {
		b.WriteString("<")
		for i, p := range s.TypeParams {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteString(">")
	}
	return b.String()
}

func (t TypeTag) MarshalBCS(e *bcs.Encoder) {
	e.Variant(uint32(t.kind))
	switch t.kind {
	case tagVector:
		t.elem.MarshalBCS(e)
	case tagStruct:
		t.st.MarshalBCS(e)
	}
}

func (s *StructTag) MarshalBCS(e *bcs.Encoder) {
	s.Address.MarshalBCS(e)
	e.String(s.Module)
	e.String(s.Name)
	e.Length(len(s.TypeParams))
	for _, p := range s.TypeParams {
		p.MarshalBCS(e)
	}
}

type tagParser struct {
	s   string
	pos int
}

func (p *tagParser) consume(tok string) bool {
	if strings.HasPrefix(p.s[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *tagParser) word() string {
	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune("<>,", rune(p.s[p.pos])) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *tagParser) parse() (TypeTag, error) {
	w := p.word()
	if w == "" {
		return TypeTag{}, errors.New("empty type")
	}
	if w == "vector" {
		if !p.consume("<") {
			return TypeTag{}, errors.New("vector without element type")
		}
		elem, err := p.parse()
		if err != nil {
			return TypeTag{}, err
		}
		if !p.consume(">") {
			return TypeTag{}, errors.New("unterminated vector")
		}
		return TypeTag{kind: tagVector, elem: &elem}, nil
	}
	if k, ok := primitiveTags[w]; ok {
		return TypeTag{kind: k}, nil
	}

	st, err := parseStructName(w)
	if err != nil {
		return TypeTag{}, err
	}
	if p.consume("<") {
		for {
			param, err := p.parse()
			if err != nil {
				return TypeTag{}, err
			}
			st.TypeParams = append(st.TypeParams, param)
			if p.consume(",") {
				continue
			}
			if p.consume(">") {
				break
			}
			return TypeTag{}, errors.New("unterminated type parameters")
		}
	}
	return TypeTag{kind: tagStruct, st: st}, nil
}

func parseStructName(w string) (*StructTag, error) {
	parts := strings.Split(w, "::")
	if len(parts) != 3 {
		return nil, errors.Errorf("%q is not address::module::name", w)
	}
	addr, err := ParseAddress(parts[0])
	if err != nil {
		return nil, err
	}
	if !isIdentifier(parts[1]) || !isIdentifier(parts[2]) {
		return nil, errors.Errorf("%q has an invalid identifier", w)
	}
	return &StructTag{Address: addr, Module: parts[1], Name: parts[2]}, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
