package mint

import (
	"fmt"
	"strings"
)

// ParseType parses the textual form produced by Type.String back into a
// descriptor. It accepts the full grammar: leaf names, list<T>, map<K,V>,
// tuple<T,...> and struct<Name>.
func ParseType(s string) (Type, error) {
	p := typeParser{src: s}
	t, err := p.parse()
	if err != nil {
		return Type{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Type{}, fmt.Errorf("trailing input at offset %d in type %q", p.pos, s)
	}
	return t, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) parse() (Type, error) {
	p.skipSpace()
	name := p.ident()
	if name == "" {
		return Type{}, fmt.Errorf("expected type name at offset %d in %q", p.pos, p.src)
	}
	switch name {
	case "list":
		if err := p.expect('<'); err != nil {
			return Type{}, err
		}
		elem, err := p.parse()
		if err != nil {
			return Type{}, err
		}
		if err := p.expect('>'); err != nil {
			return Type{}, err
		}
		return MakeList(elem), nil
	case "map":
		if err := p.expect('<'); err != nil {
			return Type{}, err
		}
		key, err := p.parse()
		if err != nil {
			return Type{}, err
		}
		if err := p.expect(','); err != nil {
			return Type{}, err
		}
		val, err := p.parse()
		if err != nil {
			return Type{}, err
		}
		if err := p.expect('>'); err != nil {
			return Type{}, err
		}
		return MakeMap(key, val), nil
	case "tuple":
		if err := p.expect('<'); err != nil {
			return Type{}, err
		}
		var items []Type
		for {
			it, err := p.parse()
			if err != nil {
				return Type{}, err
			}
			items = append(items, it)
			p.skipSpace()
			if p.pos < len(p.src) && p.src[p.pos] == ',' {
				p.pos++
				continue
			}
			break
		}
		if err := p.expect('>'); err != nil {
			return Type{}, err
		}
		return MakeTuple(items...), nil
	case "struct":
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == '<' {
			p.pos++
			p.skipSpace()
			ref := p.refName()
			if ref == "" {
				return Type{}, fmt.Errorf("empty struct reference in %q", p.src)
			}
			if err := p.expect('>'); err != nil {
				return Type{}, err
			}
			return MakeRef(ref), nil
		}
		return Type{Kind: KindStruct}, nil
	default:
		k, ok := KindFromString(name)
		if !ok {
			return Type{}, fmt.Errorf("unknown type name %q", name)
		}
		return Type{Kind: k}, nil
	}
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= 'a' && c <= 'z' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

// refName consumes a struct reference name: anything up to '>' that is not a
// delimiter. Registry names may contain dots and unicode, so be permissive.
func (p *typeParser) refName() string {
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune("<>,", rune(p.src[p.pos])) {
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos])
}

func (p *typeParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return fmt.Errorf("expected %q at offset %d in type %q", string(c), p.pos, p.src)
	}
	p.pos++
	return nil
}
