package pos

import (
	"strings"

	"storefront-checkout/internal/pkg/errs"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// node is a decoded JSON value. POS responses use loose typing (ids as
// numbers or strings, prices as scalars or per-list objects) so payloads are
// decoded into a tree and read through tolerant accessors.
type node struct {
	typ  jx.Type
	text string // string contents or the raw number literal
	b    bool
	keys []string
	obj  map[string]*node
	arr  []*node
}

func parse(data []byte) (*node, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return &node{typ: jx.Object, obj: map[string]*node{}}, nil
	}
	d := jx.DecodeBytes(data)
	n, err := decodeNode(d)
	if err != nil {
		return nil, errs.Wrap(err, "decode POS response")
	}
	return n, nil
}

func decodeNode(d *jx.Decoder) (*node, error) {
	switch t := d.Next(); t {
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return nil, err
		}
		return &node{typ: t, text: s}, nil
	case jx.Number:
		num, err := d.Num()
		if err != nil {
			return nil, err
		}
		return &node{typ: t, text: num.String()}, nil
	case jx.Bool:
		b, err := d.Bool()
		if err != nil {
			return nil, err
		}
		return &node{typ: t, b: b}, nil
	case jx.Null:
		if err := d.Null(); err != nil {
			return nil, err
		}
		return &node{typ: t}, nil
	case jx.Array:
		n := &node{typ: t}
		err := d.Arr(func(d *jx.Decoder) error {
			item, err := decodeNode(d)
			if err != nil {
				return err
			}
			n.arr = append(n.arr, item)
			return nil
		})
		return n, err
	case jx.Object:
		n := &node{typ: t, obj: map[string]*node{}}
		err := d.Obj(func(d *jx.Decoder, key string) error {
			item, err := decodeNode(d)
			if err != nil {
				return err
			}
			if _, dup := n.obj[key]; !dup {
				n.keys = append(n.keys, key)
			}
			n.obj[key] = item
			return nil
		})
		return n, err
	default:
		return nil, errs.Newf("unexpected JSON token %s", t)
	}
}

func (n *node) isNull() bool {
	return n == nil || n.typ == jx.Null || n.typ == jx.Invalid
}

func (n *node) isArray() bool  { return n != nil && n.typ == jx.Array }
func (n *node) isObject() bool { return n != nil && n.typ == jx.Object }

// field returns the first non-null value among keys.
func (n *node) field(keys ...string) *node {
	if !n.isObject() {
		return nil
	}
	for _, k := range keys {
		if v, ok := n.obj[k]; ok && !v.isNull() {
			return v
		}
	}
	return nil
}

// items lists array elements, or object values in document order.
func (n *node) items() []*node {
	switch {
	case n.isArray():
		return n.arr
	case n.isObject():
		out := make([]*node, 0, len(n.keys))
		for _, k := range n.keys {
			out = append(out, n.obj[k])
		}
		return out
	default:
		return nil
	}
}

// str renders scalars as text; objects and arrays render empty.
func (n *node) str() string {
	if n == nil {
		return ""
	}
	switch n.typ {
	case jx.String, jx.Number:
		return strings.TrimSpace(n.text)
	case jx.Bool:
		if n.b {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// truthy follows loose JSON truthiness: 0, "", "0", false and null are false.
func (n *node) truthy() bool {
	if n.isNull() {
		return false
	}
	switch n.typ {
	case jx.Bool:
		return n.b
	case jx.Number:
		d, err := decimal.NewFromString(n.text)
		return err != nil || !d.IsZero()
	case jx.String:
		s := strings.TrimSpace(n.text)
		return s != "" && s != "0"
	default:
		return true
	}
}

// number reads a numeric value. Strings are cleaned of spaces, currency
// symbols and comma decimal separators. For objects and arrays the first
// positive member wins, then the first numeric one.
func (n *node) number() (decimal.Decimal, bool) {
	if n.isNull() {
		return decimal.Zero, false
	}
	switch n.typ {
	case jx.Number:
		d, err := decimal.NewFromString(n.text)
		return d, err == nil
	case jx.String:
		return parseLooseNumber(n.text)
	case jx.Object, jx.Array:
		var (
			first decimal.Decimal
			found bool
		)
		for _, item := range n.items() {
			d, ok := item.number()
			if !ok {
				continue
			}
			if d.IsPositive() {
				return d, true
			}
			if !found {
				first, found = d, true
			}
		}
		return first, found
	}
	return decimal.Zero, false
}

func (n *node) int64() (int64, bool) {
	d, ok := n.number()
	if !ok {
		return 0, false
	}
	return d.Round(0).IntPart(), true
}

func parseLooseNumber(s string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range strings.Replace(strings.TrimSpace(s), ",", ".", 1) {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(b.String())
	return d, err == nil
}

// envelopeError reports the POS error field, which may be an object, a code
// or a string, optionally accompanied by a message.
func envelopeError(root *node) error {
	e := root.field("error")
	if !e.truthy() {
		return nil
	}
	detail := e.str()
	if e.isObject() || e.isArray() {
		detail = e.encode()
	}
	if msg := root.field("message").str(); msg != "" {
		detail += " " + msg
	}
	return errs.Newf("POS API error: %s", detail)
}

// encode writes n back to compact JSON.
func (n *node) encode() string {
	var e jx.Encoder
	n.write(&e)
	return e.String()
}

func (n *node) write(e *jx.Encoder) {
	if n.isNull() {
		e.Null()
		return
	}
	switch n.typ {
	case jx.String:
		e.Str(n.text)
	case jx.Number:
		e.Num(jx.Num(n.text))
	case jx.Bool:
		e.Bool(n.b)
	case jx.Array:
		e.ArrStart()
		for _, item := range n.arr {
			item.write(e)
		}
		e.ArrEnd()
	case jx.Object:
		e.ObjStart()
		for _, k := range n.keys {
			e.FieldStart(k)
			n.obj[k].write(e)
		}
		e.ObjEnd()
	}
}
