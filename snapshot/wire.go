package snapshot

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// field is one decoded wire field. Varint and fixed64 values land in u,
// length-delimited values in raw.
type field struct {
	num protowire.Number
	typ protowire.Type
	u   uint64
	raw []byte
}

func parseFields(b []byte) ([]field, error) {
	var fields []field
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.u, n = protowire.ConsumeVarint(b)
		case protowire.Fixed64Type:
			f.u, n = protowire.ConsumeFixed64(b)
		case protowire.BytesType:
			f.raw, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, fmt.Errorf("field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]
		fields = append(fields, f)
	}
	return fields, nil
}

// decoder reads typed values out of fields and keeps the first error, so a
// message can be decoded field by field with a single check at the end.
type decoder struct {
	err error
}

func (d *decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf(format, args...)
	}
}

func (d *decoder) expect(f field, typ protowire.Type) bool {
	if f.typ != typ {
		d.fail("field %d: unexpected wire type %d", f.num, f.typ)
		return false
	}
	return true
}

func (d *decoder) message(f field) []field {
	if d.err != nil || !d.expect(f, protowire.BytesType) {
		return nil
	}
	return d.parse(f.raw)
}

func (d *decoder) parse(b []byte) []field {
	if d.err != nil {
		return nil
	}
	fields, err := parseFields(b)
	if err != nil {
		d.fail("%w", err)
		return nil
	}
	return fields
}

func (d *decoder) uint64(f field) uint64 {
	if !d.expect(f, protowire.VarintType) {
		return 0
	}
	return f.u
}

// uint32 also rejects values that do not fit, which ids and counts never do.
func (d *decoder) uint32(f field) uint32 {
	v := d.uint64(f)
	if v > math.MaxUint32 {
		d.fail("field %d: value %d out of range", f.num, v)
		return 0
	}
	return uint32(v)
}

func (d *decoder) int64(f field) int64 {
	return int64(d.uint64(f))
}

func (d *decoder) bool(f field) bool {
	return protowire.DecodeBool(d.uint64(f))
}

func (d *decoder) double(f field) float64 {
	if !d.expect(f, protowire.Fixed64Type) {
		return 0
	}
	return math.Float64frombits(f.u)
}

func (d *decoder) string(f field) string {
	if !d.expect(f, protowire.BytesType) {
		return ""
	}
	return string(f.raw)
}

// packed reads a repeated varint field in either packed or expanded form.
func (d *decoder) packed(f field) []uint64 {
	if f.typ == protowire.VarintType {
		return []uint64{f.u}
	}
	if !d.expect(f, protowire.BytesType) {
		return nil
	}
	var out []uint64
	for b := f.raw; len(b) > 0; {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			d.fail("field %d: %w", f.num, protowire.ParseError(n))
			return nil
		}
		out = append(out, v)
		b = b[n:]
	}
	return out
}
