package ctype

import "github.com/stackvm-lang/cc/container"

// MaxAlign bounds per-field alignment in struct layout: a field is
// aligned to min(field.size, MaxAlign), never more.
const MaxAlign = 16

// FieldSpec is one field in source declaration order, as read by the
// parser before layout is computed.
type FieldSpec struct {
	Name string
	Type *Ctype
}

// alignUp rounds offset up to the next multiple of align (align > 0).
func alignUp(offset, align int) int {
	if offset%align == 0 {
		return offset
	}
	return offset + (align - offset%align)
}

// LayoutStruct computes struct field offsets: each field is aligned to
// min(field.size, MaxAlign) from the running offset, and the final size
// is the last offset plus that field's size — there is no trailing
// padding to the alignment of the largest member, unlike the standard C
// ABI. This mirrors the reference implementation's layout exactly (see
// the design notes on deliberately non-conformant struct size).
func LayoutStruct(fields []FieldSpec) (*container.Dict[*Ctype], int) {
	dict := container.NewDict[*Ctype](nil)
	offset := 0
	for _, f := range fields {
		align := f.Type.Size
		if align > MaxAlign {
			align = MaxAlign
		}
		if align < 1 {
			align = 1
		}
		offset = alignUp(offset, align)
		dict.Put(f.Name, StructField(f.Type, offset))
		offset += f.Type.Size
	}
	return dict, offset
}

// LayoutUnion places every field at offset 0; the union's size is the
// largest field size.
func LayoutUnion(fields []FieldSpec) (*container.Dict[*Ctype], int) {
	dict := container.NewDict[*Ctype](nil)
	size := 0
	for _, f := range fields {
		dict.Put(f.Name, StructField(f.Type, 0))
		if f.Type.Size > size {
			size = f.Type.Size
		}
	}
	return dict, size
}
