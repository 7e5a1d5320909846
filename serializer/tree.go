package serializer

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"go.rexsapi.dev/rexsapi/codec"
	"go.rexsapi.dev/rexsapi/model"
	"go.rexsapi.dev/rexsapi/value"
)

var (
	nameModel          = xml.Name{Local: "model"}
	nameRelations      = xml.Name{Local: "relations"}
	nameRelation       = xml.Name{Local: "relation"}
	nameRef            = xml.Name{Local: "ref"}
	nameComponents     = xml.Name{Local: "components"}
	nameComponent      = xml.Name{Local: "component"}
	nameAttribute      = xml.Name{Local: "attribute"}
	nameArray          = xml.Name{Local: "array"}
	nameMatrix         = xml.Name{Local: "matrix"}
	nameArrayOfArrays  = xml.Name{Local: "array_of_arrays"}
	nameC              = xml.Name{Local: "c"}
	nameR              = xml.Name{Local: "r"}
	nameLoadSpectrum   = xml.Name{Local: "load_spectrum"}
	nameLoadCase       = xml.Name{Local: "load_case"}
	nameAccumulation   = xml.Name{Local: "accumulation"}
)

// WriteTree renders m as a structured-text tree document.
func (s *Serializer) WriteTree(m *model.Model) ([]byte, error) {
	ids := emittedIDs(m)

	var buf bytes.Buffer

	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", s.indent)

	if err := enc.EncodeToken(xml.StartElement{Name: nameModel, Attr: headerAttrs(m.Info)}); err != nil {
		return nil, err
	}

	if err := writeTreeRelations(enc, m, ids); err != nil {
		return nil, err
	}

	if err := writeTreeComponents(enc, m, ids); err != nil {
		return nil, err
	}

	if !m.Spectrum.IsEmpty() {
		if err := writeTreeLoadSpectrum(enc, m.Spectrum, ids); err != nil {
			return nil, err
		}
	}

	if err := enc.EncodeToken(xml.EndElement{Name: nameModel}); err != nil {
		return nil, err
	}

	if err := enc.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func headerAttrs(info model.Info) []xml.Attr {
	attrs := []xml.Attr{
		{Name: xml.Name{Local: "applicationId"}, Value: info.ApplicationID},
		{Name: xml.Name{Local: "applicationVersion"}, Value: info.ApplicationVersion},
	}

	if info.Language != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "applicationLanguage"}, Value: info.Language})
	}

	attrs = append(attrs,
		xml.Attr{Name: xml.Name{Local: "date"}, Value: value.NewTimestamp(info.Date, 0).String()},
		xml.Attr{Name: xml.Name{Local: "version"}, Value: info.Version.String()},
	)

	return attrs
}

func writeTreeRelations(enc *xml.Encoder, m *model.Model, ids map[uint64]uint64) error {
	if err := enc.EncodeToken(xml.StartElement{Name: nameRelations}); err != nil {
		return err
	}

	for i, rel := range m.Relations {
		attrs := []xml.Attr{
			{Name: xml.Name{Local: "id"}, Value: strconv.Itoa(i + 1)},
			{Name: xml.Name{Local: "type"}, Value: rel.Type.String()},
		}

		if rel.IsOrdered() {
			attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "order"}, Value: strconv.FormatUint(uint64(*rel.Order), 10)})
		}

		if err := enc.EncodeToken(xml.StartElement{Name: nameRelation, Attr: attrs}); err != nil {
			return err
		}

		for _, ref := range rel.Refs {
			refAttrs := []xml.Attr{
				{Name: xml.Name{Local: "id"}, Value: strconv.FormatUint(ids[ref.ComponentRef], 10)},
				{Name: xml.Name{Local: "role"}, Value: ref.Role.String()},
			}

			if ref.Hint != "" {
				refAttrs = append(refAttrs, xml.Attr{Name: xml.Name{Local: "hint"}, Value: ref.Hint})
			}

			if err := enc.EncodeToken(xml.StartElement{Name: nameRef, Attr: refAttrs}); err != nil {
				return err
			}

			if err := enc.EncodeToken(xml.EndElement{Name: nameRef}); err != nil {
				return err
			}
		}

		if err := enc.EncodeToken(xml.EndElement{Name: nameRelation}); err != nil {
			return err
		}
	}

	return enc.EncodeToken(xml.EndElement{Name: nameRelations})
}

func writeTreeComponents(enc *xml.Encoder, m *model.Model, ids map[uint64]uint64) error {
	if err := enc.EncodeToken(xml.StartElement{Name: nameComponents}); err != nil {
		return err
	}

	for _, c := range m.Components {
		attrs := []xml.Attr{
			{Name: xml.Name{Local: "id"}, Value: strconv.FormatUint(ids[c.InternalID], 10)},
			{Name: xml.Name{Local: "type"}, Value: c.Type},
		}

		if c.Name != "" {
			attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "name"}, Value: c.Name})
		}

		if err := enc.EncodeToken(xml.StartElement{Name: nameComponent, Attr: attrs}); err != nil {
			return err
		}

		for _, a := range c.Attributes {
			if err := writeTreeAttribute(enc, a, ids); err != nil {
				return err
			}
		}

		if err := enc.EncodeToken(xml.EndElement{Name: nameComponent}); err != nil {
			return err
		}
	}

	return enc.EncodeToken(xml.EndElement{Name: nameComponents})
}

func writeTreeAttribute(enc *xml.Encoder, a model.Attribute, ids map[uint64]uint64) error {
	attrs := []xml.Attr{{Name: xml.Name{Local: "id"}, Value: a.ID()}}
	if u := a.Unit(); u.Name != "" && u.Name != "none" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "unit"}, Value: u.Name})
	}

	v := a.Value()

	if v.Type() == value.ReferenceComponent {
		internal, err := value.Get[uint64](v)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", a.ID(), err)
		}

		return writeTreeScalarAttribute(enc, attrs, strconv.FormatUint(ids[internal], 10))
	}

	switch v.Type() {
	case value.FloatingPointArray, value.BooleanArray, value.IntegerArray, value.EnumArray, value.StringArray:
		return writeTreeArrayAttribute(enc, attrs, v)
	case value.FloatingPointMatrix, value.BooleanMatrix, value.IntegerMatrix, value.StringMatrix:
		return writeTreeMatrixAttribute(enc, attrs, v)
	case value.ArrayOfIntegerArrays:
		return writeTreeArrayOfArraysAttribute(enc, attrs, v)
	default:
		return writeTreeScalarAttribute(enc, attrs, v.AsString())
	}
}

func writeTreeScalarAttribute(enc *xml.Encoder, attrs []xml.Attr, text string) error {
	if err := enc.EncodeToken(xml.StartElement{Name: nameAttribute, Attr: attrs}); err != nil {
		return err
	}

	if text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}

	return enc.EncodeToken(xml.EndElement{Name: nameAttribute})
}

func writeTreeArrayAttribute(enc *xml.Encoder, attrs []xml.Attr, v value.Value) error {
	if err := enc.EncodeToken(xml.StartElement{Name: nameAttribute, Attr: attrs}); err != nil {
		return err
	}

	if err := writeTreeArrayElement(enc, v); err != nil {
		return err
	}

	return enc.EncodeToken(xml.EndElement{Name: nameAttribute})
}

func writeTreeArrayElement(enc *xml.Encoder, v value.Value) error {
	if _, elementType, text, ok := codedArrayPayload(v); ok {
		arrAttrs := []xml.Attr{{Name: xml.Name{Local: "code"}, Value: string(elementType)}}

		if err := enc.EncodeToken(xml.StartElement{Name: nameArray, Attr: arrAttrs}); err != nil {
			return err
		}

		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}

		return enc.EncodeToken(xml.EndElement{Name: nameArray})
	}

	if err := enc.EncodeToken(xml.StartElement{Name: nameArray}); err != nil {
		return err
	}

	for _, text := range plainArrayElements(v) {
		if err := writeC(enc, text); err != nil {
			return err
		}
	}

	return enc.EncodeToken(xml.EndElement{Name: nameArray})
}

func writeC(enc *xml.Encoder, text string) error {
	if err := enc.EncodeToken(xml.StartElement{Name: nameC}); err != nil {
		return err
	}

	if text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}

	return enc.EncodeToken(xml.EndElement{Name: nameC})
}

// plainArrayElements renders a non-coded array's elements as individual
// <c> texts.
func plainArrayElements(v value.Value) []string {
	switch v.Type() {
	case value.FloatingPointArray:
		xs := value.GetOr[[]float64](v, nil)
		out := make([]string, len(xs))

		for i, f := range xs {
			out[i] = value.FormatFloat(f)
		}

		return out
	case value.BooleanArray:
		xs := value.GetOr[[]bool](v, nil)
		out := make([]string, len(xs))

		for i, b := range xs {
			out[i] = strconv.FormatBool(b)
		}

		return out
	case value.IntegerArray:
		xs := value.GetOr[[]int64](v, nil)
		out := make([]string, len(xs))

		for i, n := range xs {
			out[i] = strconv.FormatInt(n, 10)
		}

		return out
	case value.EnumArray, value.StringArray:
		return value.GetOr[[]string](v, nil)
	default:
		return nil
	}
}

// codedArrayPayload returns the base64 payload for an array value carrying
// a non-[value.CodingNone] coding flag. Only FloatingPointArray and
// IntegerArray support coding.
func codedArrayPayload(v value.Value) (coded bool, elementType codec.ElementType, text string, ok bool) {
	if v.Coding() == value.CodingNone {
		return false, "", "", false
	}

	switch v.Type() {
	case value.FloatingPointArray:
		et := codec.FloatElementType(v.Coding() == value.CodingOptimized)

		b64, err := codec.EncodeArray(value.GetOr[[]float64](v, nil), et)
		if err != nil {
			return false, "", "", false
		}

		return true, et, b64, true
	case value.IntegerArray:
		b64, err := codec.EncodeIntArray(value.GetOr[[]int64](v, nil))
		if err != nil {
			return false, "", "", false
		}

		return true, codec.Int32, b64, true
	default:
		return false, "", "", false
	}
}

func writeTreeMatrixAttribute(enc *xml.Encoder, attrs []xml.Attr, v value.Value) error {
	if err := enc.EncodeToken(xml.StartElement{Name: nameAttribute, Attr: attrs}); err != nil {
		return err
	}

	if err := writeTreeMatrixElement(enc, v); err != nil {
		return err
	}

	return enc.EncodeToken(xml.EndElement{Name: nameAttribute})
}

func writeTreeMatrixElement(enc *xml.Encoder, v value.Value) error {
	if v.Type() == value.FloatingPointMatrix && v.Coding() != value.CodingNone {
		m := value.GetOr(v, value.Matrix[float64]{})
		rows, cols := m.Dims()
		et := codec.FloatElementType(v.Coding() == value.CodingOptimized)

		b64, err := codec.EncodeMatrix(m.Rows, et)
		if err != nil {
			return err
		}

		matAttrs := []xml.Attr{
			{Name: xml.Name{Local: "code"}, Value: string(et)},
			{Name: xml.Name{Local: "rows"}, Value: strconv.Itoa(rows)},
			{Name: xml.Name{Local: "columns"}, Value: strconv.Itoa(cols)},
		}

		if err := enc.EncodeToken(xml.StartElement{Name: nameMatrix, Attr: matAttrs}); err != nil {
			return err
		}

		if err := enc.EncodeToken(xml.CharData(b64)); err != nil {
			return err
		}

		return enc.EncodeToken(xml.EndElement{Name: nameMatrix})
	}

	if err := enc.EncodeToken(xml.StartElement{Name: nameMatrix}); err != nil {
		return err
	}

	for _, row := range plainMatrixRows(v) {
		if err := enc.EncodeToken(xml.StartElement{Name: nameR}); err != nil {
			return err
		}

		for _, text := range row {
			if err := writeC(enc, text); err != nil {
				return err
			}
		}

		if err := enc.EncodeToken(xml.EndElement{Name: nameR}); err != nil {
			return err
		}
	}

	return enc.EncodeToken(xml.EndElement{Name: nameMatrix})
}

func plainMatrixRows(v value.Value) [][]string {
	switch v.Type() {
	case value.FloatingPointMatrix:
		m := value.GetOr(v, value.Matrix[float64]{})
		out := make([][]string, len(m.Rows))

		for i, row := range m.Rows {
			r := make([]string, len(row))
			for j, f := range row {
				r[j] = value.FormatFloat(f)
			}

			out[i] = r
		}

		return out
	case value.BooleanMatrix:
		m := value.GetOr(v, value.Matrix[bool]{})
		out := make([][]string, len(m.Rows))

		for i, row := range m.Rows {
			r := make([]string, len(row))
			for j, b := range row {
				r[j] = strconv.FormatBool(b)
			}

			out[i] = r
		}

		return out
	case value.IntegerMatrix:
		m := value.GetOr(v, value.Matrix[int64]{})
		out := make([][]string, len(m.Rows))

		for i, row := range m.Rows {
			r := make([]string, len(row))
			for j, n := range row {
				r[j] = strconv.FormatInt(n, 10)
			}

			out[i] = r
		}

		return out
	case value.StringMatrix:
		m := value.GetOr(v, value.Matrix[string]{})
		out := make([][]string, len(m.Rows))
		copy(out, m.Rows)

		return out
	default:
		return nil
	}
}

func writeTreeArrayOfArraysAttribute(enc *xml.Encoder, attrs []xml.Attr, v value.Value) error {
	if err := enc.EncodeToken(xml.StartElement{Name: nameAttribute, Attr: attrs}); err != nil {
		return err
	}

	if err := enc.EncodeToken(xml.StartElement{Name: nameArrayOfArrays}); err != nil {
		return err
	}

	for _, row := range value.GetOr[[][]int64](v, nil) {
		if err := enc.EncodeToken(xml.StartElement{Name: nameArray}); err != nil {
			return err
		}

		for _, n := range row {
			if err := writeC(enc, strconv.FormatInt(n, 10)); err != nil {
				return err
			}
		}

		if err := enc.EncodeToken(xml.EndElement{Name: nameArray}); err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(xml.EndElement{Name: nameArrayOfArrays}); err != nil {
		return err
	}

	return enc.EncodeToken(xml.EndElement{Name: nameAttribute})
}

func writeTreeLoadSpectrum(enc *xml.Encoder, spectrum *model.LoadSpectrum, ids map[uint64]uint64) error {
	attrs := []xml.Attr{{Name: xml.Name{Local: "id"}, Value: "1"}}

	if err := enc.EncodeToken(xml.StartElement{Name: nameLoadSpectrum, Attr: attrs}); err != nil {
		return err
	}

	for i, lc := range spectrum.Cases {
		caseAttrs := []xml.Attr{{Name: xml.Name{Local: "id"}, Value: strconv.Itoa(i + 1)}}

		if err := enc.EncodeToken(xml.StartElement{Name: nameLoadCase, Attr: caseAttrs}); err != nil {
			return err
		}

		for _, lcomp := range lc.Components {
			if err := writeTreeLoadComponent(enc, lcomp, ids); err != nil {
				return err
			}
		}

		if err := enc.EncodeToken(xml.EndElement{Name: nameLoadCase}); err != nil {
			return err
		}
	}

	if spectrum.Accumulation != nil {
		if err := enc.EncodeToken(xml.StartElement{Name: nameAccumulation}); err != nil {
			return err
		}

		for _, lcomp := range spectrum.Accumulation.Components {
			if err := writeTreeLoadComponent(enc, lcomp, ids); err != nil {
				return err
			}
		}

		if err := enc.EncodeToken(xml.EndElement{Name: nameAccumulation}); err != nil {
			return err
		}
	}

	return enc.EncodeToken(xml.EndElement{Name: nameLoadSpectrum})
}

func writeTreeLoadComponent(enc *xml.Encoder, lc model.LoadComponent, ids map[uint64]uint64) error {
	attrs := []xml.Attr{{Name: xml.Name{Local: "id"}, Value: strconv.FormatUint(ids[lc.ComponentRef], 10)}}

	if err := enc.EncodeToken(xml.StartElement{Name: nameComponent, Attr: attrs}); err != nil {
		return err
	}

	for _, a := range lc.LoadAttributes {
		if err := writeTreeAttribute(enc, a, ids); err != nil {
			return err
		}
	}

	return enc.EncodeToken(xml.EndElement{Name: nameComponent})
}
