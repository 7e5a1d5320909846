package decode

import (
	"go.rexsapi.dev/rexsapi/codec"
	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/schema"
	"go.rexsapi.dev/rexsapi/value"
)

// TreeDecoder decodes an <attribute> element's payload against its
// declared [db.Attribute].
type TreeDecoder struct{}

// NewTreeDecoder returns a ready-to-use TreeDecoder.
func NewTreeDecoder() *TreeDecoder {
	return &TreeDecoder{}
}

// Decode reads n's payload as attr's declared value type.
func (d *TreeDecoder) Decode(n *schema.Node, attr db.Attribute) (value.Value, Result) {
	switch attr.ValueType {
	case value.FloatingPoint:
		return treeScalar(n, value.ParseFloat, value.Float)
	case value.Boolean:
		return treeScalar(n, value.ParseBool, value.Bool)
	case value.Integer:
		return treeScalar(n, value.ParseInt, value.Int)
	case value.Enum:
		return treeEnumScalar(n, attr)
	case value.String:
		return treeScalar(n, func(s string) (string, error) { return s, nil }, value.Str)
	case value.FileReference:
		return treeScalar(n, func(s string) (string, error) { return s, nil }, value.FileRef)
	case value.DateTime:
		return treeScalar(n, value.ParseTimestamp, value.Date)
	case value.ReferenceComponent:
		return treeScalar(n, value.ParseUint, value.Reference)
	case value.FloatingPointArray:
		return treeFloatArray(n)
	case value.IntegerArray:
		return treeIntArray(n)
	case value.BooleanArray:
		return treeSimpleArray(n, value.ParseBool, value.BoolArray)
	case value.EnumArray:
		return treeEnumArray(n, attr)
	case value.StringArray:
		return treeSimpleArray(n, func(s string) (string, error) { return s, nil }, value.StringArrayValue)
	case value.FloatingPointMatrix:
		return treeFloatMatrix(n)
	case value.IntegerMatrix:
		return treeIntMatrix(n)
	case value.BooleanMatrix:
		return treeSimpleMatrix(n, value.ParseBool, value.BoolMatrix)
	case value.StringMatrix:
		return treeSimpleMatrix(n, func(s string) (string, error) { return s, nil }, value.StringMatrixValue)
	case value.ArrayOfIntegerArrays:
		return treeArrayOfIntArrays(n)
	default:
		return value.Value{}, Failure
	}
}

func isEmptyNode(n *schema.Node) bool {
	return n.Text == "" && len(n.Children) == 0
}

// treeScalar decodes element text content via parse, failing WrongType if
// the node instead carries array/matrix children.
func treeScalar[T any](n *schema.Node, parse func(string) (T, error), construct func(T) value.Value) (value.Value, Result) {
	if isEmptyNode(n) {
		return value.Value{}, NoValue
	}

	if len(n.Children) > 0 {
		return value.Value{}, WrongType
	}

	v, err := parse(n.Text)
	if err != nil {
		return value.Value{}, Failure
	}

	return construct(v), Success
}

func treeEnumScalar(n *schema.Node, attr db.Attribute) (value.Value, Result) {
	if isEmptyNode(n) {
		return value.Value{}, NoValue
	}

	if len(n.Children) > 0 {
		return value.Value{}, WrongType
	}

	if attr.HasEnum() && !attr.Enum.Contains(n.Text) {
		return value.Value{}, Failure
	}

	return value.EnumValue(n.Text), Success
}

func treeArrayNode(n *schema.Node) (*schema.Node, bool) {
	children := n.ChildrenNamed("array")
	if len(children) == 0 {
		return nil, false
	}

	return children[0], true
}

func treeMatrixNode(n *schema.Node) (*schema.Node, bool) {
	children := n.ChildrenNamed("matrix")
	if len(children) == 0 {
		return nil, false
	}

	return children[0], true
}

func treeScalarChildren(arr *schema.Node) []string {
	cs := arr.ChildrenNamed("c")
	out := make([]string, len(cs))

	for i, c := range cs {
		out[i] = c.Text
	}

	return out
}

func treeFloatArray(n *schema.Node) (value.Value, Result) {
	arr, ok := treeArrayNode(n)
	if !ok {
		if isEmptyNode(n) {
			return value.Value{}, NoValue
		}

		return value.Value{}, WrongType
	}

	if code, coded := arr.Attr("code"); coded {
		xs, err := decodeCodedFloats(arr.Text, code, -1)
		if err != nil {
			return value.Value{}, Failure
		}

		return value.FloatArray(xs).WithCoding(codingOf(value.FloatingPointArray, code)), Success
	}

	var xs []float64

	for _, text := range treeScalarChildren(arr) {
		f, err := value.ParseFloat(text)
		if err != nil {
			return value.Value{}, Failure
		}

		xs = append(xs, f)
	}

	return value.FloatArray(xs), Success
}

func treeIntArray(n *schema.Node) (value.Value, Result) {
	arr, ok := treeArrayNode(n)
	if !ok {
		if isEmptyNode(n) {
			return value.Value{}, NoValue
		}

		return value.Value{}, WrongType
	}

	if _, coded := arr.Attr("code"); coded {
		xs, err := codec.DecodeIntArray(arr.Text, -1)
		if err != nil {
			return value.Value{}, Failure
		}

		return value.IntArray(xs).WithCoding(value.CodingDefault), Success
	}

	var xs []int64

	for _, text := range treeScalarChildren(arr) {
		v, err := value.ParseInt(text)
		if err != nil {
			return value.Value{}, Failure
		}

		xs = append(xs, v)
	}

	return value.IntArray(xs), Success
}

func treeSimpleArray[T any](n *schema.Node, parse func(string) (T, error), construct func([]T) value.Value) (value.Value, Result) {
	arr, ok := treeArrayNode(n)
	if !ok {
		if isEmptyNode(n) {
			return value.Value{}, NoValue
		}

		return value.Value{}, WrongType
	}

	var xs []T

	for _, text := range treeScalarChildren(arr) {
		v, err := parse(text)
		if err != nil {
			return value.Value{}, Failure
		}

		xs = append(xs, v)
	}

	return construct(xs), Success
}

func treeEnumArray(n *schema.Node, attr db.Attribute) (value.Value, Result) {
	arr, ok := treeArrayNode(n)
	if !ok {
		if isEmptyNode(n) {
			return value.Value{}, NoValue
		}

		return value.Value{}, WrongType
	}

	var xs []string

	for _, text := range treeScalarChildren(arr) {
		if attr.HasEnum() && !attr.Enum.Contains(text) {
			return value.Value{}, Failure
		}

		xs = append(xs, text)
	}

	return value.EnumArrayValue(xs), Success
}

func treeMatrixDims(m *schema.Node) (rows, cols int) {
	rowNodes := m.ChildrenNamed("r")
	rows = len(rowNodes)

	if rows > 0 {
		cols = len(rowNodes[0].ChildrenNamed("c"))
	}

	return rows, cols
}

func treeFloatMatrix(n *schema.Node) (value.Value, Result) {
	m, ok := treeMatrixNode(n)
	if !ok {
		if isEmptyNode(n) {
			return value.Value{}, NoValue
		}

		return value.Value{}, WrongType
	}

	if code, coded := m.Attr("code"); coded {
		rows, cols := intAttr(m, "rows"), intAttr(m, "columns")

		flat, err := decodeCodedFloats(m.Text, code, rows*cols)
		if err != nil {
			return value.Value{}, Failure
		}

		out := make([][]float64, rows)
		for r := range out {
			out[r] = flat[r*cols : (r+1)*cols]
		}

		v := value.FloatMatrix(value.NewMatrix(out))

		return v.WithCoding(codingOf(value.FloatingPointMatrix, code)), Success
	}

	var rows [][]float64

	for _, r := range m.ChildrenNamed("r") {
		var row []float64

		for _, text := range treeScalarChildren(r) {
			f, err := value.ParseFloat(text)
			if err != nil {
				return value.Value{}, Failure
			}

			row = append(row, f)
		}

		rows = append(rows, row)
	}

	mat := value.NewMatrix(rows)
	if !mat.Validate() {
		return value.Value{}, Failure
	}

	return value.FloatMatrix(mat), Success
}

func treeIntMatrix(n *schema.Node) (value.Value, Result) {
	m, ok := treeMatrixNode(n)
	if !ok {
		if isEmptyNode(n) {
			return value.Value{}, NoValue
		}

		return value.Value{}, WrongType
	}

	var rows [][]int64

	for _, r := range m.ChildrenNamed("r") {
		var row []int64

		for _, text := range treeScalarChildren(r) {
			v, err := value.ParseInt(text)
			if err != nil {
				return value.Value{}, Failure
			}

			row = append(row, v)
		}

		rows = append(rows, row)
	}

	mat := value.NewMatrix(rows)
	if !mat.Validate() {
		return value.Value{}, Failure
	}

	return value.IntMatrix(mat), Success
}

func treeSimpleMatrix[T any](n *schema.Node, parse func(string) (T, error), construct func(value.Matrix[T]) value.Value) (value.Value, Result) {
	m, ok := treeMatrixNode(n)
	if !ok {
		if isEmptyNode(n) {
			return value.Value{}, NoValue
		}

		return value.Value{}, WrongType
	}

	var rows [][]T

	for _, r := range m.ChildrenNamed("r") {
		var row []T

		for _, text := range treeScalarChildren(r) {
			v, err := parse(text)
			if err != nil {
				return value.Value{}, Failure
			}

			row = append(row, v)
		}

		rows = append(rows, row)
	}

	mat := value.NewMatrix(rows)
	if !mat.Validate() {
		return value.Value{}, Failure
	}

	return construct(mat), Success
}

func treeArrayOfIntArrays(n *schema.Node) (value.Value, Result) {
	children := n.ChildrenNamed("array_of_arrays")
	if len(children) == 0 {
		if isEmptyNode(n) {
			return value.Value{}, NoValue
		}

		return value.Value{}, WrongType
	}

	var rows [][]int64

	for _, arr := range children[0].ChildrenNamed("array") {
		var row []int64

		for _, text := range treeScalarChildren(arr) {
			v, err := value.ParseInt(text)
			if err != nil {
				return value.Value{}, Failure
			}

			row = append(row, v)
		}

		rows = append(rows, row)
	}

	return value.IntArrayArray(rows), Success
}

func intAttr(n *schema.Node, name string) int {
	s, ok := n.Attr(name)
	if !ok {
		return 0
	}

	i, err := value.ParseUint(s)
	if err != nil {
		return 0
	}

	return int(i)
}

func decodeCodedFloats(b64, code string, expectedCount int) ([]float64, error) {
	et, err := codec.ParseElementType(code)
	if err != nil {
		return nil, err
	}

	return codec.DecodeArray(b64, et, expectedCount)
}
