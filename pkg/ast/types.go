package ast

// DataType is the scalar type tag attached to literals, operators and variables.
type DataType int

const (
	Undefined DataType = iota
	Bool
	I8
	I16
	I32
	I64
	I128
	F32
	F64
)

var dataTypeNames = [...]string{
	Undefined: "undefined",
	Bool:      "bool",
	I8:        "i8",
	I16:       "i16",
	I32:       "i32",
	I64:       "i64",
	I128:      "i128",
	F32:       "f32",
	F64:       "f64",
}

func (t DataType) String() string {
	if t < 0 || int(t) >= len(dataTypeNames) {
		return "undefined"
	}
	return dataTypeNames[t]
}

// ParseDataType maps a declared type name to its tag. Unknown names yield Undefined.
func ParseDataType(name string) DataType {
	switch name {
	case "bool", "i1":
		return Bool
	case "i8":
		return I8
	case "i16":
		return I16
	case "i32":
		return I32
	case "i64":
		return I64
	case "i128":
		return I128
	case "f32":
		return F32
	case "f64":
		return F64
	}
	return Undefined
}

func (t DataType) IsInteger() bool { return t >= Bool && t <= I128 }
func (t DataType) IsFloat() bool   { return t == F32 || t == F64 }

// Promote returns the wider of two types. Any undefined side makes the result undefined.
func Promote(a, b DataType) DataType {
	if a == Undefined || b == Undefined {
		return Undefined
	}
	if a > b {
		return a
	}
	return b
}
