package ir

type Type int

const (
	ObjectType Type = iota
	ArrayType
	ValueType
)

func Types() []Type {
	return []Type{ObjectType, ArrayType, ValueType}
}

func (t Type) String() string {
	switch t {
	case ObjectType:
		return "object"
	case ArrayType:
		return "array"
	case ValueType:
		return "value"
	default:
		return "unknown"
	}
}
