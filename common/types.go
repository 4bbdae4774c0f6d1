package common

// Type identifies the SQL type of a value flowing between plan operators.
// The optimizer core never interprets values; it only needs types for
// symbol bookkeeping and data-size estimation.
type Type int8

const (
	// For uninitialized or not-yet-analyzed expressions
	UnknownType Type = iota
	BooleanType
	BigintType
	DoubleType
	VarcharType
)

func (t Type) String() string {
	switch t {
	case BooleanType:
		return "boolean"
	case BigintType:
		return "bigint"
	case DoubleType:
		return "double"
	case VarcharType:
		return "varchar"
	}
	return "unknown"
}

// Width returns the estimated per-row width of the type in bytes, used by
// data-size estimation. Variable-length types use a fixed planning estimate.
func (t Type) Width() float64 {
	switch t {
	case BooleanType:
		return 1
	case BigintType, DoubleType:
		return 8
	case VarcharType:
		return 32
	}
	return 8
}

// ObjectID is a unique identifier for a table in the catalog.
type ObjectID uint32

const InvalidObjectID ObjectID = 0
