package hermes

//Type tags a value's declared runtime type. Sources declare their type
//through BlankValue before any data is read, the engine resolves its own
//output type from those declarations.
type Type string

const (
	//NullType is the designated null marker, a source declaring it never
	//carries real values.
	NullType   Type = "null"
	StringType Type = "string"
	BytesType  Type = "bytes"
	//TupleType is the composed output of an inner or outer join.
	TupleType Type = "tuple"
)

type Value interface {
	Type() Type
	String() string
}

type nullValue struct{}

func (nullValue) Type() Type     { return NullType }
func (nullValue) String() string { return "" }

//Null is the canonical null marker value.
var Null Value = nullValue{}

type String string

func (s String) Type() Type     { return StringType }
func (s String) String() string { return string(s) }

type Bytes []byte

func (b Bytes) Type() Type     { return BytesType }
func (b Bytes) String() string { return string(b) }
