package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// MarshalJSON encodes the node as plain JSON, keeping object field order.
func (y *Node) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, y); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes plain JSON, keeping object field order.
func (y *Node) UnmarshalJSON(d []byte) error {
	n, err := Parse(d)
	if err != nil {
		return err
	}
	*y = *n
	return nil
}

func ToJSON(y *Node) ([]byte, error) {
	return y.MarshalJSON()
}

// MustJSON is ToJSON for use in tests and debug output.
func MustJSON(y *Node) string {
	d, err := y.MarshalJSON()
	if err != nil {
		panic(err)
	}
	return string(d)
}

func writeJSON(buf *bytes.Buffer, y *Node) error {
	if y == nil {
		buf.WriteString("null")
		return nil
	}
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(y.Bool))
	case StringType:
		d, err := json.Marshal(y.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case NumberType:
		switch {
		case y.Int64 != nil:
			buf.WriteString(strconv.FormatInt(*y.Int64, 10))
		case y.Float64 != nil:
			f := *y.Float64
			if math.IsInf(f, 0) || math.IsNaN(f) {
				return fmt.Errorf("cannot encode %v as json", f)
			}
			buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		case y.Number != "":
			buf.WriteString(y.Number)
		default:
			buf.WriteByte('0')
		}
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i, f := range y.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(f)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := writeJSON(buf, y.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode type %s as json", y.Type)
	}
	return nil
}
