package value

import "fmt"

// Sum is a tagged-variant record: Name identifies the sum type, Tag
// selects which variant is active, and Fields carries that variant's
// payload.
type Sum struct {
	Name   string
	Tag    uint8
	Order  []string
	Fields map[string]Value
}

func NewSum(name string, tag uint8, order []string, fields map[string]Value) *Sum {
	fieldsCopy := make(map[string]Value, len(fields))
	for k, v := range fields {
		fieldsCopy[k] = v
	}
	return &Sum{Name: name, Tag: tag, Order: append([]string(nil), order...), Fields: fieldsCopy}
}

func (s *Sum) GetByName(name string) (Value, error) {
	v, ok := s.Fields[name]
	if !ok {
		return nil, fmt.Errorf("sum %q (tag %d) has no field %q", s.Name, s.Tag, name)
	}
	return v, nil
}

func (s *Sum) SetByName(name string, val Value) error {
	if _, ok := s.Fields[name]; !ok {
		return fmt.Errorf("sum %q (tag %d) has no field %q", s.Name, s.Tag, name)
	}
	s.Fields[name] = val
	return nil
}

func (s *Sum) Clone() *Sum {
	fields := make(map[string]Value, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = Clone(v)
	}
	return &Sum{Name: s.Name, Tag: s.Tag, Order: append([]string(nil), s.Order...), Fields: fields}
}

func (s *Sum) String() string {
	str := fmt.Sprintf("%s(", s.Name)
	for i, name := range s.Order {
		if i > 0 {
			str += ", "
		}
		str += fmt.Sprintf("%s: %v", name, s.Fields[name])
	}
	return str + ")"
}
