package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TypeKind discriminates the structural type grammar. The grammar is closed:
// Render matches every kind exhaustively, so each structural shape has exactly
// one deterministic text form.
type TypeKind string

// Structural type kinds.
const (
	KindNamed       TypeKind = "named"
	KindArray       TypeKind = "array"
	KindDictionary  TypeKind = "dictionary"
	KindTuple       TypeKind = "tuple"
	KindUnion       TypeKind = "union"
	KindLiteral     TypeKind = "literal"
	KindTable       TypeKind = "table"
	KindFunction    TypeKind = "function"
	KindStruct      TypeKind = "struct"
	KindLazy        TypeKind = "lazy"
	KindCustomTable TypeKind = "custom_table"
)

// complexKinds maps the vendor's complex_type discriminator values onto the
// grammar. The vendor names the two nominal wrappers after its scripting
// runtime; both spellings are accepted.
var complexKinds = map[string]TypeKind{
	"array":              KindArray,
	"dictionary":         KindDictionary,
	"tuple":              KindTuple,
	"union":              KindUnion,
	"literal":            KindLiteral,
	"table":              KindTable,
	"function":           KindFunction,
	"struct":             KindStruct,
	"lazy":               KindLazy,
	"LuaLazyLoadedValue": KindLazy,
	"custom_table":       KindCustomTable,
	"LuaCustomTable":     KindCustomTable,
}

// Type is one node of the structural type grammar. Exactly the fields
// meaningful for Kind are populated.
type Type struct {
	Kind TypeKind

	Name         string          // named
	Elem         *Type           // array element, lazy/custom-table value
	Key          *Type           // dictionary/custom-table key
	Options      []*Type         // union alternatives
	Values       []*Type         // tuple elements
	Literal      json.RawMessage // literal value, kept verbatim
	Parameters   []*Parameter    // table fields, function parameters
	ReturnValues []*Type         // function returns
}

// typeJSON mirrors the vendor's complex-type object shape.
type typeJSON struct {
	ComplexType  string          `json:"complex_type"`
	Value        json.RawMessage `json:"value"`
	Key          *Type           `json:"key"`
	Options      []*Type         `json:"options"`
	Values       []*Type         `json:"values"`
	Parameters   []*Parameter    `json:"parameters"`
	ReturnValues []*Type         `json:"return_values"`
}

// UnmarshalJSON decodes either a bare type-name string or a complex-type
// object discriminated by "complex_type".
func (t *Type) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		t.Kind = KindNamed
		t.Name = name
		return nil
	}

	var raw typeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("structural type: %w", err)
	}

	// The "type" wrapper only attaches a description; unwrap to the inner
	// type so rendering sees the real shape.
	if raw.ComplexType == "type" {
		if raw.Value == nil {
			return fmt.Errorf("structural type: %q wrapper without value", raw.ComplexType)
		}
		return t.UnmarshalJSON(raw.Value)
	}

	kind, ok := complexKinds[raw.ComplexType]
	if !ok {
		return fmt.Errorf("structural type: unknown complex_type %q", raw.ComplexType)
	}

	t.Kind = kind
	t.Key = raw.Key
	t.Options = raw.Options
	t.Values = raw.Values
	t.Parameters = raw.Parameters
	t.ReturnValues = raw.ReturnValues

	switch kind {
	case KindLiteral:
		t.Literal = raw.Value
	default:
		if raw.Value != nil {
			var elem Type
			if err := json.Unmarshal(raw.Value, &elem); err != nil {
				return fmt.Errorf("structural type value: %w", err)
			}
			t.Elem = &elem
		}
	}
	return nil
}

// Render converts the structural type to its canonical text form. The switch
// is exhaustive over the grammar, so every shape the decoder can produce has
// a rendering. A nil type renders as "unknown".
func (t *Type) Render() string {
	if t == nil {
		return "unknown"
	}
	switch t.Kind {
	case KindNamed:
		return t.Name
	case KindArray:
		return "array[" + t.Elem.Render() + "]"
	case KindDictionary:
		return "dict[" + t.Key.Render() + ", " + t.Elem.Render() + "]"
	case KindCustomTable:
		return "custom_dict[" + t.Key.Render() + ", " + t.Elem.Render() + "]"
	case KindLazy:
		return "lazy[" + t.Elem.Render() + "]"
	case KindTuple:
		return "tuple[" + renderList(t.Values) + "]"
	case KindUnion:
		parts := make([]string, len(t.Options))
		for i, o := range t.Options {
			parts[i] = o.Render()
		}
		return strings.Join(parts, " | ")
	case KindLiteral:
		return renderLiteral(t.Literal)
	case KindTable:
		parts := make([]string, len(t.Parameters))
		for i, p := range t.Parameters {
			name := p.Name
			if p.Optional {
				name += "?"
			}
			parts[i] = name + ": " + p.Type.Render()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindFunction:
		parts := make([]string, len(t.Parameters))
		for i, p := range t.Parameters {
			parts[i] = p.Type.Render()
		}
		s := "function(" + strings.Join(parts, ", ") + ")"
		if len(t.ReturnValues) > 0 {
			s += " -> " + renderList(t.ReturnValues)
		}
		return s
	case KindStruct:
		return "struct"
	default:
		return "unknown"
	}
}

func renderList(types []*Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.Render()
	}
	return strings.Join(parts, ", ")
}

// renderLiteral renders a literal value verbatim from its JSON encoding, so
// strings keep their quotes and numbers and booleans print as written.
func renderLiteral(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "unknown"
	}
	return s
}
