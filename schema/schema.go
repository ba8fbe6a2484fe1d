// Package schema models the vendor's machine-readable API description: one
// JSON document per stage (runtime and prototype) plus the shared structural
// type grammar used in signatures and field types.
package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/docdex"
)

// RuntimeDoc is the runtime-stage API description: the control-flow API
// callable while a simulation is live.
type RuntimeDoc struct {
	Application string `json:"application"`
	Stage       string `json:"stage"`
	AppVersion  string `json:"application_version"`

	Classes         []*Class        `json:"classes"`
	Events          []*Event        `json:"events"`
	Concepts        []*Concept      `json:"concepts"`
	Defines         []*Define       `json:"defines"`
	GlobalFunctions []*Method       `json:"global_functions"`
	GlobalObjects   []*GlobalObject `json:"global_objects"`
}

// PrototypeDoc is the prototype-stage API description: the declarative
// data-definition API.
type PrototypeDoc struct {
	Application string `json:"application"`
	Stage       string `json:"stage"`
	AppVersion  string `json:"application_version"`

	Prototypes []*Prototype   `json:"prototypes"`
	Types      []*TypeConcept `json:"types"`
	Defines    []*Define      `json:"defines"`
}

// Class is a runtime class with methods and attributes.
type Class struct {
	Name        string       `json:"name"`
	Order       int          `json:"order"`
	Description string       `json:"description"`
	Parent      string       `json:"parent,omitempty"`
	Abstract    bool         `json:"abstract,omitempty"`
	Methods     []*Method    `json:"methods"`
	Attributes  []*Attribute `json:"attributes"`
}

// Method is a callable member: a class method or a global function.
type Method struct {
	Name          string         `json:"name"`
	Order         int            `json:"order"`
	Description   string         `json:"description"`
	TakesTable    bool           `json:"takes_table"`
	TableOptional bool           `json:"table_is_optional"`
	Parameters    []*Parameter   `json:"parameters"`
	ReturnValues  []*ReturnValue `json:"return_values"`
}

// ReturnValue is one value returned by a method.
type ReturnValue struct {
	Order       int    `json:"order"`
	Description string `json:"description"`
	Type        *Type  `json:"type"`
	Optional    bool   `json:"optional"`
}

// Attribute is a readable and/or writable class member.
type Attribute struct {
	Name        string `json:"name"`
	Order       int    `json:"order"`
	Description string `json:"description"`
	Type        *Type  `json:"type"`
	Optional    bool   `json:"optional"`
	Read        bool   `json:"read"`
	Write       bool   `json:"write"`
}

// Parameter is a named, typed value: a method parameter, an event field, or
// an inline record field.
type Parameter struct {
	Name        string `json:"name"`
	Order       int    `json:"order"`
	Description string `json:"description"`
	Type        *Type  `json:"type"`
	Optional    bool   `json:"optional"`
}

// Event is a runtime event with its payload fields.
type Event struct {
	Name        string       `json:"name"`
	Order       int          `json:"order"`
	Description string       `json:"description"`
	Data        []*Parameter `json:"data"`
}

// Concept is a named runtime type concept.
type Concept struct {
	Name        string `json:"name"`
	Order       int    `json:"order"`
	Description string `json:"description"`
	Type        *Type  `json:"type,omitempty"`
}

// Define is a group of named constant values, possibly nested.
type Define struct {
	Name        string         `json:"name"`
	Order       int            `json:"order"`
	Description string         `json:"description"`
	Values      []*DefineValue `json:"values"`
	Subkeys     []*Define      `json:"subkeys"`
}

// DefineValue is one constant within a define group.
type DefineValue struct {
	Name        string `json:"name"`
	Order       int    `json:"order"`
	Description string `json:"description"`
}

// GlobalObject is a named top-level runtime object.
type GlobalObject struct {
	Name        string `json:"name"`
	Order       int    `json:"order"`
	Description string `json:"description"`
	Type        *Type  `json:"type"`
}

// Prototype is a prototype-stage definition with properties.
type Prototype struct {
	Name        string      `json:"name"`
	Order       int         `json:"order"`
	Description string      `json:"description"`
	Parent      string      `json:"parent,omitempty"`
	Abstract    bool        `json:"abstract,omitempty"`
	Typename    string      `json:"typename,omitempty"`
	Properties  []*Property `json:"properties"`
}

// Property is one field of a prototype.
type Property struct {
	Name        string        `json:"name"`
	Order       int           `json:"order"`
	Description string        `json:"description"`
	Type        *Type         `json:"type"`
	Optional    bool          `json:"optional"`
	Default     *DefaultValue `json:"default,omitempty"`
}

// TypeConcept is a named prototype-stage type.
type TypeConcept struct {
	Name        string      `json:"name"`
	Order       int         `json:"order"`
	Description string      `json:"description"`
	Type        *Type       `json:"type,omitempty"`
	Properties  []*Property `json:"properties,omitempty"`
}

// DefaultValue is a property default, supplied by the vendor either as prose
// or as a literal value.
type DefaultValue struct {
	Text string
}

// UnmarshalJSON accepts either a plain string or a {"value": ...} literal.
func (d *DefaultValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.Text = s
		return nil
	}
	var lit struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &lit); err != nil {
		return fmt.Errorf("default value: %w", err)
	}
	d.Text = renderLiteral(lit.Value)
	return nil
}

// LoadRuntime reads and decodes a runtime-stage document. A missing path
// returns (nil, nil): the stage is simply absent.
func LoadRuntime(path string) (*RuntimeDoc, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read runtime document %s: %w", path, err)
	}
	var doc RuntimeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "decode runtime document %s: %v", path, err)
	}
	return &doc, nil
}

// LoadPrototype reads and decodes a prototype-stage document. A missing path
// returns (nil, nil).
func LoadPrototype(path string) (*PrototypeDoc, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prototype document %s: %w", path, err)
	}
	var doc PrototypeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "decode prototype document %s: %v", path, err)
	}
	return &doc, nil
}
