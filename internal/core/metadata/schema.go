package metadata

import (
	"math"
	"reflect"
)

// Common fields every validated metadata map carries.
const (
	FieldSource       = "source"
	FieldTimestamp    = "timestamp"
	FieldVersion      = "version"
	FieldDocumentType = "document_type"
)

const DefaultVersion = "1.0.0"

var commonFields = []Field{
	{Name: FieldSource, Type: String},
	{Name: FieldTimestamp, Type: String},
	{Name: FieldVersion, Type: String},
	{Name: FieldDocumentType, Type: String},
}

// FieldType is the semantic type a metadata value must conform to.
type FieldType int

const (
	String FieldType = iota
	Int
	Number
	Bool
	List
	Mapping
)

func (t FieldType) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case List:
		return "list"
	case Mapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Zero is the value injected for an absent optional field.
func (t FieldType) Zero() any {
	switch t {
	case String:
		return ""
	case Int:
		return 0
	case Number:
		return 0.0
	case Bool:
		return false
	case List:
		return []any{}
	case Mapping:
		return map[string]any{}
	default:
		return nil
	}
}

// Matches reports whether v conforms to t. Integral float64 values count
// as Int since decoded JSON carries every number as float64.
func (t FieldType) Matches(v any) bool {
	switch t {
	case String:
		_, ok := v.(string)
		return ok
	case Int:
		_, ok := asInt(v)
		return ok
	case Number:
		_, ok := asNumber(v)
		return ok
	case Bool:
		_, ok := v.(bool)
		return ok
	case List:
		if v == nil {
			return false
		}
		k := reflect.TypeOf(v).Kind()
		return k == reflect.Slice || k == reflect.Array
	case Mapping:
		if v == nil {
			return false
		}
		rt := reflect.TypeOf(v)
		return rt.Kind() == reflect.Map && rt.Key().Kind() == reflect.String
	default:
		return false
	}
}

type Field struct {
	Name string
	Type FieldType
}

// Check is a named structural rule over a metadata map.
type Check struct {
	Name string
	Fn   func(metadata map[string]any) error
}

// Schema is the field contract of one document type.
type Schema struct {
	Required []Field
	Optional []Field
	Checks   []Check
}

var schemas = map[string]Schema{
	TypePDF: {
		Required: []Field{{"page_count", Int}},
		Optional: []Field{
			{"pdf_version", String},
			{"page_width", Number},
			{"page_height", Number},
			{"pdfa_compliant", Bool},
			{"pdfa_version", String},
			{"author", String},
			{"title", String},
		},
		Checks: []Check{
			{"pdf_page_dimensions", checkPageDimensions},
			{"pdfa_compliance", checkPDFA},
		},
	},
	TypeText: {
		Optional: []Field{
			{"encoding", String},
			{"line_count", Int},
			{"word_count", Int},
			{"language", String},
		},
	},
	TypeJSON: {
		Optional: []Field{
			{"schema_version", String},
			{"schema_definition", Mapping},
			{"root_element_count", Int},
		},
		Checks: []Check{
			{"json_schema", checkJSONSchema},
		},
	},
	TypeWord: {
		Optional: []Field{
			{"author", String},
			{"title", String},
			{"page_count", Int},
			{"word_count", Int},
		},
	},
	TypeHTML: {
		Optional: []Field{
			{"html_version", String},
			{"has_doctype", Bool},
			{"doctype", String},
			{"allow_missing_doctype", Bool},
			{"css_count", Int},
			{"js_count", Int},
			{"title", String},
		},
		Checks: []Check{
			{"html_doctype", checkHTMLDoctype},
		},
	},
	TypeCSV: {
		Required: []Field{{"column_count", Int}},
		Optional: []Field{
			{"header_row", Bool},
			{"column_names", List},
			{"delimiter", String},
			{"row_count", Int},
			{"has_quotes", Bool},
		},
		Checks: []Check{
			{"csv_columns", checkCSVColumns},
		},
	},
	TypeUnknown: {},
}

// SchemaFor returns the schema registered for a document type.
func SchemaFor(documentType string) (Schema, bool) {
	s, ok := schemas[documentType]
	return s, ok
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		f := float64(n)
		return int64(f), f == math.Trunc(f)
	case float64:
		return int64(n), n == math.Trunc(n) && !math.IsInf(n, 0)
	default:
		return 0, false
	}
}

func asNumber(v any) (float64, bool) {
	if i, ok := asInt(v); ok {
		if f, isFloat := v.(float64); isFloat {
			return f, true
		}
		return float64(i), true
	}
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, !math.IsNaN(n)
	default:
		return 0, false
	}
}
