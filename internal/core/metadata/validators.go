package metadata

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

var allowedDoctypes = []string{"html5", "html4", "xhtml"}

func checkPageDimensions(m map[string]any) error {
	_, hasWidth := m["page_width"]
	_, hasHeight := m["page_height"]
	if !hasWidth && !hasHeight {
		return nil
	}
	for _, name := range []string{"page_width", "page_height"} {
		if n, ok := asNumber(m[name]); !ok || n <= 0 {
			return fmt.Errorf("%s must be a positive number", name)
		}
	}
	return nil
}

func checkPDFA(m map[string]any) error {
	if compliant, _ := m["pdfa_compliant"].(bool); !compliant {
		return nil
	}
	if v, _ := m["pdfa_version"].(string); v == "" {
		return errors.New("pdfa_version is required when pdfa_compliant is true")
	}
	return nil
}

func checkJSONSchema(m map[string]any) error {
	declared, ok := m["schema_version"]
	if !ok || declared == nil || declared == "" {
		return nil
	}
	if def := m["schema_definition"]; !Mapping.Matches(def) || reflect.ValueOf(def).IsNil() {
		return errors.New("schema_definition mapping is required when schema_version is declared")
	}
	return nil
}

func checkHTMLDoctype(m map[string]any) error {
	if waived, _ := m["allow_missing_doctype"].(bool); !waived {
		if has, _ := m["has_doctype"].(bool); !has {
			return errors.New("DOCTYPE declaration is required")
		}
	}
	if raw, ok := m["doctype"]; ok {
		doctype, _ := raw.(string)
		if doctype != "" && !slices.Contains(allowedDoctypes, doctype) {
			return fmt.Errorf("doctype %q is not one of %v", doctype, allowedDoctypes)
		}
	}
	return nil
}

func checkCSVColumns(m map[string]any) error {
	header, _ := m["header_row"].(bool)
	if !header && reflectLen(m["column_names"]) == 0 {
		return errors.New("header_row or column_names is required")
	}
	if n, ok := asInt(m["column_count"]); !ok || n <= 0 {
		return errors.New("column_count must be positive")
	}
	return nil
}

func reflectLen(v any) int {
	if !List.Matches(v) {
		return 0
	}
	return reflect.ValueOf(v).Len()
}
