package metadata

import (
	"fmt"
	"time"

	"github.com/mohae/deepcopy"

	"github.com/markdave123-py/Chunkwise/internal/core"
)

// Validator enriches chunk metadata and checks it against the schema of
// its document type. It holds no per-call state and is safe to share.
type Validator struct {
	now func() time.Time
}

func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// NewValidatorWithClock is used where timestamps must be deterministic.
func NewValidatorWithClock(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// Validate returns an enriched copy of metadata. When the copy violates its
// schema the error is a *core.ValidationError and the returned map still
// carries every injected default.
func (v *Validator) Validate(metadata map[string]any) (map[string]any, error) {
	out := copyMetadata(metadata)

	if _, ok := out[FieldVersion]; !ok {
		out[FieldVersion] = DefaultVersion
	}
	if _, ok := out[FieldTimestamp]; !ok {
		out[FieldTimestamp] = v.now().UTC().Format(time.RFC3339)
	}
	if source, ok := out[FieldSource]; ok {
		name, _ := source.(string)
		out[FieldDocumentType] = TypeForSource(name)
	} else if _, ok := out[FieldDocumentType]; !ok {
		out[FieldDocumentType] = TypeUnknown
	}

	verr := &core.ValidationError{}
	if dt, ok := out[FieldDocumentType].(string); ok {
		verr.DocumentType = dt
	}
	for _, f := range commonFields {
		checkField(verr, out, f, f.Name)
	}

	if schema, ok := SchemaFor(verr.DocumentType); ok {
		applySchema(verr, out, verr.DocumentType, schema)
	}

	if verr.HasViolations() {
		return out, verr
	}
	return out, nil
}

func applySchema(verr *core.ValidationError, m map[string]any, docType string, s Schema) {
	for _, f := range s.Required {
		checkField(verr, m, f, docType+"."+f.Name)
	}
	for _, f := range s.Optional {
		if val, ok := m[f.Name]; ok && !f.Type.Matches(val) {
			verr.InvalidTypes = append(verr.InvalidTypes, invalidType(docType+"."+f.Name, f.Type))
		}
	}
	for _, c := range s.Checks {
		if err := c.Fn(m); err != nil {
			verr.Failed = append(verr.Failed, fmt.Sprintf("%s: %v", c.Name, err))
		}
	}
	for _, f := range s.Optional {
		if _, ok := m[f.Name]; !ok {
			m[f.Name] = f.Type.Zero()
		}
	}
}

func checkField(verr *core.ValidationError, m map[string]any, f Field, label string) {
	val, ok := m[f.Name]
	switch {
	case !ok:
		verr.Missing = append(verr.Missing, label)
	case !f.Type.Matches(val):
		verr.InvalidTypes = append(verr.InvalidTypes, invalidType(label, f.Type))
	}
}

func invalidType(label string, t FieldType) string {
	return fmt.Sprintf("%s (expected %s)", label, t)
}

func copyMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return make(map[string]any)
	}
	out, ok := deepcopy.Copy(metadata).(map[string]any)
	if !ok || out == nil {
		return make(map[string]any)
	}
	return out
}
