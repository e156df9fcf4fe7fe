package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const documentSchema = `{
  "type": "object",
  "required": ["version", "dashboard_uuid"],
  "properties": {
    "version": {"type": "string", "enum": ["1"]},
    "dashboard_uuid": {"type": "string", "minLength": 1},
    "tabs": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["uuid", "name"],
        "properties": {
          "uuid": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "order": {"type": "integer"}
        }
      }
    },
    "tiles": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["uuid"],
        "properties": {
          "uuid": {"type": "string", "minLength": 1},
          "x": {"type": "integer", "minimum": 0},
          "y": {"type": "integer", "minimum": 0},
          "w": {"type": "integer", "minimum": 0},
          "h": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

// DocumentValidator validates dashboard documents against the JSON schema.
type DocumentValidator struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

var defaultDocumentValidator = &DocumentValidator{}

// Validate ensures doc satisfies the document schema.
func (v *DocumentValidator) Validate(doc *DashboardDocument) error {
	schema, err := v.compiled()
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("dashboard: marshal document: %w", err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("dashboard: normalize document: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashboard: document failed validation: %w", err)
	}
	return nil
}

func (v *DocumentValidator) compiled() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		const name = "dashboard-document.json"
		if err := compiler.AddResource(name, bytes.NewReader([]byte(documentSchema))); err != nil {
			v.err = fmt.Errorf("dashboard: load document schema: %w", err)
			return
		}
		v.schema, v.err = compiler.Compile(name)
		if v.err != nil {
			v.err = fmt.Errorf("dashboard: compile document schema: %w", v.err)
		}
	})
	return v.schema, v.err
}
