package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	datePattern    = `^(\d{4}|\d{4}-(0[1-9]|1[0-2])|present|Present)$`
	schemaResource = "resume.schema.json"
)

// JSONSchema returns the JSON Schema of the resume tree
func JSONSchema() map[string]any {
	str := map[string]any{"type": "string"}
	date := map[string]any{"type": "string", "pattern": datePattern}
	strList := map[string]any{"type": "array", "items": str}

	object := func(props map[string]any) map[string]any {
		return map[string]any{
			"type":                 "object",
			"properties":           props,
			"additionalProperties": false,
		}
	}
	list := func(props map[string]any) map[string]any {
		return map[string]any{"type": "array", "items": object(props)}
	}

	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"title":   "Resume",
		"type":    "object",
		"required": []any{
			KeyContact, KeyEducation, KeyWorkExperience, KeySkills, KeyCertifications,
			KeyProjects, KeyPublications, KeyLanguages, KeyOtherSections, KeyMeta,
		},
		"additionalProperties": false,
		"properties": map[string]any{
			KeyContact: object(map[string]any{
				"name": str, "email": str, "phone": str, "website": str, "location": str, "raw": str,
			}),
			KeyEducation: list(map[string]any{
				"institution": str, "degree": str, "field_of_study": str,
				"start_date": date, "end_date": date, "grade": str, "location": str,
			}),
			KeyWorkExperience: list(map[string]any{
				"company": str, "position": str, "start_date": date, "end_date": date,
				"duration_months": map[string]any{"type": "integer", "minimum": 0},
				"location": str, "description": strList,
			}),
			KeySkills: list(map[string]any{
				"name": str, "category": str, "proficiency": str,
			}),
			KeyCertifications: list(map[string]any{
				"name": str, "issuer": str, "date": date,
			}),
			KeyProjects: list(map[string]any{
				"name": str, "role": str, "start_date": date, "end_date": date,
				"description": str, "technologies": strList,
			}),
			KeyPublications: list(map[string]any{
				"title": str, "venue": str, "date": date, "description": str,
			}),
			KeyLanguages: list(map[string]any{
				"name": str, "proficiency": str,
			}),
			KeyOtherSections: list(map[string]any{
				"label": str, "content": str,
			}),
			KeyMeta: object(map[string]any{
				"source": str, "notes": str,
			}),
		},
	}
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		b, err := json.Marshal(JSONSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaResource, bytes.NewReader(b)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(schemaResource)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// ValidateJSON checks a JSON document against the resume schema
func ValidateJSON(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ValidateTree checks a resume tree against the schema
func ValidateTree(tree map[string]any) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("marshal tree: %w", err)
	}
	return ValidateJSON(data)
}
