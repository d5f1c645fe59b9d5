package llm

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const extractionSchema = `{
  "type": "object",
  "required": ["personalInfo"],
  "properties": {
    "personalInfo": {
      "type": "object",
      "properties": {
        "name": {"$ref": "#/definitions/text"},
        "email": {"$ref": "#/definitions/text"},
        "phone": {"$ref": "#/definitions/text"},
        "location": {"$ref": "#/definitions/text"},
        "linkedin": {"$ref": "#/definitions/text"},
        "github": {"$ref": "#/definitions/text"}
      }
    },
    "summary": {"$ref": "#/definitions/text"},
    "skills": {
      "type": "object",
      "properties": {
        "technical": {"$ref": "#/definitions/strings"},
        "soft": {"$ref": "#/definitions/strings"},
        "tools": {"$ref": "#/definitions/strings"},
        "languages": {"$ref": "#/definitions/strings"},
        "frameworks": {"$ref": "#/definitions/strings"}
      }
    },
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title": {"$ref": "#/definitions/text"},
          "company": {"$ref": "#/definitions/text"},
          "duration": {"$ref": "#/definitions/text"},
          "description": {"$ref": "#/definitions/text"},
          "responsibilities": {"$ref": "#/definitions/strings"}
        }
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "degree": {"$ref": "#/definitions/text"},
          "institution": {"$ref": "#/definitions/text"},
          "year": {"type": ["string", "number", "null"]},
          "gpa": {"type": ["string", "number", "null"]},
          "details": {"$ref": "#/definitions/text"}
        }
      }
    },
    "certifications": {"$ref": "#/definitions/strings"},
    "achievements": {"$ref": "#/definitions/strings"},
    "projects": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"$ref": "#/definitions/text"},
          "description": {"$ref": "#/definitions/text"},
          "technologies": {"$ref": "#/definitions/strings"}
        }
      }
    }
  },
  "definitions": {
    "text": {"type": ["string", "null"]},
    "strings": {"type": "array", "items": {"type": "string"}}
  }
}`

var extractionSchemaLoader = gojsonschema.NewStringLoader(extractionSchema)

// validateExtraction checks a model reply against the extraction schema.
func validateExtraction(doc string) error {
	result, err := gojsonschema.Validate(extractionSchemaLoader, gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("schema load: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		msgs = append(msgs, field+": "+desc.Description())
	}
	return fmt.Errorf("schema: %s", strings.Join(msgs, "; "))
}
