// internal/wizard/schema/documents.go
package schema

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"

	"social-support-portal/internal/models"
)

// documentsSchema constrains uploaded file descriptors: 5MB per file,
// document MIME types only, and at least one file in each mandatory slot.
const documentsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "definitions": {
    "file": {
      "type": "object",
      "required": ["name", "size", "type"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "size": {"type": "integer", "minimum": 1, "maximum": 5242880},
        "type": {
          "type": "string",
          "enum": ["application/pdf", "image/jpeg", "image/jpg", "image/png"]
        },
        "url": {"type": "string"}
      }
    },
    "fileList": {
      "type": "array",
      "items": {"$ref": "#/definitions/file"}
    },
    "requiredFileList": {
      "type": "array",
      "minItems": 1,
      "items": {"$ref": "#/definitions/file"}
    }
  },
  "required": ["nationalId", "proofOfAddress"],
  "properties": {
    "nationalId": {"$ref": "#/definitions/requiredFileList"},
    "proofOfAddress": {"$ref": "#/definitions/requiredFileList"},
    "incomeProof": {"$ref": "#/definitions/fileList"},
    "additionalDocuments": {"$ref": "#/definitions/fileList"}
  }
}`

var documentsSchemaLoader = gojsonschema.NewStringLoader(documentsSchema)

func validateDocuments(d *models.DocumentsSection) []ValidationError {
	errs := []ValidationError{}

	// Normalize nil slices so empty slots hit minItems instead of a type error.
	normalized := *d
	if normalized.NationalID == nil {
		normalized.NationalID = []models.UploadedFile{}
	}
	if normalized.ProofOfAddress == nil {
		normalized.ProofOfAddress = []models.UploadedFile{}
	}

	payload, err := json.Marshal(&normalized)
	if err != nil {
		return []ValidationError{{
			Field:   "documents",
			Code:    "INVALID_TYPE",
			Message: "Documents section could not be encoded",
		}}
	}

	result, err := gojsonschema.Validate(documentsSchemaLoader, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return []ValidationError{{
			Field:   "documents",
			Code:    "INVALID_TYPE",
			Message: "Documents section could not be validated",
		}}
	}

	for _, schemaErr := range result.Errors() {
		field := "documents"
		if f := schemaErr.Field(); f != "(root)" {
			field = "documents." + f
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Code:    "INVALID_VALUE",
			Message: schemaErr.Description(),
		})
	}

	return errs
}
