package keywords

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/gateway"
)

// extractionSchema is the contract every model-produced keyword payload must
// satisfy before it is accepted as a result.
const extractionSchema = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["term", "category"],
    "properties": {
      "term": {"type": "string", "minLength": 2},
      "category": {"type": "string", "enum": ["hard_skill", "tool", "soft_skill", "domain_term"]}
    },
    "additionalProperties": false
  }
}`

// validateExtraction is the gateway validate hook: schema-invalid output is a
// provider failure, and the chain moves on.
func validateExtraction(raw string) error {
	document := gojsonschema.NewStringLoader(gateway.CleanJSONBlock(raw))
	schema := gojsonschema.NewStringLoader(extractionSchema)

	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return fmt.Errorf("keyword payload is not valid JSON: %w", err)
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return fmt.Errorf("keyword payload failed schema check: %s: %s", first.Field(), first.Description())
	}
	return nil
}
