package synthesis

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/gateway"
)

// documentSchema is the contract for a synthesized document payload.
const documentSchema = `{
  "type": "object",
  "required": ["headline", "summary", "bullets"],
  "properties": {
    "headline": {"type": "string", "minLength": 1},
    "summary": {"type": "string", "minLength": 1},
    "bullets": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["experience_id", "text"],
        "properties": {
          "experience_id": {"type": "string", "minLength": 1},
          "text": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

// transposeSchema is the contract for a skill transposition payload. An empty
// array is a valid answer: nothing transposes honestly.
const transposeSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["term", "evidence"],
    "properties": {
      "term": {"type": "string", "minLength": 2},
      "evidence": {"type": "string", "minLength": 1}
    }
  }
}`

// validateAgainst builds a gateway validate hook for a schema literal.
func validateAgainst(schema string) func(string) error {
	loader := gojsonschema.NewStringLoader(schema)
	return func(raw string) error {
		result, err := gojsonschema.Validate(loader, gojsonschema.NewStringLoader(gateway.CleanJSONBlock(raw)))
		if err != nil {
			return fmt.Errorf("payload is not valid JSON: %w", err)
		}
		if !result.Valid() {
			first := result.Errors()[0]
			return fmt.Errorf("payload failed schema check: %s: %s", first.Field(), first.Description())
		}
		return nil
	}
}
