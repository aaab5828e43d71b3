package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"nextchapter/internal/errors"
	"nextchapter/internal/types"
)

// profileSchema describes the employment profile document accepted from
// profile files. Shapes match the gateway's profile endpoint.
const profileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "careerObjective": {"type": "string"},
    "workHistory": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "jobTitle": {"type": "string"},
          "company": {"type": "string"},
          "startDate": {"type": "string"},
          "endDate": {"type": "string"},
          "location": {"type": "string"},
          "description": {"type": "string"}
        },
        "additionalProperties": false
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "school": {"type": "string"},
          "degree": {"type": "string"},
          "startDate": {"type": "string"},
          "endDate": {"type": "string"},
          "location": {"type": "string"}
        },
        "additionalProperties": false
      }
    },
    "skills": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "category": {"type": "string"},
          "skillList": {"type": "array", "items": {"type": "string"}}
        },
        "additionalProperties": false
      }
    },
    "certifications": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "issuer": {"type": "string"},
          "date": {"type": "string"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

var compiledProfileSchema = func() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(profileSchema))
	if err != nil {
		panic(fmt.Sprintf("profile schema does not compile: %v", err))
	}
	return schema
}()

// ParseProfile validates raw profile JSON against the profile schema and
// decodes it. Validation failures list every offending field in one error.
func ParseProfile(raw []byte) (*types.EmploymentProfile, error) {
	result, err := compiledProfileSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidProfile,
			"Profile is not valid JSON", err)
	}

	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, errors.NewValidationError(errors.ErrCodeInvalidProfile,
			fmt.Sprintf("Profile failed validation: %s", strings.Join(problems, "; ")), nil)
	}

	var profile types.EmploymentProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidProfile,
			"Profile could not be decoded", err)
	}
	return &profile, nil
}
