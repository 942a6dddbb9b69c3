package ticketing

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

const filterResponseSchema = `{
	"type": "object",
	"required": ["tickets"],
	"properties": {
		"tickets": {"type": "array", "items": {"type": "object", "required": ["id"]}},
		"total": {"type": ["integer", "null"], "minimum": 0}
	}
}`

const detailResponseSchema = `{
	"type": "object",
	"required": ["ticket"],
	"properties": {
		"ticket": {"type": "object", "required": ["id"]}
	}
}`

var (
	filterSchema = mustSchema(filterResponseSchema)
	detailSchema = mustSchema(detailResponseSchema)
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(err)
	}
	return schema
}

// validateBody checks a response body against schema before decoding.
func validateBody(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &apperrors.MalformedResponseError{Service: serviceName, Reason: "invalid JSON", Err: err}
	}
	if result.Valid() {
		return nil
	}
	reasons := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		reasons = append(reasons, desc.String())
	}
	return &apperrors.MalformedResponseError{Service: serviceName, Reason: strings.Join(reasons, "; ")}
}
