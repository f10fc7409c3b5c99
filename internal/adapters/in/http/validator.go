package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"

	"dispatch/internal/pkg/errs"
)

//go:embed openapi.yaml
var openAPIDocument []byte

var registerDocOnce sync.Once

// Validator checks decoded JSON bodies against the component schemas of the
// embedded OpenAPI document.
type Validator struct {
	doc *openapi3.T
}

// NewValidator loads and validates the embedded document and publishes it for the
// swagger UI.
func NewValidator(ctx context.Context) (*Validator, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, apiDoc(raw))
	})

	return &Validator{doc: doc}, nil
}

// Validate checks value, as produced by json.Unmarshal into any, against schema.
func (v *Validator) Validate(schema string, value any) error {
	ref, ok := v.doc.Components.Schemas[schema]
	if !ok || ref.Value == nil {
		return fmt.Errorf("unknown schema %q", schema)
	}

	if err := ref.Value.VisitJSON(value); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(schema, err)
	}
	return nil
}

// Decode validates raw against schema and then unmarshals it into dest.
func (v *Validator) Decode(raw []byte, schema string, dest any) error {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	if err := v.Validate(schema, generic); err != nil {
		return err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}

// apiDoc serves the document through swag.ReadDoc.
type apiDoc []byte

func (d apiDoc) ReadDoc() string {
	return string(d)
}
