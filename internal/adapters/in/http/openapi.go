package http

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISpec []byte

// LoadOpenAPI parses and validates the embedded API description and returns it
// together with its JSON encoding.
func LoadOpenAPI() (*openapi3.T, []byte, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, nil, fmt.Errorf("validate openapi document: %w", err)
	}

	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, nil, fmt.Errorf("encode openapi document: %w", err)
	}
	return doc, data, nil
}

// swaggerDoc feeds the document to the Swagger UI handler.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string { return d.json }

var registerSwagger sync.Once

func registerSwaggerDoc(data []byte) {
	registerSwagger.Do(func() {
		if swag.GetSwagger(swag.Name) == nil {
			swag.Register(swag.Name, swaggerDoc{json: string(data)})
		}
	})
}
