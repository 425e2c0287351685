package http

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// RegisterDocs serves doc as JSON at /openapi.json and through Swagger UI
// under /swagger/.
func RegisterDocs(e *echo.Echo, doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	if swag.GetSwagger(swag.Name) == nil {
		swag.Register(swag.Name, &swag.Spec{
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(raw),
		})
	}

	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, raw)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
