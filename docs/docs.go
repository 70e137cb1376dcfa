// Package docs registra la especificación OpenAPI de la API en swag.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var doc string

// SwaggerInfo metadatos exportados (se pueden ajustar en runtime).
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Title:            "Costbook API",
	Description:      "Costos de materiales, recetas y libro de ingresos y gastos de una panadería.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  doc,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// JSON devuelve el documento renderizado.
func JSON() (string, error) {
	return swag.ReadDoc(SwaggerInfo.InstanceName())
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
