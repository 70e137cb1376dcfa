package entity

import "github.com/shopspring/decimal"

// Material representa un insumo con precio por gramo. Name es la clave única.
type Material struct {
	Name      string
	UnitPrice decimal.Decimal
}
