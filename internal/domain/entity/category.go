package entity

// CategoryOther categoría por defecto cuando no se indica ninguna.
const CategoryOther = "其他"

// DefaultCategories conjunto inicial de categorías del libro
// (insumos, equipos, empaques, transporte, otros).
var DefaultCategories = []string{"食材", "設備", "包裝", "運輸", CategoryOther}
