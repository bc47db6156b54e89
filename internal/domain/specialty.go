package domain

type Specialty struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Palette used when an admin creates a specialty without picking a color.
var SpecialtyColorPalette = []string{
	"#fd7e14", "#20c997", "#6c757d", "#0dcaf0",
	"#d63384", "#800080", "#008080", "#ff6347",
}
