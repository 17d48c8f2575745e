package forms

// RenderedField campo listo para render genérico: el tipo ya está normalizado
// (un tipo desconocido degrada a text, nunca rompe el renderer).
type RenderedField struct {
	Key        string      `json:"key"`
	Type       string      `json:"type"`
	Label      string      `json:"label"`
	Required   bool        `json:"required"`
	Options    []string    `json:"options,omitempty"`
	Validation *Validation `json:"validation,omitempty"`
}

// RenderedSection sección ordenada del formulario.
type RenderedSection struct {
	Title  string          `json:"title"`
	Fields []RenderedField `json:"fields"`
}

// Render recorre el esquema y produce la lista ordenada de secciones y campos
// que consume el renderizador genérico. No hay componentes a medida por campo:
// un único renderer despacha por Type.
func Render(s *Schema) []RenderedSection {
	out := make([]RenderedSection, 0, len(s.Sections))
	for _, sec := range s.Sections {
		rs := RenderedSection{Title: sec.Title, Fields: make([]RenderedField, 0, len(sec.Fields))}
		for _, f := range sec.Fields {
			rs.Fields = append(rs.Fields, RenderedField{
				Key:        f.Key,
				Type:       NormalizeType(f.Type),
				Label:      f.Label,
				Required:   f.Required,
				Options:    f.Options,
				Validation: f.Validation,
			})
		}
		out = append(out, rs)
	}
	return out
}
