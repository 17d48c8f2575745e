package dto

import "time"

// PageRequest paginación para listados (page empieza en 1).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica valores por defecto y topes.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset deriva el offset SQL de la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta metadatos de paginación en respuestas.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewPageMeta calcula totalPages a partir del total y el límite.
func NewPageMeta(page, limit int, total int64) *PageMeta {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return &PageMeta{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// Meta metadatos del sobre de respuesta.
type Meta struct {
	Timestamp  time.Time `json:"timestamp"`
	Pagination *PageMeta `json:"pagination,omitempty"`
}

// ErrorBody cuerpo de error del sobre estándar.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope sobre estándar de la API: {success, data|error, meta:{timestamp}}.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
	Meta    Meta       `json:"meta"`
}
