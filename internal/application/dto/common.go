package dto

// Topes de paginación en el borde del API.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 1000
	MaxHistoryLimit  = 500
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalize aplica el valor por defecto (50) y el tope indicado.
func (p *PageRequest) Normalize(max int) {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas (sobre consistente para
// todos los listados: items + total + limit/offset de eco).
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP estructurado (code, message).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
