package dto

import "github.com/workermill-examples/shipapi/pkg/validator"

// PageRequest paginación para listados (query params page/per_page).
type PageRequest struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// Normalize aplica defaults y recorta valores fuera de rango.
// page mínimo 1; per_page entre 1 y 100, por defecto 20.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 20
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
}

// Limit tamaño de página ya normalizado.
func (p PageRequest) Limit() int { return p.PerPage }

// Offset desplazamiento derivado de la página.
func (p PageRequest) Offset() int { return (p.Page - 1) * p.PerPage }

// Pagination metadatos de página en respuestas de listado.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination calcula los metadatos a partir de la petición y el total.
func NewPagination(req PageRequest, total int) Pagination {
	pages := 0
	if total > 0 {
		pages = (total + req.PerPage - 1) / req.PerPage
	}
	return Pagination{Page: req.Page, PerPage: req.PerPage, Total: total, TotalPages: pages}
}

// ListResponse envoltorio estándar de listados paginados.
type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewListResponse construye el envoltorio; Data nunca es null en JSON.
func NewListResponse[T any](items []T, req PageRequest, total int) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Data: items, Pagination: NewPagination(req, total)}
}

// ErrorBody detalle de un error de la API.
type ErrorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details []validator.FieldError `json:"details"`
}

// ErrorResponse envoltorio de error: {"error": {...}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewErrorResponse construye el envoltorio; Details nunca es null en JSON.
func NewErrorResponse(code, message string, details []validator.FieldError) ErrorResponse {
	if details == nil {
		details = []validator.FieldError{}
	}
	return ErrorResponse{Error: ErrorBody{Code: code, Message: message, Details: details}}
}
