package response

import "nakliye/pkg/pagination"

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Meta       *Meta       `json:"meta,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Meta describes one page of a list response.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// SuccessWithPagination wraps one page of a list together with its paging metadata
func SuccessWithPagination(statusCode int, data interface{}, page, limit int, total int64) Response {
	pages := pagination.Params{Page: page, Limit: limit}.TotalPages(total)
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
		Meta:       &Meta{Page: page, Limit: limit, Total: total, TotalPages: pages},
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}
