package dto

// Response is the success envelope.
type Response[T any] struct {
	Data []T `json:"data"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Data wraps items in a success envelope. No items render as [].
func Data[T any](items ...T) Response[T] {
	if items == nil {
		items = []T{}
	}
	return Response[T]{Data: items}
}
