package domain

// Collections of the external catalog store.
const (
	TableUsers    = "users"
	TableProducts = "products"
	TableOffers   = "offres"
)

// WriteResult is the uniform outcome of a write against the external store.
// Failures never surface as Go errors; Success is false and Message explains.
type WriteResult[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// PingResult describes a connectivity probe against one collection.
type PingResult struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	Connected       bool   `json:"connected"`
	TableAccessible bool   `json:"table_accessible"`
	URL             string `json:"url"`
	TableName       string `json:"table_name"`
	RowCount        *int64 `json:"row_count,omitempty"`
}
