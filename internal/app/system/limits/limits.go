// internal/app/system/limits/limits.go
package limits

// Request body size limits. They keep a single request from exhausting
// memory.
const (
	// MaxJSONBodySize is the maximum size of a JSON request body.
	MaxJSONBodySize = 1 << 20 // 1 MB

	// MaxImportUploadSize is the maximum size of a roster workbook upload.
	MaxImportUploadSize = 10 << 20 // 10 MB

	// MaxImportMemory is how much of a multipart upload is held in memory
	// before spilling to a temporary file.
	MaxImportMemory = 8 << 20 // 8 MB

	// HistoryLimit caps the events returned by a student history lookup.
	HistoryLimit = 100
)
