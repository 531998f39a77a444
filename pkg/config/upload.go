package config

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
}

// UploadContexts - правила для загружаемых файлов по назначению.
var UploadContexts = map[string]UploadConfig{
	// XLSX - это zip-архив, http.DetectContentType видит именно его.
	"equipment_import": {
		AllowedMimeTypes: []string{"application/zip", "application/octet-stream"},
		MaxSizeMB:        10,
	},
}
