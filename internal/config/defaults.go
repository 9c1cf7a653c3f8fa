package config

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"python":            "",
		"python_preference": "managed",
		"python_fetch":      "automatic",
		"offline":           false,
		"native_tls":        false,
		"python_index_url":  "",
		"cache_dir":         "",
	}
}
