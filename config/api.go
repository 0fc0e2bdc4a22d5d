package config

// GetAuthSkipperPaths returns a list of /api paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Part point queries back the order form's live validation
	return []string{"/api/parts/:part_number"}
}
