package engine

import "github.com/edocico/a11y-audit/internal/model"

// WriteBaseline writes the findings' fingerprints as a baseline file.
func WriteBaseline(path string, findings []model.Finding) error { return writeBaseline(path, findings) }
