package transformations

// Transformation is the interface that all document transformations must implement
type Transformation interface {
	// Transform takes a document text and returns the transformed text
	Transform(input string) string
}

// Config represents a transformation configuration from YAML
type Config struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value,omitempty"`
}
