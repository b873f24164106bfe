package transformations

import "fmt"

// BuildTransformation creates a Transformation from a config
func BuildTransformation(cfg Config) (Transformation, error) {
	switch cfg.Type {
	case "trim_space":
		return &TrimSpace{}, nil
	case "collapse_blank_lines":
		return &CollapseBlankLines{}, nil
	case "prefix":
		return &Header{Value: cfg.Value}, nil
	case "suffix":
		return &Footer{Value: cfg.Value}, nil
	case "base64_encode":
		return &Base64Encode{}, nil
	case "base64_decode":
		return &Base64Decode{}, nil
	default:
		return nil, fmt.Errorf("unknown transformation type: %s", cfg.Type)
	}
}

// BuildAll validates a list of configs and returns the transformations in order
func BuildAll(configs []Config) ([]Transformation, error) {
	built := make([]Transformation, 0, len(configs))
	for _, cfg := range configs {
		t, err := BuildTransformation(cfg)
		if err != nil {
			return nil, err
		}
		built = append(built, t)
	}
	return built, nil
}

// ApplyTransformations applies a list of transformations to a document text
func ApplyTransformations(text string, configs []Config) (string, error) {
	built, err := BuildAll(configs)
	if err != nil {
		return text, err
	}
	for _, t := range built {
		text = t.Transform(text)
	}
	return text, nil
}
