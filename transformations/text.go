package transformations

import "strings"

// TrimSpace removes leading and trailing white space left behind by filtering
type TrimSpace struct{}

func (t *TrimSpace) Transform(input string) string {
	return strings.TrimSpace(input)
}

// CollapseBlankLines keeps at most one blank line between paragraphs
type CollapseBlankLines struct{}

func (t *CollapseBlankLines) Transform(input string) string {
	lines := strings.Split(input, "\n")
	kept := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if blank {
				continue
			}
			blank = true
			kept = append(kept, "")
			continue
		}
		blank = false
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Header prepends a fixed value to the document
type Header struct {
	Value string
}

func (t *Header) Transform(input string) string {
	return t.Value + input
}

// Footer appends a fixed value to the document
type Footer struct {
	Value string
}

func (t *Footer) Transform(input string) string {
	return input + t.Value
}
