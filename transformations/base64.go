package transformations

import "encoding/base64"

type Base64Encode struct{}

func (t *Base64Encode) Transform(input string) string {
	return base64.StdEncoding.EncodeToString([]byte(input))
}

// Base64Decode decodes standard base64, leaving undecodable input as is
type Base64Decode struct{}

func (t *Base64Decode) Transform(input string) string {
	decoded, err := base64.StdEncoding.DecodeString(input)
	if err != nil {
		return input
	}
	return string(decoded)
}
