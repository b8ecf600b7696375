package provider

import "errors"

var ErrEmptyOutput = errors.New("provider returned no output")

type File struct {
	Name string

	Content     []byte
	ContentType string
}
