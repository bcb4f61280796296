package pipeline

import "fmt"

// ValidationError reports bad caller input such as an empty keyword or a
// relative URL.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// GenerationError reports a draft that cannot be turned into a record.
type GenerationError struct {
	Kind   string
	Reason string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %s", e.Kind, e.Reason)
}
