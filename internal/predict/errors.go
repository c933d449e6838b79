package predict

import "fmt"

// MissingError reports a reference to a team, stadium, or table that the inputs do not define.
type MissingError struct {
	Kind    string
	Code    string
	Context string
}

func (e *MissingError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%s %q not found", e.Kind, e.Code)
	}
	return fmt.Sprintf("%s %q referenced by %s not found", e.Kind, e.Code, e.Context)
}
