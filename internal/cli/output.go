package cli

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// outputData is what the filename template renders against.
type outputData struct {
	Hostnames []string
	Timestamp time.Time
}

// OutputPath renders the configured filename template with the participating
// hostnames and the generation timestamp. Sprig functions (join, date, ...)
// are available.
func OutputPath(tmplText string, hostnames []string, now time.Time) (string, error) {
	tmpl, err := template.New("output").Funcs(sprig.TxtFuncMap()).Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("parsing output template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, outputData{Hostnames: hostnames, Timestamp: now}); err != nil {
		return "", fmt.Errorf("rendering output template: %w", err)
	}
	return buf.String(), nil
}
