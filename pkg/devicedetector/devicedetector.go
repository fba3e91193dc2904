// Package devicedetector provides the device-category classifier capability:
// something that enumerates detectable brands, operating systems and
// browsers as icontype -> code -> display name.
package devicedetector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrMalformedOutput is returned when the classifier output is not an
// icontype -> code -> name object
var ErrMalformedOutput = errors.New("malformed classifier output")

// Categories maps an icon type (e.g. "brand", "os") to code -> display name
type Categories map[string]map[string]string

// Classifier enumerates device categories
type Classifier interface {
	Classify(ctx context.Context) (Categories, error)
}

// ExecClassifier runs an external command that prints the categories as JSON
type ExecClassifier struct {
	Command []string
	Dir     string
}

// NewExecClassifier creates a classifier for argv, run in dir
func NewExecClassifier(dir string, argv ...string) *ExecClassifier {
	return &ExecClassifier{Command: argv, Dir: dir}
}

// Classify runs the command and decodes its stdout
func (c *ExecClassifier) Classify(ctx context.Context) (Categories, error) {
	if len(c.Command) == 0 {
		return nil, errors.New("no classifier command configured")
	}
	cmd := exec.CommandContext(ctx, c.Command[0], c.Command[1:]...) // #nosec G204 -- argv comes from repository configuration
	cmd.Dir = c.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s failed: %w: %s", c.Command[0], err, msg)
		}
		return nil, fmt.Errorf("%s failed: %w", c.Command[0], err)
	}
	return Parse(out)
}

// Parse decodes classifier output. Every icon type must be an object of
// string values. PHP encodes an empty map as [], which is read as an empty
// category.
func Parse(data []byte) (Categories, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformedOutput)
	}
	out := make(Categories, len(raw))
	for icontype, msg := range raw {
		var list []json.RawMessage
		if err := json.Unmarshal(msg, &list); err == nil && list != nil && len(list) == 0 {
			out[icontype] = map[string]string{}
			continue
		}
		var entries map[string]string
		if err := json.Unmarshal(msg, &entries); err != nil || entries == nil {
			return nil, fmt.Errorf("%w: %s is not a code -> name object", ErrMalformedOutput, icontype)
		}
		out[icontype] = entries
	}
	return out, nil
}

// StaticClassifier returns fixed categories
type StaticClassifier struct {
	Categories Categories
	Err        error
}

// Classify returns the fixed categories or error
func (s StaticClassifier) Classify(ctx context.Context) (Categories, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Categories, nil
}
