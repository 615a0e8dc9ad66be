package helpers

import (
	"os"
	"strings"
	"testing"
)

// ReadStepOutputs parses a GITHUB_OUTPUT file. Both name=value lines and
// name<<DELIMITER blocks are accepted.
func ReadStepOutputs(t *testing.T, path string) map[string]string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read step outputs %s: %v", path, err)
	}

	outputs := map[string]string{}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			continue
		}
		if name, delim, ok := strings.Cut(line, "<<"); ok && !strings.Contains(name, "=") {
			var value []string
			for i++; i < len(lines) && lines[i] != delim; i++ {
				value = append(value, lines[i])
			}
			if i == len(lines) {
				t.Fatalf("unterminated output %s in %s", name, path)
			}
			outputs[name] = strings.Join(value, "\n")
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			t.Fatalf("malformed output line %q in %s", line, path)
		}
		outputs[name] = value
	}
	return outputs
}
