package settings

import (
	"bufio"
	"os"
	"strings"
)

// parseEnvFile reads KEY=VALUE pairs from a .env file. Supports blank lines,
// "#" comments, and an optional "export " prefix. A missing file yields an
// empty map and no error.
func parseEnvFile(path string) (map[string]string, error) {
	vars := make(map[string]string)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return vars, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			continue
		}
		vars[key] = strings.TrimSpace(parts[1])
	}
	return vars, scanner.Err()
}
