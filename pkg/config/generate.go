package config

import (
	"strings"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# kassemble configuration
#
# Every value below is the built-in default. Uncomment and edit what you need.
# Inputs are declared as [[inputs]] tables:
#
#   [[inputs]]
#   location = "mvn:org.sample/features/1.0/xml/features"
#   classifier = "features"
#   scope = "compile"

`

// GenerateConfigContent renders the defaults as a commented TOML project file
func GenerateConfigContent() (string, error) {
	data, err := toml.Marshal(Defaults())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render default configuration")
	}
	return generatedHeader + commentOutConfigValues(string(data)), nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [features], [maven]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		// Comment out configuration value lines
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
