package kassemble

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/location"
	"github.com/arthur-debert/kassemble/pkg/maven"
	"github.com/arthur-debert/kassemble/pkg/types"
)

// parseInput reads an --input value: a maven location or a file, optionally
// followed by @scope. Only known scope names are split off, so locations with
// an @ in their repository URL stay intact.
func parseInput(spec string) (types.InputArtifact, error) {
	value := spec
	var input types.InputArtifact
	if i := strings.LastIndex(spec, "@"); i >= 0 {
		if scope, ok := types.ParseScope(spec[i+1:]); ok {
			value = spec[:i]
			input.Scope = scope
		}
	}
	if value == "" {
		return input, errors.Newf(errors.ErrInvalidInput, "empty input %q", spec)
	}

	if location.IsMaven(value) {
		coord, err := maven.ParseCoordinate(value)
		if err != nil {
			return input, errors.Wrapf(err, errors.ErrInvalidInput, "invalid input %q", spec).WithDetail("input", spec)
		}
		input.Location = value
		input.Type = coord.Type
		input.Classifier = coord.Classifier
		return input, nil
	}

	input.File = value
	switch strings.ToLower(filepath.Ext(value)) {
	case ".kar":
		input.Type = types.TypeKar
	case ".xml":
		input.Type = "xml"
		input.Classifier = types.ClassifierFeatures
	}
	return input, nil
}
