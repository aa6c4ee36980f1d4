package types

// Scope is the build scope an input artifact was declared with
type Scope string

const (
	ScopeCompile  Scope = "compile"
	ScopeRuntime  Scope = "runtime"
	ScopeProvided Scope = "provided"
	ScopeTest     Scope = "test"
	ScopeSystem   Scope = "system"
)

// Input artifact types and classifiers the assembler understands
const (
	TypeKar            = "kar"
	ClassifierFeatures = "features"
)

// InputArtifact is a build input handed over by the build tool
type InputArtifact struct {
	// Location is the artifact coordinate, e.g. mvn:org.sample/features/1.0/xml/features
	Location string `koanf:"location" yaml:"location,omitempty"`

	// File is a local file backing the artifact. When empty the location is resolved.
	File string `koanf:"file" yaml:"file,omitempty"`

	Scope      Scope  `koanf:"scope" yaml:"scope,omitempty"`
	Type       string `koanf:"type" yaml:"type,omitempty"`
	Classifier string `koanf:"classifier" yaml:"classifier,omitempty"`
}

// EffectiveScope returns the scope, defaulting to compile
func (a InputArtifact) EffectiveScope() Scope {
	if a.Scope == "" {
		return ScopeCompile
	}
	return a.Scope
}

// Included reports whether the input takes part in the assembly at all
func (a InputArtifact) Included() bool {
	s := a.EffectiveScope()
	return s == ScopeCompile || s == ScopeRuntime
}

// WantsStartup reports whether the features reachable from this input are startup features
func (a InputArtifact) WantsStartup() bool {
	return a.EffectiveScope() != ScopeRuntime
}

// IsKar reports whether the input is a kar archive
func (a InputArtifact) IsKar() bool {
	return a.Type == TypeKar
}

// IsFeaturesRepository reports whether the input is a features descriptor
func (a InputArtifact) IsFeaturesRepository() bool {
	return a.Classifier == ClassifierFeatures
}

// String returns a readable identification of the input
func (a InputArtifact) String() string {
	if a.Location != "" {
		return a.Location
	}
	return a.File
}

// Scopes lists the known scopes
var Scopes = []Scope{ScopeCompile, ScopeRuntime, ScopeProvided, ScopeTest, ScopeSystem}

// ParseScope returns the scope named s
func ParseScope(s string) (Scope, bool) {
	for _, scope := range Scopes {
		if string(scope) == s {
			return scope, true
		}
	}
	return "", false
}
