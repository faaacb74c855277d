package models

// ArtifactKind classifies a node of the contract outline
type ArtifactKind string

const (
	ArtifactFile        ArtifactKind = "file"
	ArtifactContract    ArtifactKind = "contract"
	ArtifactAbstract    ArtifactKind = "abstract"
	ArtifactInterface   ArtifactKind = "interface"
	ArtifactLibrary     ArtifactKind = "library"
	ArtifactFunction    ArtifactKind = "function"
	ArtifactConstructor ArtifactKind = "constructor"
	ArtifactFallback    ArtifactKind = "fallback"
	ArtifactReceive     ArtifactKind = "receive"
	ArtifactModifier    ArtifactKind = "modifier"
	ArtifactEvent       ArtifactKind = "event"
	ArtifactError       ArtifactKind = "error"
	ArtifactStruct      ArtifactKind = "struct"
	ArtifactEnum        ArtifactKind = "enum"

	// ABI entries carry no source location
	ArtifactABIFunction ArtifactKind = "abi-function"
	ArtifactABIEvent    ArtifactKind = "abi-event"
	ArtifactABIError    ArtifactKind = "abi-error"
)

// SourceLocation is a position in DeploymentInfo.Code.
// Line is 1-indexed, Column is 0-indexed.
type SourceLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SourceRange spans a declaration
type SourceRange struct {
	Start SourceLocation `json:"start"`
	End   SourceLocation `json:"end"`
}

// ASTNode is the parsed node backing an artifact
type ASTNode struct {
	Type string       `json:"type"`
	Loc  *SourceRange `json:"loc,omitempty"`
}

// ContractArtifact is a navigable node of a deployment outline
type ContractArtifact struct {
	Kind     ArtifactKind        `json:"kind"`
	Name     string              `json:"name"`
	File     string              `json:"file,omitempty"`
	Node     *ASTNode            `json:"node,omitempty"`
	Children []*ContractArtifact `json:"children,omitempty"`
}

// Location returns the start of the artifact, if it has one
func (a *ContractArtifact) Location() (SourceLocation, bool) {
	if a == nil || a.Node == nil || a.Node.Loc == nil {
		return SourceLocation{}, false
	}
	return a.Node.Loc.Start, true
}
