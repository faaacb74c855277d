package solidity

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

var (
	containerPattern = regexp.MustCompile(`^\s*(abstract\s+contract|contract|interface|library)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	memberPattern    = regexp.MustCompile(`^\s*(function|modifier|event|error|struct|enum)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	specialPattern   = regexp.MustCompile(`^\s*(constructor|fallback|receive)\s*\(`)
)

var containerKinds = map[string]models.ArtifactKind{
	"contract":  models.ArtifactContract,
	"abstract":  models.ArtifactAbstract,
	"interface": models.ArtifactInterface,
	"library":   models.ArtifactLibrary,
}

var memberKinds = map[string]models.ArtifactKind{
	"function":    models.ArtifactFunction,
	"modifier":    models.ArtifactModifier,
	"event":       models.ArtifactEvent,
	"error":       models.ArtifactError,
	"struct":      models.ArtifactStruct,
	"enum":        models.ArtifactEnum,
	"constructor": models.ArtifactConstructor,
	"fallback":    models.ArtifactFallback,
	"receive":     models.ArtifactReceive,
}

var nodeTypes = map[models.ArtifactKind]string{
	models.ArtifactFile:        "SourceUnit",
	models.ArtifactContract:    "ContractDefinition",
	models.ArtifactAbstract:    "ContractDefinition",
	models.ArtifactInterface:   "ContractDefinition",
	models.ArtifactLibrary:     "ContractDefinition",
	models.ArtifactFunction:    "FunctionDefinition",
	models.ArtifactConstructor: "FunctionDefinition",
	models.ArtifactFallback:    "FunctionDefinition",
	models.ArtifactReceive:     "FunctionDefinition",
	models.ArtifactModifier:    "ModifierDefinition",
	models.ArtifactEvent:       "EventDefinition",
	models.ArtifactError:       "CustomErrorDefinition",
	models.ArtifactStruct:      "StructDefinition",
	models.ArtifactEnum:        "EnumDefinition",
}

// Outliner finds Solidity declarations line by line. It does not build a
// full AST: it tracks comments, string literals and brace depth, which is
// enough to locate contracts and their members for navigation.
type Outliner struct{}

// NewOutliner creates a new Solidity outliner
func NewOutliner() *Outliner {
	return &Outliner{}
}

// Outline returns one file artifact per source, each holding the
// declarations found in its line range of code. Lines are 1-indexed,
// columns 0-indexed.
func (o *Outliner) Outline(code string, sources []models.SourceFile) []*models.ContractArtifact {
	if code == "" {
		return nil
	}
	lines := strings.Split(code, "\n")

	if len(sources) == 0 {
		sources = []models.SourceFile{{Path: "source.sol", StartLine: 1}}
	}

	files := make([]*models.ContractArtifact, 0, len(sources))
	for i, src := range sources {
		start := src.StartLine
		if start < 1 {
			start = 1
		}
		end := len(lines)
		if i+1 < len(sources) && sources[i+1].StartLine > start {
			end = sources[i+1].StartLine - 1
		}

		file := newArtifact(models.ArtifactFile, src.Path, src.Path, start, 0)
		file.Node.Loc.End = models.SourceLocation{Line: end}
		file.Children = scan(lines, start, end, src.Path)
		files = append(files, file)
	}

	return files
}

// scan outlines lines[start-1 : end]
func scan(lines []string, start, end int, path string) []*models.ContractArtifact {
	var (
		top            []*models.ContractArtifact
		current        *models.ContractArtifact
		containerDepth int
		opened         bool
		depth          int
		inComment      bool
	)

	for n := start; n <= end && n <= len(lines); n++ {
		line := lines[n-1]
		code := stripComments(line, &inComment)

		if m := containerPattern.FindStringSubmatchIndex(code); m != nil {
			keyword := code[m[2]:m[3]]
			kind := containerKinds[strings.Fields(keyword)[0]]
			name := code[m[4]:m[5]]
			current = newArtifact(kind, name, path, n, column(line, m[2]))
			top = append(top, current)
			containerDepth = depth
			opened = false
		} else if m := memberPattern.FindStringSubmatchIndex(code); m != nil {
			kind := memberKinds[code[m[2]:m[3]]]
			a := newArtifact(kind, code[m[4]:m[5]], path, n, column(line, m[2]))
			top, current = attach(top, current, opened, a)
		} else if m := specialPattern.FindStringSubmatchIndex(code); m != nil {
			keyword := code[m[2]:m[3]]
			a := newArtifact(memberKinds[keyword], keyword, path, n, column(line, m[2]))
			top, current = attach(top, current, opened, a)
		}

		for i := 0; i < len(code); i++ {
			switch code[i] {
			case '{':
				depth++
				if current != nil && depth > containerDepth {
					opened = true
				}
			case '}':
				depth--
				if current != nil && opened && depth <= containerDepth {
					current.Node.Loc.End = models.SourceLocation{Line: n, Column: column(line, i)}
					current = nil
					opened = false
				}
			}
		}
	}

	return top
}

// attach places a member under the open container, or at file level
func attach(top []*models.ContractArtifact, current *models.ContractArtifact, opened bool, a *models.ContractArtifact) ([]*models.ContractArtifact, *models.ContractArtifact) {
	if current != nil && opened {
		current.Children = append(current.Children, a)
		return top, current
	}
	return append(top, a), current
}

func newArtifact(kind models.ArtifactKind, name, path string, line, col int) *models.ContractArtifact {
	loc := models.SourceLocation{Line: line, Column: col}
	return &models.ContractArtifact{
		Kind: kind,
		Name: name,
		File: path,
		Node: &models.ASTNode{
			Type: nodeTypes[kind],
			Loc:  &models.SourceRange{Start: loc, End: loc},
		},
	}
}

// column converts a byte offset in line to a 0-indexed character column
func column(line string, offset int) int {
	if offset > len(line) {
		offset = len(line)
	}
	return utf8.RuneCountInString(line[:offset])
}

// stripComments blanks out comments and string literals byte for byte so
// offsets into the result are offsets into line. inComment carries block
// comment state across lines.
func stripComments(line string, inComment *bool) string {
	out := []byte(line)
	var quote byte

	for i := 0; i < len(out); i++ {
		c := out[i]
		switch {
		case *inComment:
			if c == '*' && i+1 < len(out) && out[i+1] == '/' {
				*inComment = false
				out[i], out[i+1] = ' ', ' '
				i++
				continue
			}
			out[i] = ' '
		case quote != 0:
			if c == '\\' && i+1 < len(out) {
				out[i], out[i+1] = ' ', ' '
				i++
				continue
			}
			if c == quote {
				quote = 0
			} else {
				out[i] = ' '
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '/' && i+1 < len(out) && out[i+1] == '/':
			for j := i; j < len(out); j++ {
				out[j] = ' '
			}
			return string(out)
		case c == '/' && i+1 < len(out) && out[i+1] == '*':
			*inComment = true
			out[i], out[i+1] = ' ', ' '
			i++
		}
	}

	return string(out)
}

// Ensure the outliner implements the interface
var _ usecase.SourceOutliner = (*Outliner)(nil)
