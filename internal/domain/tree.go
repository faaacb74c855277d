package domain

import (
	"fmt"

	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
)

// NodeKind classifies a tree view node
type NodeKind string

const (
	NodeDeployment     NodeKind = "deployment"
	NodeArtifact       NodeKind = "artifact"
	NodeGroup          NodeKind = "group"
	NodeImplementation NodeKind = "implementation"
)

// TreeNode is a node of the contract tree view. Selecting it yields the
// (Deployment, Artifact) pair; Artifact is nil for nodes without a location.
type TreeNode struct {
	ID         string
	Label      string
	Kind       NodeKind
	Depth      int
	Deployment *models.DeploymentInfo
	Artifact   *models.ContractArtifact
	// Implementation is set on NodeImplementation nodes
	Implementation string
	Children       []*TreeNode
}

// BuildTree arranges loaded deployments into the tree shown by the viewer.
// Each deployment gets its source outline, an ABI group and, for proxies, an
// implementation node.
func BuildTree(deployments []*models.DeploymentInfo) []*TreeNode {
	roots := make([]*TreeNode, 0, len(deployments))
	for _, d := range deployments {
		root := &TreeNode{
			ID:         d.Address,
			Label:      fmt.Sprintf("%s (%s)", d.DisplayName(), d.Address),
			Kind:       NodeDeployment,
			Deployment: d,
		}

		for _, a := range d.Artifacts {
			root.Children = append(root.Children, artifactNode(d, a, root.ID, 1))
		}

		if len(d.ABIArtifacts) > 0 {
			group := &TreeNode{
				ID:         root.ID + "/abi",
				Label:      "ABI",
				Kind:       NodeGroup,
				Depth:      1,
				Deployment: d,
			}
			for _, a := range d.ABIArtifacts {
				group.Children = append(group.Children, artifactNode(d, a, group.ID, 2))
			}
			root.Children = append(root.Children, group)
		}

		if d.IsProxy() {
			root.Children = append(root.Children, &TreeNode{
				ID:             root.ID + "/impl/" + d.Implementation,
				Label:          "implementation " + d.Implementation,
				Kind:           NodeImplementation,
				Depth:          1,
				Deployment:     d,
				Implementation: d.Implementation,
			})
		}

		roots = append(roots, root)
	}
	return roots
}

func artifactNode(d *models.DeploymentInfo, a *models.ContractArtifact, parentID string, depth int) *TreeNode {
	id := fmt.Sprintf("%s/%s:%s", parentID, a.Kind, a.Name)
	if loc, ok := a.Location(); ok {
		id = fmt.Sprintf("%s@%d:%d", id, loc.Line, loc.Column)
	}
	n := &TreeNode{
		ID:         id,
		Label:      fmt.Sprintf("%s %s", a.Kind, a.Name),
		Kind:       NodeArtifact,
		Depth:      depth,
		Deployment: d,
		Artifact:   a,
	}
	if a.Kind == models.ArtifactFile {
		n.Label = a.Name
	}
	for _, c := range a.Children {
		n.Children = append(n.Children, artifactNode(d, c, id, depth+1))
	}
	return n
}

// Walk visits nodes depth-first. Children are skipped when visit returns false.
func Walk(nodes []*TreeNode, visit func(*TreeNode) bool) {
	for _, n := range nodes {
		if visit(n) {
			Walk(n.Children, visit)
		}
	}
}
