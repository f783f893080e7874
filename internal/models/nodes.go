package models

// NodeKind tags the three structural node types of the workspace tree.
// Spaces, folders and lists share the same rename/delete/favorite/recolor
// surface, dispatched on this tag instead of per-kind call sites.
type NodeKind string

const (
	KindSpace  NodeKind = "space"
	KindFolder NodeKind = "folder"
	KindList   NodeKind = "list"
)

// ValidNodeKinds enumerates the accepted node kinds.
var ValidNodeKinds = map[NodeKind]struct{}{
	KindSpace:  {},
	KindFolder: {},
	KindList:   {},
}
