package ports

import "iter"

// TreeWalker enumerates files.
//
//go:generate go run go.uber.org/mock/mockgen -source=walker.go -destination=mocks/mock_walker.go -package=mocks
type TreeWalker interface {
	// WalkFiles yields every regular file below root in lexical order.
	// An error stops the iteration and is yielded as the last element.
	WalkFiles(root string) iter.Seq2[string, error]
}
