package site

import (
	"errors"
	"strings"
)

// ErrTraversal marks a request target refused for containing "..". The
// refusal is a literal substring check with no canonicalization: it blocks
// every literal ".." regardless of whether the joined path would actually
// escape the root, and it makes no attempt at symlink or encoding games.
// That exact tradeoff is part of the contract.
var ErrTraversal = errors.New("directory traversal not allowed")

// Resolve maps a request target to a file name under the root.
// "/" becomes "/index.html", then exactly one leading slash is stripped and
// the rest is used as-is — query strings included, since lookup is literal.
func Resolve(target string) (string, error) {
	if target == "/" {
		target = "/index.html"
	}
	if strings.Contains(target, "..") {
		return "", ErrTraversal
	}
	return strings.TrimPrefix(target, "/"), nil
}
