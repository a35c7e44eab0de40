package apidoc

import (
	"fmt"
	"regexp"
	"strings"
)

var paramNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

type pathNode struct {
	// It is a matching prefix
	prefix string

	// Is it an exact matching prefix
	isExact bool

	// Do you want to abort the matching
	isStop bool

	// A path that requires precise matching
	fixedPaths []string

	// Match the parameter names in the path
	pathParams []string

	// Endpoints registered on this node, keyed by HTTP method
	endpoints map[string]*Endpoint

	// It is a child node that has successfully matched the prefix
	children []*pathNode
}

func (n *pathNode) getPrefix(path string) (prefix, other string) {
	if path == "" || path[0] != '/' {
		return
	}
	idx := strings.Index(path[1:], "/")
	if idx == -1 {
		prefix = path
		return
	}
	prefix = path[:idx+1]
	other = path[idx+1:]
	return
}

func (n *pathNode) add(path string, ep *Endpoint) (err error) {
	if path == "" {
		return
	}
	prefix, other := n.getPrefix(path)
	if prefix == "" {
		err = fmt.Errorf("path format error: %s", ep.Path)
		return
	}
	tree := &pathNode{
		prefix: prefix,
	}
	if other == "" {
		tree.isStop = true
		tree.endpoints = map[string]*Endpoint{ep.Method: ep}
	}
	left := strings.Index(prefix, "{")
	right := strings.Index(prefix, "}")
	if left == -1 && right == -1 {
		tree.isExact = true
	} else {
		for {
			if left == -1 && right == -1 {
				break
			}
			if (left == -1 && right != -1) || (left != -1 && right == -1) || left > right {
				// Unpaired braces mean the template is malformed
				err = fmt.Errorf("path format error: %s", ep.Path)
				return
			}
			fixed := prefix[:left]
			param := prefix[left+1 : right]
			if !paramNameRe.MatchString(param) {
				err = fmt.Errorf("path format error: %s", ep.Path)
				return
			}
			prefix = prefix[right+1:]
			tree.fixedPaths = append(tree.fixedPaths, fixed)
			tree.pathParams = append(tree.pathParams, param)
			left = strings.Index(prefix, "{")
			right = strings.Index(prefix, "}")
		}
		if prefix != "" {
			tree.fixedPaths = append(tree.fixedPaths, prefix)
		}
	}
	idx := n.findChild(tree.prefix)
	if idx != -1 {
		// Same prefix already present, merge into it
		tmp := n.children[idx]
		tmp.isStop = tree.isStop || tmp.isStop
		for method, e := range tree.endpoints {
			if tmp.endpoints == nil {
				tmp.endpoints = map[string]*Endpoint{}
			}
			tmp.endpoints[method] = e
		}
		tree = tmp
	}
	if other != "" {
		if err = tree.add(other, ep); err != nil {
			return
		}
	}
	if idx == -1 {
		n.children = append(n.children, tree)
	}
	return
}

func (n *pathNode) findChild(prefix string) int {
	for k, v := range n.children {
		if v.prefix == prefix {
			return k
		}
	}
	return -1
}

// find walks a concrete URL path and reports the endpoints of the matched
// template node together with extracted path parameter values.
func (n *pathNode) find(urlPath string) (endpoints map[string]*Endpoint, params map[string]string, exists bool) {
	if urlPath == "" {
		return
	}
	oldPrefix, other := n.getPrefix(urlPath)
out:
	for _, v := range n.children {
		prefix := oldPrefix
		params = map[string]string{}
		if v.isExact && prefix == v.prefix {
			if other != "" {
				if childEndpoints, childParams, childExists := v.find(other); childExists {
					for key, val := range childParams {
						params[key] = val
					}
					endpoints = childEndpoints
					exists = true
					return
				}
				continue
			}
			if v.isStop {
				endpoints = v.endpoints
				exists = true
				return
			}
		}
		if !v.isExact {
			// Fuzzy matching walks fixed fragments left to right; the text
			// between two fragments is the previous parameter's value.
			fixLeft := 0
			paramLeft := -1
			for fixLeft < len(v.fixedPaths) && paramLeft < len(v.pathParams) {
				idx := strings.Index(prefix, v.fixedPaths[fixLeft])
				if idx == -1 {
					params = nil
					continue out
				}
				if paramLeft != -1 {
					params[v.pathParams[paramLeft]] = prefix[:idx]
				}
				prefix = prefix[idx+len(v.fixedPaths[fixLeft]):]
				fixLeft++
				paramLeft++
			}
			if fixLeft < len(v.fixedPaths) {
				idx := strings.Index(prefix, v.fixedPaths[fixLeft])
				if idx == -1 {
					params = nil
					continue out
				}
				params[v.pathParams[paramLeft]] = prefix[:idx]
				fixLeft++
				paramLeft++
			} else if paramLeft < len(v.pathParams) && paramLeft != -1 {
				params[v.pathParams[paramLeft]] = prefix
				paramLeft++
			}
			if fixLeft == len(v.fixedPaths) && paramLeft == len(v.pathParams) {
				if other != "" {
					if childEndpoints, childParams, childExists := v.find(other); childExists {
						for key, val := range childParams {
							params[key] = val
						}
						endpoints = childEndpoints
						exists = true
						return
					}
					continue
				}
				if v.isStop {
					endpoints = v.endpoints
					exists = true
					return
				}
			}
		}
	}
	return
}
