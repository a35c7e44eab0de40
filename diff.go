package apidoc

import (
	"fmt"
	"sort"

	"github.com/goodluckxu-go/apidoc/openapi"
)

// DocumentDiff summarizes what changed between two versions of a document.
// Added and Removed list endpoints as "METHOD /path" keys.
type DocumentDiff struct {
	OldVersion string           `json:"old_version"`
	NewVersion string           `json:"new_version"`
	Added      []string         `json:"added,omitempty"`
	Removed    []string         `json:"removed,omitempty"`
	Changed    []EndpointChange `json:"changed,omitempty"`
}

type EndpointChange struct {
	Method  string   `json:"method"`
	Path    string   `json:"path"`
	Details []string `json:"details"`
}

func (d *DocumentDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// DiffDocuments compares two parsed documents endpoint by endpoint.
func DiffDocuments(oldDoc, newDoc *openapi.OpenAPI) (*DocumentDiff, error) {
	oldCat, err := NewCatalog(oldDoc)
	if err != nil {
		return nil, fmt.Errorf("diff old document: %w", err)
	}
	newCat, err := NewCatalog(newDoc)
	if err != nil {
		return nil, fmt.Errorf("diff new document: %w", err)
	}
	d := &DocumentDiff{
		OldVersion: docVersion(oldDoc),
		NewVersion: docVersion(newDoc),
	}
	oldByKey := map[string]*Endpoint{}
	for _, ep := range oldCat.Endpoints() {
		oldByKey[endpointKey(ep)] = ep
	}
	newByKey := map[string]*Endpoint{}
	for _, ep := range newCat.Endpoints() {
		newByKey[endpointKey(ep)] = ep
	}
	for _, ep := range newCat.Endpoints() {
		key := endpointKey(ep)
		oldEp, ok := oldByKey[key]
		if !ok {
			d.Added = append(d.Added, key)
			continue
		}
		if details := diffEndpoint(oldEp, ep); len(details) > 0 {
			d.Changed = append(d.Changed, EndpointChange{
				Method:  ep.Method,
				Path:    ep.Path,
				Details: details,
			})
		}
	}
	for _, ep := range oldCat.Endpoints() {
		if _, ok := newByKey[endpointKey(ep)]; !ok {
			d.Removed = append(d.Removed, endpointKey(ep))
		}
	}
	return d, nil
}

func endpointKey(ep *Endpoint) string {
	return ep.Method + " " + ep.Path
}

func docVersion(doc *openapi.OpenAPI) string {
	if doc == nil || doc.Info == nil {
		return ""
	}
	return doc.Info.Version
}

func diffEndpoint(oldEp, newEp *Endpoint) (details []string) {
	if oldEp.Summary != newEp.Summary {
		details = append(details, "summary changed")
	}
	if !oldEp.Deprecated && newEp.Deprecated {
		details = append(details, "now deprecated")
	}
	if oldEp.Deprecated && !newEp.Deprecated {
		details = append(details, "no longer deprecated")
	}
	added, removed := diffStringSets(paramNames(oldEp), paramNames(newEp))
	for _, name := range added {
		details = append(details, fmt.Sprintf("parameter added: %s", name))
	}
	for _, name := range removed {
		details = append(details, fmt.Sprintf("parameter removed: %s", name))
	}
	details = append(details, diffRequestSchema(oldEp.RequestSchema, newEp.RequestSchema)...)
	added, removed = diffStringSets(responseCodes(oldEp), responseCodes(newEp))
	for _, code := range added {
		details = append(details, fmt.Sprintf("response added: %s", code))
	}
	for _, code := range removed {
		details = append(details, fmt.Sprintf("response removed: %s", code))
	}
	return
}

func diffRequestSchema(oldSchema, newSchema *openapi.Schema) (details []string) {
	switch {
	case oldSchema == nil && newSchema == nil:
		return
	case oldSchema == nil:
		return []string{"request body added"}
	case newSchema == nil:
		return []string{"request body removed"}
	}
	added, removed := diffStringSets(oldSchema.Required, newSchema.Required)
	for _, name := range added {
		details = append(details, fmt.Sprintf("request required added: %s", name))
	}
	for _, name := range removed {
		details = append(details, fmt.Sprintf("request required removed: %s", name))
	}
	added, removed = diffStringSets(oldSchema.Properties.Keys(), newSchema.Properties.Keys())
	for _, name := range added {
		details = append(details, fmt.Sprintf("request property added: %s", name))
	}
	for _, name := range removed {
		details = append(details, fmt.Sprintf("request property removed: %s", name))
	}
	return
}

// diffStringSets reports entries the new list gained and lost, sorted.
func diffStringSets(oldList, newList []string) (added, removed []string) {
	for _, v := range newList {
		if !inArray(v, oldList) {
			added = append(added, v)
		}
	}
	for _, v := range oldList {
		if !inArray(v, newList) {
			removed = append(removed, v)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	return
}

func paramNames(ep *Endpoint) []string {
	var names []string
	for _, p := range ep.Parameters {
		if p != nil && p.Name != "" && !inArray(p.Name, names) {
			names = append(names, p.Name)
		}
	}
	return names
}

func responseCodes(ep *Endpoint) []string {
	codes := make([]string, 0, len(ep.Responses))
	for code := range ep.Responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
