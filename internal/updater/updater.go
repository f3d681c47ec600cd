// Package updater rewrites the model lists of a LibreChat style config file.
//
// Only endpoints.<builtin>.models.default, endpoints.<builtin>.titleModel and
// the same two fields of endpoints.custom[] entries are ever touched. The rest
// of the document goes through a yaml.v3 node tree and keeps its key order
// and comments.
package updater

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"arenasync/internal/core"

	"gopkg.in/yaml.v3"
)

const (
	fieldModelsDefault = core.FieldModels + "." + core.FieldDefault
	customLabelPrefix  = core.FieldCustom + "/"
)

// Result is the outcome of one update.
type Result struct {
	Changed bool
	Changes []core.Change
}

// Updater applies provider model groups to a config file
type Updater struct {
	builtins []string
	logger   core.Logger
}

// NewUpdater creates a new Updater. Empty builtins falls back to the default set.
func NewUpdater(builtins []string, logger core.Logger) *Updater {
	if len(builtins) == 0 {
		builtins = core.DefaultBuiltinEndpoints
	}
	if logger == nil {
		logger = &core.NopLogger{}
	}
	return &Updater{builtins: append([]string(nil), builtins...), logger: logger}
}

// Update applies the group and writes the file back when a touched field changed.
// An unchanged document is not rewritten, so its bytes stay identical.
func (u *Updater) Update(path string, group *core.ProviderModelGroup) (Result, error) {
	before, doc, changes, err := u.plan(path, group)
	if err != nil {
		return Result{}, err
	}
	if len(changes) == 0 {
		u.logger.Debug("No model list changes for %s", path)
		return Result{}, nil
	}

	out, err := EncodeDocument(doc)
	if err != nil {
		return Result{}, err
	}

	mode := os.FileMode(core.FilePermissionReadWrite)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, out, mode); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", path, err)
	}

	after, err := os.ReadFile(path) //nolint:gosec // G304: path from config, not user input
	if err != nil {
		return Result{}, fmt.Errorf("failed to read back %s: %w", path, err)
	}
	if _, err := ParseDocument(after); err != nil {
		return Result{}, fmt.Errorf("written config %s does not parse: %w", path, err)
	}

	u.logger.Info("Wrote %d model list changes to %s", len(changes), path)
	return Result{Changed: !bytes.Equal(before, after), Changes: changes}, nil
}

// Plan computes the changes Update would make without writing anything.
func (u *Updater) Plan(path string, group *core.ProviderModelGroup) (Result, error) {
	_, _, changes, err := u.plan(path, group)
	if err != nil {
		return Result{}, err
	}
	return Result{Changed: len(changes) > 0, Changes: changes}, nil
}

func (u *Updater) plan(path string, group *core.ProviderModelGroup) ([]byte, *yaml.Node, []core.Change, error) {
	before, err := os.ReadFile(path) //nolint:gosec // G304: path from config, not user input
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := ParseDocument(before)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if lookup(doc.Content[0], core.FieldEndpoints) == nil {
		u.logger.Warn("%s has no %s section, nothing to update", path, core.FieldEndpoints)
	}

	return before, doc, Apply(doc, group, u.builtins), nil
}

// Apply mutates the document in place and returns every leaf that changed.
// Endpoints without a matching non-empty group, and groups without a matching
// endpoint, are left alone. Anchored or aliased nodes on the edit path are
// detached first, so other users of the same anchor keep their values.
func Apply(doc *yaml.Node, group *core.ProviderModelGroup, builtins []string) []core.Change {
	if doc == nil || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	endpoints := lookup(root, core.FieldEndpoints)
	if endpoints == nil || endpoints.Kind != yaml.MappingNode {
		return nil
	}

	var changes []core.Change

	for _, name := range builtins {
		endpoint := lookup(lookup(root, core.FieldEndpoints), name)
		ids := group.Models(name)
		if endpoint == nil || endpoint.Kind != yaml.MappingNode || len(ids) == 0 {
			continue
		}
		found, style := diffModels(name, endpoint, ids)
		if len(found) == 0 {
			continue
		}
		endpoint = own(doc, own(doc, root, core.FieldEndpoints), name)
		writeModels(doc, endpoint, ids, style, found)
		changes = append(changes, found...)
	}

	custom := lookup(lookup(root, core.FieldEndpoints), core.FieldCustom)
	if custom == nil || custom.Kind != yaml.SequenceNode {
		return changes
	}
	for i := range custom.Content {
		endpoint := resolveAlias(custom.Content[i])
		if endpoint == nil || endpoint.Kind != yaml.MappingNode {
			continue
		}
		nameNode := lookup(endpoint, core.FieldName)
		if nameNode == nil || nameNode.Kind != yaml.ScalarNode {
			continue
		}
		ids := group.Models(nameNode.Value)
		if len(ids) == 0 {
			continue
		}
		found, style := diffModels(customLabelPrefix+nameNode.Value, endpoint, ids)
		if len(found) == 0 {
			continue
		}
		custom = own(doc, own(doc, root, core.FieldEndpoints), core.FieldCustom)
		custom.Content[i] = detach(doc, custom.Content[i])
		writeModels(doc, custom.Content[i], ids, style, found)
		changes = append(changes, found...)
	}

	return changes
}

// diffModels lists the changes that setting models.default to ids would make,
// plus titleModel set to the last id when there is more than one. style is the
// sequence style to keep for the new list. The endpoint is not modified.
func diffModels(label string, endpoint *yaml.Node, ids []string) ([]core.Change, yaml.Style) {
	var changes []core.Change

	current := lookup(lookup(endpoint, core.FieldModels), core.FieldDefault)
	oldIDs, isList := scalarValues(current)
	style := yaml.Style(0)
	if isList {
		style = current.Style
	}
	if !isList || !slices.Equal(oldIDs, ids) {
		changes = append(changes, core.Change{
			Endpoint: label,
			Field:    fieldModelsDefault,
			Old:      strings.Join(oldIDs, ", "),
			New:      strings.Join(ids, ", "),
		})
	}

	if len(ids) < 2 {
		return changes, style
	}

	title := ids[len(ids)-1]
	titleNode := lookup(endpoint, core.FieldTitleModel)
	if titleNode != nil && titleNode.Kind == yaml.ScalarNode && titleNode.ShortTag() == "!!str" && titleNode.Value == title {
		return changes, style
	}

	old := ""
	if titleNode != nil && titleNode.Kind == yaml.ScalarNode && titleNode.ShortTag() != "!!null" {
		old = titleNode.Value
	}
	changes = append(changes, core.Change{
		Endpoint: label,
		Field:    core.FieldTitleModel,
		Old:      old,
		New:      title,
	})

	return changes, style
}

// writeModels applies changes from diffModels to an endpoint that is safe to edit.
func writeModels(doc, endpoint *yaml.Node, ids []string, style yaml.Style, changes []core.Change) {
	for _, c := range changes {
		switch c.Field {
		case fieldModelsDefault:
			models := own(doc, endpoint, core.FieldModels)
			if models == nil || models.Kind != yaml.MappingNode {
				models = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
				set(doc, endpoint, core.FieldModels, models)
			}
			set(doc, models, core.FieldDefault, sequenceNode(ids, style))
		case core.FieldTitleModel:
			set(doc, endpoint, core.FieldTitleModel, stringNode(c.New))
		}
	}
}
