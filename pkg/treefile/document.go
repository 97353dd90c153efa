package treefile

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vrender/internal/errors"
)

// Document is a parsed tree file.
type Document struct {
	Name       string                    `yaml:"name"`
	Version    string                    `yaml:"version,omitempty"`
	Root       string                    `yaml:"root"`
	Title      string                    `yaml:"title,omitempty"`
	Provide    map[string]any            `yaml:"provide,omitempty"`
	Components map[string]*ComponentSpec `yaml:"components"`
}

// ComponentSpec defines one component.
type ComponentSpec struct {
	State  map[string]any `yaml:"state,omitempty"`
	Render *NodeSpec      `yaml:"render"`
}

// NodeSpec is an element or a reference to a component.
type NodeSpec struct {
	Tag       string      `yaml:"tag,omitempty"`
	Text      string      `yaml:"text,omitempty"`
	Children  []*NodeSpec `yaml:"children,omitempty"`
	Component string      `yaml:"component,omitempty"`
	If        string      `yaml:"if,omitempty"`
}

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Parse decodes and validates a tree file.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("E040").Wrap(err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses the tree file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E040").WithDetailf("failed to read %s", path).Wrap(err)
	}
	doc, err := Parse(data)
	if err != nil {
		var e *errors.Error
		if errors.As(err, &e) {
			e.Detail = path + ": " + e.Detail
		}
		return nil, err
	}
	return doc, nil
}

// ComponentNames returns the defined component names, sorted.
func (d *Document) ComponentNames() []string {
	names := make([]string, 0, len(d.Components))
	for name := range d.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that the root exists, that every node is either an
// element or a known component, and that every placeholder and condition
// names a state key of its component.
func (d *Document) Validate() error {
	if d.Root == "" {
		return errors.New("E041").WithDetail("the document has no root component").
			WithSuggestion("Add a top-level root: key naming one of the components")
	}
	if _, ok := d.Components[d.Root]; !ok {
		return errors.New("E041").WithComponent(d.Root).
			WithSuggestion(fmt.Sprintf("Define %s under components:", d.Root))
	}

	for _, name := range d.ComponentNames() {
		spec := d.Components[name]
		if spec == nil || spec.Render == nil {
			return errors.New("E042").WithComponent(name).WithDetail("component has no render tree")
		}
		if err := d.validateNode(name, spec, spec.Render); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) validateNode(owner string, spec *ComponentSpec, n *NodeSpec) error {
	switch {
	case n == nil:
		return errors.New("E042").WithComponent(owner).WithDetail("empty node")
	case n.Tag != "" && n.Component != "":
		return errors.New("E042").WithComponent(owner).
			WithDetailf("node sets both tag %q and component %q", n.Tag, n.Component)
	case n.Tag == "" && n.Component == "":
		return errors.New("E042").WithComponent(owner).WithDetail("node sets neither tag nor component")
	case n.Component != "":
		if _, ok := d.Components[n.Component]; !ok {
			return errors.New("E041").WithComponent(n.Component).WithDetailf("referenced from %s", owner)
		}
		if n.Text != "" || len(n.Children) > 0 {
			return errors.New("E042").WithComponent(owner).
				WithDetailf("component node %q cannot have text or children", n.Component)
		}
	case n.Text != "" && len(n.Children) > 0:
		return errors.New("E042").WithComponent(owner).
			WithDetailf("<%s> has both text and children", n.Tag)
	}

	if n.If != "" {
		if _, ok := spec.State[n.If]; !ok {
			return errors.New("E043").WithComponent(owner).WithDetailf("if: %s", n.If)
		}
	}
	for _, m := range placeholder.FindAllStringSubmatch(n.Text, -1) {
		if _, ok := spec.State[m[1]]; !ok {
			return errors.New("E043").WithComponent(owner).WithDetailf("{{ %s }}", m[1])
		}
	}
	for _, child := range n.Children {
		if err := d.validateNode(owner, spec, child); err != nil {
			return err
		}
	}
	return nil
}
