package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindComponent, "Component"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChildrenKindString(t *testing.T) {
	if ChildrenText.String() != "Text" || ChildrenNodes.String() != "Nodes" || ChildrenNone.String() != "None" {
		t.Error("unexpected ChildrenKind names")
	}
}

type fakeInstance struct{ name string }

func (f *fakeInstance) Name() string    { return f.name }
func (f *fakeInstance) IsMounted() bool { return false }

func TestSetElIsWriteOnce(t *testing.T) {
	node := Element("div")
	a, b := new(int), new(int)

	if err := node.SetEl(a); err != nil {
		t.Fatalf("first SetEl: %v", err)
	}
	if err := node.SetEl(a); err != nil {
		t.Errorf("re-assigning the same node should be allowed: %v", err)
	}
	if err := node.SetEl(b); err == nil {
		t.Error("assigning a different host node should fail")
	}
	if node.El() != a {
		t.Error("El() should keep the first node")
	}
	if !node.IsMounted() {
		t.Error("IsMounted() should be true after SetEl")
	}
}

func TestSetComponentIsWriteOnce(t *testing.T) {
	node := Comp(&Definition{Name: "App"})
	first := &fakeInstance{name: "App"}

	if err := node.SetComponent(first); err != nil {
		t.Fatalf("first SetComponent: %v", err)
	}
	if err := node.SetComponent(&fakeInstance{name: "App"}); err == nil {
		t.Error("second instance should be refused")
	}
	if node.Component() != first {
		t.Error("Component() should return the first instance")
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want string
	}{
		{"nil", nil, ""},
		{"element", Element("ul"), "ul"},
		{"component", Comp(&Definition{Name: "Counter"}), "Counter"},
		{"anonymous component", Comp(&Definition{}), "Anonymous"},
		{"component without def", &VNode{Kind: KindComponent}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetTextAndChildrenSwitchShape(t *testing.T) {
	node := Element("p").SetChildren(Element("b"))
	node.SetText("hi")
	if node.ChildrenKind != ChildrenText || node.Children != nil || node.Text != "hi" {
		t.Errorf("SetText left %+v", node)
	}
	node.SetChildren(Element("i"))
	if node.ChildrenKind != ChildrenNodes || node.Text != "" || len(node.Children) != 1 {
		t.Errorf("SetChildren left %+v", node)
	}
}

func TestWalk(t *testing.T) {
	tree := Div(
		H1("Title"),
		Ul(Li("a"), Li("b")),
	)

	var tags []string
	var depths []int
	Walk(tree, func(n *VNode, depth int) bool {
		tags = append(tags, n.Tag)
		depths = append(depths, depth)
		return true
	})

	wantTags := []string{"div", "h1", "ul", "li", "li"}
	wantDepths := []int{0, 1, 1, 2, 2}
	if len(tags) != len(wantTags) {
		t.Fatalf("visited %v, want %v", tags, wantTags)
	}
	for i := range wantTags {
		if tags[i] != wantTags[i] || depths[i] != wantDepths[i] {
			t.Errorf("visit %d = %s@%d, want %s@%d", i, tags[i], depths[i], wantTags[i], wantDepths[i])
		}
	}

	visited := 0
	Walk(tree, func(n *VNode, depth int) bool {
		visited++
		return n.Tag != "ul"
	})
	if visited != 3 {
		t.Errorf("pruned walk visited %d nodes, want 3", visited)
	}
}
