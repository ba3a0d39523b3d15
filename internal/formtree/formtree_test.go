package formtree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const contactsYAML = `
type: object
properties:
  contacts:
    type: array
    title: Contacts
    x-actions: [up, down, {type: remove, icon: "x"}]
    x-operations: [copy, remove]
    items:
      type: object
      properties:
        name: {type: string, title: Name}
        remove:
          type: void
          x-component: ArrayItems.Remove
          x-component-props: {icon: "del"}
        phones:
          type: array
          x-actions: false
          items:
            type: object
            properties:
              number: {type: string}
`

func TestParse_Structure(t *testing.T) {
	root, err := Parse([]byte(contactsYAML))
	require.NoError(t, err)
	require.Equal(t, KindObject, root.Kind)

	contacts := root.Properties["contacts"]
	require.True(t, contacts.IsArray())
	require.Equal(t, "Contacts", contacts.Title)
	require.NotNil(t, contacts.Items)
	require.Equal(t, KindObject, contacts.Items.Kind)

	remove := contacts.Items.Properties["remove"]
	require.Equal(t, KindVoid, remove.Kind)
	require.Equal(t, "ArrayItems.Remove", remove.DeclaredControl)
	require.Equal(t, "del", remove.PropString("icon"))
	require.Equal(t, "", remove.PropString("missing"))

	require.Equal(t, KindPrimitive, contacts.Items.Properties["name"].Kind)
}

func TestParse_Settings(t *testing.T) {
	root, err := Parse([]byte(contactsYAML))
	require.NoError(t, err)

	contacts := root.Properties["contacts"]
	require.True(t, contacts.Actions.IsList())
	require.Len(t, contacts.Actions.Values, 3)
	require.Equal(t, "up", contacts.Actions.Values[0])
	require.IsType(t, map[string]any{}, contacts.Actions.Values[2])
	require.Equal(t, []any{"copy", "remove"}, contacts.OperationsOrder.Values)

	phones := contacts.Items.Properties["phones"]
	require.True(t, phones.Actions.Present)
	require.True(t, phones.Actions.Disabled)
	require.False(t, phones.Actions.IsList())
	require.False(t, phones.OperationsOrder.Present)
}

func TestParse_TrueAndNullMeanAbsent(t *testing.T) {
	root, err := Parse([]byte("type: array\nx-actions: true\nx-operations: null\nitems: {type: string}\n"))
	require.NoError(t, err)
	require.False(t, root.Actions.Present)
	require.False(t, root.OperationsOrder.Present)
}

func TestParse_EmptyListIsPresent(t *testing.T) {
	root, err := Parse([]byte("type: array\nx-actions: []\nitems: {type: string}\n"))
	require.NoError(t, err)
	require.True(t, root.Actions.IsList())
	require.Empty(t, root.Actions.Values)
}

func TestParse_InvalidSetting(t *testing.T) {
	_, err := Parse([]byte("type: array\nx-actions: {a: b}\n"))
	require.ErrorIs(t, err, ErrInvalidSetting)

	_, err = Parse([]byte("type: array\nx-operations: maybe\n"))
	require.ErrorIs(t, err, ErrInvalidSetting)
}

func TestWalk_SortedPreOrder(t *testing.T) {
	root := &Node{Kind: KindObject, Properties: map[string]*Node{
		"b": {Name: "b", Kind: KindPrimitive},
		"a": {Name: "a", Kind: KindObject, Properties: map[string]*Node{
			"z": {Name: "z", Kind: KindPrimitive},
		}},
	}}

	var visited []string
	Walk(root, func(n *Node, depth int) bool {
		visited = append(visited, n.Name)
		return true
	})
	require.Equal(t, []string{"", "a", "z", "b"}, visited)
}

func TestWalk_SkipSubtree(t *testing.T) {
	root := &Node{Kind: KindObject, Properties: map[string]*Node{
		"list": {Name: "list", Kind: KindArray, Items: &Node{Name: "items", Kind: KindObject}},
	}}

	var visited []string
	Walk(root, func(n *Node, depth int) bool {
		visited = append(visited, n.Name)
		return !n.IsArray()
	})
	require.Equal(t, []string{"", "list"}, visited)
}

func TestFindAndArrays(t *testing.T) {
	root, err := Parse([]byte(contactsYAML))
	require.NoError(t, err)

	require.Equal(t, []string{"contacts", "contacts.items.phones"}, Arrays(root))
	require.Equal(t, "phones", Find(root, "contacts.items.phones").Name)
	require.Nil(t, Find(root, "contacts.nope.deeper"))
	require.Same(t, root, Find(root, ""))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contactsYAML), 0o600))

	root, err := LoadFile(path)
	require.NoError(t, err)
	require.Contains(t, root.Properties, "contacts")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
