package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/pixpilot/arrayrows/internal/actions"
	"github.com/pixpilot/arrayrows/internal/config"
	"github.com/pixpilot/arrayrows/internal/formtree"
)

const formSchema = `
type: object
properties:
  title: {type: string}
  team:
    type: object
    properties:
      members:
        type: array
        title: Members
        default:
          - {name: Ann}
          - {name: Bob}
        items:
          type: object
          properties:
            name: {type: string, default: New}
            remove: {type: void, x-component: ArrayItems.Remove, title: Delete}
  tags:
    type: array
    items: {type: string}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// sectionCommand builds a command carrying the section flags, set from
// flags.
func sectionCommand(t *testing.T, flags map[string]string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	c := &cobra.Command{}
	addSectionFlags(c)
	c.Flags().StringP("format", "f", "text", "")
	c.Flags().Int("width", 100, "")
	for name, value := range flags {
		require.NoError(t, c.Flags().Set(name, value))
	}
	var out bytes.Buffer
	c.SetOut(&out)
	return c, &out
}

func withConfig(t *testing.T, c config.Config) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func TestArrayNode(t *testing.T) {
	root, err := formtree.Parse([]byte(formSchema))
	require.NoError(t, err)

	node, address, err := arrayNode(root, "")
	require.NoError(t, err)
	require.Equal(t, "tags", address, "arrays are found in property name order")
	require.True(t, node.IsArray())

	node, address, err = arrayNode(root, "team.members")
	require.NoError(t, err)
	require.Equal(t, "team.members", address)
	require.Equal(t, "Members", node.Title)

	_, _, err = arrayNode(root, "title")
	require.ErrorIs(t, err, errNotArray)

	_, _, err = arrayNode(root, "missing.path")
	require.ErrorIs(t, err, errNotArray)

	flat, err := formtree.Parse([]byte("type: object\nproperties:\n  a: {type: string}\n"))
	require.NoError(t, err)
	_, _, err = arrayNode(flat, "")
	require.ErrorIs(t, err, errNoArray)
}

func TestSeedRows(t *testing.T) {
	root, err := formtree.Parse([]byte(formSchema))
	require.NoError(t, err)
	members := formtree.Find(root, "team.members")

	values, err := seedRows(members, "")
	require.NoError(t, err)
	require.Equal(t, []any{map[string]any{"name": "Ann"}, map[string]any{"name": "Bob"}}, values)

	values, err = seedRows(formtree.Find(root, "tags"), "")
	require.NoError(t, err)
	require.Len(t, values, sampleRows)

	rows := writeFile(t, "rows.yaml", "- {name: Cid}\n")
	values, err = seedRows(members, rows)
	require.NoError(t, err)
	require.Equal(t, []any{map[string]any{"name": "Cid"}}, values)

	bad := writeFile(t, "bad.yaml", "name: Cid\n")
	_, err = seedRows(members, bad)
	require.ErrorIs(t, err, errInvalidRows)

	_, err = seedRows(members, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParsePattern(t *testing.T) {
	p, err := parsePattern("readOnly")
	require.NoError(t, err)
	require.Equal(t, actions.PatternReadOnly, p)

	_, err = parsePattern("readonly")
	require.ErrorIs(t, err, errInvalidPattern)
}

func TestSchemaArg(t *testing.T) {
	withConfig(t, config.Config{})
	_, err := schemaArg(nil)
	require.Error(t, err)

	path, err := schemaArg([]string{"form.yaml"})
	require.NoError(t, err)
	require.Equal(t, "form.yaml", path)

	cfg.Schema = "default.yaml"
	path, err = schemaArg(nil)
	require.NoError(t, err)
	require.Equal(t, "default.yaml", path)
}

func TestOpenSection(t *testing.T) {
	withConfig(t, config.Config{Array: config.ArrayConfig{Operations: []string{"copy"}}})
	schema := writeFile(t, "form.yaml", formSchema)
	c, _ := sectionCommand(t, map[string]string{"array": "team.members", "max-items": "2"})

	sec, err := openSection(c, schema)
	require.NoError(t, err)
	t.Cleanup(sec.store.Close)

	require.Equal(t, "team.members", sec.store.Address())
	require.Equal(t, 2, sec.store.Len())

	plan := sec.planner.Plan(0)
	var keys []string
	for _, in := range plan.Controls() {
		keys = append(keys, in.Key)
	}
	require.Equal(t, []string{"up", "down", "remove", "copy"}, keys)

	// Copy fails once the section is full.
	err = plan.Operations[0].Activate(t.Context())
	require.Error(t, err)

	require.NoError(t, os.WriteFile(schema, []byte(`
type: object
properties:
  team:
    type: object
    properties:
      members:
        type: array
        x-actions: false
        items: {type: object}
`), 0o644))
	node, err := sec.reload()
	require.NoError(t, err)
	require.True(t, node.Actions.Disabled)
}

func TestOpenSection_Errors(t *testing.T) {
	withConfig(t, config.Config{})
	schema := writeFile(t, "form.yaml", formSchema)

	c, _ := sectionCommand(t, map[string]string{"pattern": "locked"})
	_, err := openSection(c, schema)
	require.ErrorIs(t, err, errInvalidPattern)

	c, _ = sectionCommand(t, map[string]string{"array": "title"})
	_, err = openSection(c, schema)
	require.ErrorIs(t, err, errNotArray)

	c, _ = sectionCommand(t, nil)
	_, err = openSection(c, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRunResolve(t *testing.T) {
	withConfig(t, config.Config{})
	schema := writeFile(t, "form.yaml", formSchema)

	c, out := sectionCommand(t, map[string]string{"array": "team.members", "pattern": "readOnly"})
	require.NoError(t, runResolve(c, []string{schema}))
	text := ansi.Strip(out.String())
	require.Contains(t, text, "team.members (2 rows)")
	require.Contains(t, text, "name: Ann")
	require.NotContains(t, text, "remove(")

	c, out = sectionCommand(t, map[string]string{"array": "team.members", "format": "markdown"})
	require.NoError(t, runResolve(c, []string{schema}))
	require.Contains(t, ansi.Strip(out.String()), "remove(declared)")

	c, _ = sectionCommand(t, map[string]string{"array": "team.members", "format": "json"})
	require.ErrorContains(t, runResolve(c, []string{schema}), "unknown format")
}

func TestRunSlots(t *testing.T) {
	withConfig(t, config.Config{})
	schema := writeFile(t, "form.yaml", formSchema)

	c, out := sectionCommand(t, map[string]string{"array": "team.members"})
	require.NoError(t, runSlots(c, []string{schema}))
	text := ansi.Strip(out.String())
	require.Contains(t, text, "declared remove")
	require.Contains(t, text, "operations: Remove")
}

func TestRunTheme(t *testing.T) {
	path := writeFile(t, "config.yaml", config.DefaultConfigTemplate())
	v.SetConfigFile(path)
	t.Cleanup(func() { v.SetConfigFile("") })

	c := &cobra.Command{}
	var out bytes.Buffer
	c.SetOut(&out)

	require.NoError(t, runTheme(c, nil))
	require.Contains(t, out.String(), "dracula")
	require.Contains(t, out.String(), "high-contrast")

	out.Reset()
	require.NoError(t, runTheme(c, []string{"nord"}))
	require.Contains(t, out.String(), "theme nord saved")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "preset: nord")

	require.ErrorContains(t, runTheme(c, []string{"solarized"}), "unknown theme preset")
}

func TestRootCommand_Subcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	require.Subset(t, names, []string{"resolve", "slots", "theme"})
}
