package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pixpilot/arrayrows/internal/actions"
	"github.com/pixpilot/arrayrows/internal/formtree"
	"github.com/pixpilot/arrayrows/internal/log"
	"github.com/pixpilot/arrayrows/internal/rowstore"
	"github.com/pixpilot/arrayrows/internal/slots"
	"github.com/pixpilot/arrayrows/internal/ui/arraysection"
	"github.com/pixpilot/arrayrows/internal/widgets"
)

const sampleRows = 3

var (
	errNoArray        = errors.New("schema has no array section")
	errNotArray       = errors.New("not an array section")
	errInvalidRows    = errors.New("rows file must hold a YAML list")
	errInvalidPattern = errors.New("invalid pattern")
)

// section is one array section of a schema file, seeded with rows.
type section struct {
	path    string
	address string
	planner arraysection.Planner
	store   *rowstore.Store
}

func addSectionFlags(c *cobra.Command) {
	c.Flags().StringP("array", "a", "",
		"dotted path of the array section (default: the first one)")
	c.Flags().String("rows", "",
		"YAML file holding the initial rows (default: the schema default or sample rows)")
	c.Flags().String("pattern", string(actions.PatternEditable),
		"array pattern: editable, disabled or readOnly")
	c.Flags().Int("max-items", 0, "maximum number of rows (0 is unlimited)")
}

// openSection loads the schema at path and builds the section the command's
// flags select.
func openSection(c *cobra.Command, path string) (*section, error) {
	address, _ := c.Flags().GetString("array")
	rowsPath, _ := c.Flags().GetString("rows")
	patternFlag, _ := c.Flags().GetString("pattern")
	maxItems, _ := c.Flags().GetInt("max-items")

	pattern, err := parsePattern(patternFlag)
	if err != nil {
		return nil, err
	}

	root, err := formtree.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	node, address, err := arrayNode(root, address)
	if err != nil {
		return nil, err
	}

	values, err := seedRows(node, rowsPath)
	if err != nil {
		return nil, err
	}

	store := rowstore.New(storeAddress(address), values,
		rowstore.WithPattern(pattern),
		rowstore.WithMaxItems(maxItems),
	)
	log.Debug(log.CatSchema, "section opened", "path", path, "address", address, "rows", len(values))

	sec := &section{path: path, address: address, store: store}
	sec.planner = arraysection.Planner{
		Root:        node,
		Array:       store,
		Registries:  slots.NewRegistryCache(widgets.Defaults(), widgets.Nodes{}),
		FormActions: cfg.Array.FormActions(),
		Ordering:    cfg.Array.Ordering(),
		Policy:      cfg.Array.Policy(),
		OnCustom:    logCustom,
	}
	return sec, nil
}

// reload re-reads the schema file and returns the same array section.
func (s *section) reload() (*formtree.Node, error) {
	root, err := formtree.LoadFile(s.path)
	if err != nil {
		return nil, err
	}
	node, _, err := arrayNode(root, s.address)
	return node, err
}

// arrayNode returns the array at address, or the first array when address
// is empty.
func arrayNode(root *formtree.Node, address string) (*formtree.Node, string, error) {
	if address == "" {
		arrays := formtree.Arrays(root)
		if len(arrays) == 0 {
			return nil, "", errNoArray
		}
		address = arrays[0]
	}
	node := formtree.Find(root, address)
	if node == nil || !node.IsArray() {
		return nil, "", fmt.Errorf("%q: %w", address, errNotArray)
	}
	return node, address, nil
}

// seedRows returns the rows of the rows file, the array's default, or a few
// fresh rows built from the item schema.
func seedRows(node *formtree.Node, rowsPath string) ([]any, error) {
	if rowsPath != "" {
		data, err := os.ReadFile(rowsPath)
		if err != nil {
			return nil, fmt.Errorf("reading rows: %w", err)
		}
		var values []any
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", rowsPath, errInvalidRows, err)
		}
		return values, nil
	}
	if list, ok := node.Default.([]any); ok {
		return list, nil
	}
	values := make([]any, sampleRows)
	for i := range values {
		values[i] = arraysection.NewRowValue(node.Items)
	}
	return values, nil
}

func parsePattern(s string) (actions.Pattern, error) {
	switch p := actions.Pattern(s); p {
	case actions.PatternEditable, actions.PatternDisabled, actions.PatternReadOnly:
		return p, nil
	}
	return "", fmt.Errorf("%w %q: want editable, disabled or readOnly", errInvalidPattern, s)
}

func storeAddress(address string) string {
	if address == "" {
		return "root"
	}
	return address
}

// logCustom is the preview's handler for custom actions without one of
// their own.
func logCustom(_ context.Context, key string, ac actions.Context) error {
	log.Info(log.CatActions, "custom action", "key", key, "index", ac.Index, "address", ac.Array.Address())
	return nil
}
