package actions

import "context"

// Pattern gates whether row operations are permitted at all.
type Pattern string

const (
	PatternEditable Pattern = "editable"
	PatternDisabled Pattern = "disabled"
	PatternReadOnly Pattern = "readOnly"
)

// ArrayField is the array section's field handle. Row operations are
// requests; they may fail and the caller decides how to report that.
type ArrayField interface {
	Len() int
	Value(i int) any
	Field(i int) Field
	Pattern() Pattern
	Address() string

	MoveUp(ctx context.Context, i int) error
	MoveDown(ctx context.Context, i int) error
	Remove(ctx context.Context, i int) error
	Insert(ctx context.Context, i int, value any) error
	Push(ctx context.Context, value any) error
	Unshift(ctx context.Context, value any) error
}

// Field is the handle of one row's field.
type Field interface {
	Disabled() bool
	Address() string
}

// Context is what predicates and handlers see for one row. It is built fresh
// for every row on every render and never kept.
type Context struct {
	Index     int
	Record    any
	Array     ArrayField
	ItemField Field
}

// NewContext builds the context of row i of arr. It returns nil when there is
// no such row, which makes resolution yield an empty list for it.
func NewContext(arr ArrayField, i int) *Context {
	if arr == nil || i < 0 || i >= arr.Len() {
		return nil
	}
	return &Context{
		Index:     i,
		Record:    arr.Value(i),
		Array:     arr,
		ItemField: arr.Field(i),
	}
}

func (ac Context) editable() bool {
	return ac.Array != nil && ac.Array.Pattern() == PatternEditable
}

func (ac Context) fieldDisabled() bool {
	return ac.ItemField != nil && ac.ItemField.Disabled()
}

func (ac Context) isFirst() bool {
	return ac.Index == 0
}

func (ac Context) isLast() bool {
	return ac.Array == nil || ac.Index >= ac.Array.Len()-1
}
