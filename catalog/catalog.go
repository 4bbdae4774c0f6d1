package catalog

import (
	"fmt"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/rohankumardubey/hetu-sub001/common"
)

// Catalog holds table metadata consumed by the planner. It is the only
// state shared between concurrent planning sessions, so lookups go through
// concurrent maps; everything reachable from a Table is immutable once
// registered.
//
// The catalog is deliberately transient and in-memory: the optimizer core
// treats metadata as supplied by an external metadata service, and this
// type is the in-process face of that collaborator.
type Catalog struct {
	nextID atomic.Uint32

	tablesByID   *xsync.MapOf[common.ObjectID, *Table]
	tablesByName *xsync.MapOf[string, *Table]
}

// Column represents the basic unit of a table schema.
type Column struct {
	Name string
	Type common.Type
}

// TableStatistics carries the base statistics an external analyzer has
// collected for a table. RowCount < 0 means the table has never been
// analyzed and its cardinality is unknown.
type TableStatistics struct {
	RowCount float64
}

// UnknownTableStatistics returns the statistics of an unanalyzed table.
func UnknownTableStatistics() TableStatistics {
	return TableStatistics{RowCount: -1}
}

func (s TableStatistics) RowCountKnown() bool {
	return s.RowCount >= 0
}

// Table is the primary metadata structure: a schema plus base statistics
// under a unique ObjectID.
type Table struct {
	Oid     common.ObjectID
	Name    string
	Columns []Column
	Stats   TableStatistics
}

func (t *Table) String() string {
	return fmt.Sprintf("Table(%d, %s, %d columns)", t.Oid, t.Name, len(t.Columns))
}

// ColumnType returns the declared type of the named column.
func (t *Table) ColumnType(name string) (common.Type, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c.Type, true
		}
	}
	return common.UnknownType, false
}

func NewCatalog() *Catalog {
	return &Catalog{
		tablesByID:   xsync.NewMapOf[common.ObjectID, *Table](),
		tablesByName: xsync.NewMapOf[string, *Table](),
	}
}

// AddTable registers a new table and assigns it a globally unique ObjectID.
// Registration happens before planning starts (tests, embedding hosts);
// planning itself only reads.
func (c *Catalog) AddTable(name string, columns []Column, stats TableStatistics) (*Table, error) {
	t := &Table{
		// oid 0 is reserved for INVALID
		Oid:     common.ObjectID(c.nextID.Add(1)),
		Name:    name,
		Columns: columns,
		Stats:   stats,
	}
	if _, loaded := c.tablesByName.LoadOrStore(name, t); loaded {
		return nil, fmt.Errorf("table '%s' already exists", name)
	}
	c.tablesByID.Store(t.Oid, t)
	return t, nil
}

// Table fetches the metadata for a specific table id.
func (c *Catalog) Table(oid common.ObjectID) (*Table, bool) {
	return c.tablesByID.Load(oid)
}

// TableByName fetches the metadata for a specific table name.
func (c *Catalog) TableByName(name string) (*Table, bool) {
	return c.tablesByName.Load(name)
}
