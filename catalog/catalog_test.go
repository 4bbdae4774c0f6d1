package catalog

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankumardubey/hetu-sub001/common"
)

func TestAddAndLookupTable(t *testing.T) {
	c := NewCatalog()

	table, err := c.AddTable("orders", []Column{
		{Name: "id", Type: common.BigintType},
		{Name: "comment", Type: common.VarcharType},
	}, TableStatistics{RowCount: 100})
	require.NoError(t, err)
	assert.NotEqual(t, common.InvalidObjectID, table.Oid)

	byID, ok := c.Table(table.Oid)
	require.True(t, ok)
	assert.Same(t, table, byID)

	byName, ok := c.TableByName("orders")
	require.True(t, ok)
	assert.Same(t, table, byName)

	typ, ok := table.ColumnType("comment")
	require.True(t, ok)
	assert.Equal(t, common.VarcharType, typ)

	_, ok = table.ColumnType("missing")
	assert.False(t, ok)
}

func TestDuplicateTableRejected(t *testing.T) {
	c := NewCatalog()
	_, err := c.AddTable("t", nil, UnknownTableStatistics())
	require.NoError(t, err)
	_, err = c.AddTable("t", nil, UnknownTableStatistics())
	assert.Error(t, err)
}

func TestUnknownStatistics(t *testing.T) {
	assert.False(t, UnknownTableStatistics().RowCountKnown())
	assert.True(t, TableStatistics{RowCount: 0}.RowCountKnown())
}

func TestConcurrentLookups(t *testing.T) {
	c := NewCatalog()
	for i := 0; i < 32; i++ {
		_, err := c.AddTable(fmt.Sprintf("t%d", i), nil, TableStatistics{RowCount: float64(i)})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 32; i++ {
				table, ok := c.TableByName(fmt.Sprintf("t%d", i))
				assert.True(t, ok)
				assert.Equal(t, float64(i), table.Stats.RowCount)
			}
		}()
	}
	wg.Wait()
}
