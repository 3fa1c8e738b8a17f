// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lmscatalog/internal/platform/memstore"
)

type node struct {
	ID        int64
	ParentID  int64
	Label     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var nodeMeta = memstore.Meta[node]{
	ID:      func(n *node) int64 { return n.ID },
	SetID:   func(n *node, id int64) { n.ID = id },
	Created: func(n *node) time.Time { return n.CreatedAt },
	Stamp: func(n *node, created, updated time.Time) {
		n.CreatedAt, n.UpdatedAt = created, updated
	},
}

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestTable_InsertAssignsIdentity(t *testing.T) {
	db := memstore.New(memstore.WithClock(tickingClock()))
	table := memstore.NewTable(db, "node", nodeMeta)

	first := node{Label: "a"}
	second := node{Label: "b"}
	require.NoError(t, db.Update(func() error {
		table.Insert(&first)
		table.Insert(&second)
		return nil
	}))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
}

func TestTable_SaveKeepsCreationTime(t *testing.T) {
	db := memstore.New(memstore.WithClock(tickingClock()))
	table := memstore.NewTable(db, "node", nodeMeta)

	row := node{Label: "a"}
	_ = db.Update(func() error { table.Insert(&row); return nil })
	created := row.CreatedAt

	row.Label = "renamed"
	_ = db.Update(func() error { table.Save(&row); return nil })

	var stored node
	db.View(func() { stored, _ = table.Get(row.ID) })

	assert.Equal(t, "renamed", stored.Label)
	assert.Equal(t, created, stored.CreatedAt)
	assert.True(t, stored.UpdatedAt.After(created))
}

func TestTable_SaveUnknownIDInsertsFreshRow(t *testing.T) {
	db := memstore.New()
	table := memstore.NewTable(db, "node", nodeMeta)

	row := node{ID: 42, Label: "ghost"}
	_ = db.Update(func() error { table.Save(&row); return nil })

	assert.Equal(t, int64(1), row.ID)
	db.View(func() { assert.False(t, table.Has(42)) })
}

func TestTable_ReplaceMissingWritesNothing(t *testing.T) {
	db := memstore.New()
	table := memstore.NewTable(db, "node", nodeMeta)

	var replaced bool
	_ = db.Update(func() error {
		replaced = table.Replace(&node{ID: 9, Label: "x"})
		return nil
	})

	assert.False(t, replaced)
	db.View(func() { assert.Zero(t, table.Len()) })
}

func TestTable_CascadeAndReferences(t *testing.T) {
	db := memstore.New()
	parents := memstore.NewTable(db, "parent", nodeMeta)
	children := memstore.NewTable(db, "child", nodeMeta)
	grandchildren := memstore.NewTable(db, "grandchild", nodeMeta)

	children.CascadeFrom("parent", func(n *node) int64 { return n.ParentID })
	grandchildren.CascadeFrom("child", func(n *node) int64 { return n.ParentID })

	err := db.Update(func() error {
		return children.References("parent", 1)
	})
	assert.ErrorIs(t, err, memstore.ErrForeignKey)

	_ = db.Update(func() error {
		p := node{}
		parents.Insert(&p)
		c := node{ParentID: p.ID}
		children.Insert(&c)
		g := node{ParentID: c.ID}
		grandchildren.Insert(&g)
		other := node{}
		parents.Insert(&other)
		kept := node{ParentID: other.ID}
		children.Insert(&kept)
		return nil
	})

	_ = db.Update(func() error {
		assert.True(t, parents.Delete(1))
		assert.False(t, parents.Delete(1))
		return nil
	})

	db.View(func() {
		assert.Equal(t, 1, parents.Len())
		assert.Equal(t, 1, children.Len())
		assert.Zero(t, grandchildren.Len())
	})
}

func TestTable_FirstPicksLowestID(t *testing.T) {
	db := memstore.New()
	table := memstore.NewTable(db, "node", nodeMeta)

	_ = db.Update(func() error {
		for _, label := range []string{"dup", "other", "dup"} {
			row := node{Label: label}
			table.Insert(&row)
		}
		return nil
	})

	var found node
	var ok bool
	db.View(func() {
		found, ok = table.First(func(n *node) bool { return n.Label == "dup" })
	})

	require.True(t, ok)
	assert.Equal(t, int64(1), found.ID)
}
