package server

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokerlabs/holdemd/domain"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRegistryCreateAndGet(t *testing.T) {
	registry := NewRegistry(testLogger())

	table := registry.CreateTable("High Stakes", domain.DefaultTableRules())
	require.NotEmpty(t, table.ID)
	assert.Equal(t, "High Stakes", table.Name)

	got, err := registry.Get(table.ID)
	require.NoError(t, err)
	assert.Same(t, table, got)
}

func TestRegistryGetUnknown(t *testing.T) {
	registry := NewRegistry(testLogger())

	_, err := registry.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestRegistryRemove(t *testing.T) {
	registry := NewRegistry(testLogger())
	table := registry.CreateTable("Short Lived", domain.DefaultTableRules())

	registry.Remove(table.ID)

	_, err := registry.Get(table.ID)
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestRegistryList(t *testing.T) {
	registry := NewRegistry(testLogger())
	assert.Empty(t, registry.List())

	a := registry.CreateTable("A", domain.DefaultTableRules())
	b := registry.CreateTable("B", domain.DefaultTableRules())

	listed := registry.List()
	require.Len(t, listed, 2)

	ids := map[string]bool{listed[0].ID: true, listed[1].ID: true}
	assert.True(t, ids[a.ID])
	assert.True(t, ids[b.ID])
}
