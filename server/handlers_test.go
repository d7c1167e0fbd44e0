package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokerlabs/holdemd/domain"
	"github.com/pokerlabs/holdemd/server/connection"
)

func newTestRouter(t *testing.T) (*CommandRouter, *Coordinator, *Registry) {
	t.Helper()

	registry := NewRegistry(testLogger())
	coordinator := NewCoordinator(registry, testLogger())
	connMgr := connection.NewManager()
	router := NewCommandRouter(registry, coordinator, connMgr, testLogger())
	return router, coordinator, registry
}

func TestHandleDisconnectUnseatsPlayer(t *testing.T) {
	router, coordinator, registry := newTestRouter(t)
	table := registry.CreateTable("T", domain.DefaultTableRules())

	require.NoError(t, coordinator.Do(table.ID, func(tbl *domain.Table) error {
		return tbl.Seat("p1", "Alice")
	}))
	require.NoError(t, coordinator.Do(table.ID, func(tbl *domain.Table) error {
		return tbl.Seat("p2", "Bob")
	}))

	client := &connection.Client{
		ID:       "c1",
		Send:     make(chan []byte, 16),
		PlayerID: "p1",
		TableIDs: []string{table.ID},
	}
	router.HandleDisconnect(client)

	require.NoError(t, coordinator.Do(table.ID, func(tbl *domain.Table) error {
		assert.Nil(t, tbl.GetPlayer("p1"), "dropped connection must free its seat")
		assert.NotNil(t, tbl.GetPlayer("p2"))
		return nil
	}))
}

func TestHandleDisconnectMidHandFoldsPlayer(t *testing.T) {
	router, coordinator, registry := newTestRouter(t)
	table := registry.CreateTable("T", domain.DefaultTableRules())

	require.NoError(t, coordinator.Do(table.ID, func(tbl *domain.Table) error {
		if err := tbl.Seat("p1", "Alice"); err != nil {
			return err
		}
		if err := tbl.Seat("p2", "Bob"); err != nil {
			return err
		}
		return tbl.StartHand()
	}))

	client := &connection.Client{
		ID:       "c1",
		Send:     make(chan []byte, 16),
		PlayerID: "p1",
		TableIDs: []string{table.ID},
	}
	router.HandleDisconnect(client)

	// heads-up, the departure folds p1 and the hand settles for p2
	require.NoError(t, coordinator.Do(table.ID, func(tbl *domain.Table) error {
		assert.Nil(t, tbl.GetPlayer("p1"))
		assert.Equal(t, domain.PhaseShowdown, tbl.Phase)
		assert.True(t, tbl.GetPlayer("p2").Winner)
		return nil
	}))
}

func TestHandleDisconnectAnonymousViewer(t *testing.T) {
	router, coordinator, registry := newTestRouter(t)
	table := registry.CreateTable("T", domain.DefaultTableRules())

	require.NoError(t, coordinator.Do(table.ID, func(tbl *domain.Table) error {
		return tbl.Seat("p1", "Alice")
	}))

	// a connection that never claimed a player identity leaves no trace
	client := &connection.Client{
		ID:       "c1",
		Send:     make(chan []byte, 16),
		TableIDs: []string{table.ID},
	}
	router.HandleDisconnect(client)

	require.NoError(t, coordinator.Do(table.ID, func(tbl *domain.Table) error {
		assert.NotNil(t, tbl.GetPlayer("p1"))
		return nil
	}))
}
