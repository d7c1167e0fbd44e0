package server

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pokerlabs/holdemd/domain"
	"github.com/pokerlabs/holdemd/hands"
)

// ErrUnknownTable is returned for lookups of tables that do not exist.
var ErrUnknownTable = errors.New("no such table")

// Registry owns the set of live tables. It replaces the process-global room
// map of older builds with explicit creation, lookup and removal.
type Registry struct {
	mu        sync.RWMutex
	tables    map[string]*domain.Table
	evaluator hands.Evaluator
	logger    logrus.FieldLogger
}

// NewRegistry creates an empty table registry.
func NewRegistry(logger logrus.FieldLogger) *Registry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Registry{
		tables:    make(map[string]*domain.Table),
		evaluator: hands.NewEvaluator(),
		logger:    logger,
	}
}

// CreateTable creates a table with the given name and rules and registers it.
func (r *Registry) CreateTable(name string, rules domain.TableRules) *domain.Table {
	table := domain.NewTable(name, rules, r.evaluator, r.logger)

	r.mu.Lock()
	r.tables[table.ID] = table
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"table": table.ID,
		"name":  name,
	}).Info("table created")

	return table
}

// Get retrieves a table by ID.
func (r *Registry) Get(tableID string) (*domain.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table, exists := r.tables[tableID]
	if !exists {
		return nil, ErrUnknownTable
	}
	return table, nil
}

// Remove drops a table from the registry.
func (r *Registry) Remove(tableID string) {
	r.mu.Lock()
	delete(r.tables, tableID)
	r.mu.Unlock()
}

// List returns all registered tables.
func (r *Registry) List() []*domain.Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tables := make([]*domain.Table, 0, len(r.tables))
	for _, table := range r.tables {
		tables = append(tables, table)
	}
	return tables
}
