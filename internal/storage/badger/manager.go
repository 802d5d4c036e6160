package badger

import (
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/config"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger.
type Manager struct {
	db     *BadgerDB
	kv     interfaces.KeyValueStorage
	logger *common.Logger
}

// NewManager creates a new Badger storage manager.
func NewManager(logger *common.Logger, cfg *config.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, cfg)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:     db,
		kv:     NewKVStorage(db, logger),
		logger: logger,
	}

	logger.Debug().Msg("Badger storage manager initialized")

	return manager, nil
}

// KeyValueStorage returns the KeyValue storage interface.
func (m *Manager) KeyValueStorage() interfaces.KeyValueStorage {
	return m.kv
}

// Close closes the database connection.
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
