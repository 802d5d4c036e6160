package storage

import (
	"fmt"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/config"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/interfaces"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/storage/badger"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/storage/memory"
)

// NewStorageManager creates a storage manager based on config.
func NewStorageManager(logger *common.Logger, cfg *config.Config) (interfaces.StorageManager, error) {
	switch cfg.Storage.Driver {
	case "badger", "":
		return badger.NewManager(logger, &cfg.Storage.Badger)
	case "memory":
		return memory.NewManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}
