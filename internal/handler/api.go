package handler

import (
	"github.com/arcanalog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	journal  *service.JournalService
	journeys *service.JourneyService
	patterns *service.PatternService
	prefs    *service.PreferenceService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, statsCacheSize int) (*API, error) {
	journal := service.NewJournalService(gdb)
	prefs := service.NewPreferenceService(gdb)

	journeys, err := service.NewJourneyService(journal, prefs, statsCacheSize)
	if err != nil {
		return nil, err
	}

	return &API{
		db:       gdb,
		journal:  journal,
		journeys: journeys,
		patterns: service.NewPatternService(gdb),
		prefs:    prefs,
	}, nil
}
