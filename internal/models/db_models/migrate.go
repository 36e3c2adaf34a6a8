package db_models

// All lists every model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&Place{},
		&CompanionActivity{},
		&PlaceEmbedding{},
		&Journey{},
		&JourneyStop{},
		&SavedJourney{},
		&DiscoveredEvent{},
		&CommunityEvent{},
		&Comment{},
		&CommunitySuggestion{},
	}
}
