package config

import (
	"pdf-annotator/internal/domain"
	"pdf-annotator/internal/repository"
	"pdf-annotator/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config              domain.Config
	Logger              domain.Logger
	SupabaseClient      domain.SupabaseClient
	HighlightRepository domain.FileHighlightRepository
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	container := &Container{
		Config: config,
		Logger: appLogger,
	}

	// Persist highlight sets in Supabase when a project is configured,
	// otherwise fall back to process memory for local development.
	if config.GetSupabaseURL() != "" && config.GetSupabaseKey() != "" {
		supabaseClient := repository.NewSupabaseClient(config, appLogger)
		if err := supabaseClient.Initialize(); err != nil {
			appLogger.Error("Failed to initialize Supabase, using in-memory storage", err)
			container.HighlightRepository = repository.NewMemoryHighlightRepository(appLogger)
			return container
		}
		container.SupabaseClient = supabaseClient
		container.HighlightRepository = repository.NewSupabaseHighlightRepository(supabaseClient, appLogger)
		return container
	}

	appLogger.Info("Supabase not configured, using in-memory highlight storage")
	container.HighlightRepository = repository.NewMemoryHighlightRepository(appLogger)
	return container
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetHighlightRepository returns the highlight repository instance
func (c *Container) GetHighlightRepository() domain.FileHighlightRepository {
	return c.HighlightRepository
}
