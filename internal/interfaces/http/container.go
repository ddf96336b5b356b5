package http

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hhgcare/hhg/internal/infrastructure/config"
	"github.com/hhgcare/hhg/internal/shared/logger"
)

// Container owns every dependency the router needs. It is built in stages:
// repositories, then services, then use cases and handlers.
type Container struct {
	db          *gorm.DB
	redisClient *redis.Client
	cfg         *config.Config
	log         logger.Interface

	repos    *repositories
	services *services
	handlers *handlerSet
}

// NewContainer wires the application. redisClient may be nil unless
// ratelimit.store is redis.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		db:          db,
		redisClient: redisClient,
		cfg:         cfg,
		log:         log,
	}

	c.repos = c.wireRepositories()

	svcs, err := c.wireServices()
	if err != nil {
		return nil, fmt.Errorf("failed to wire services: %w", err)
	}
	c.services = svcs

	c.handlers = c.wireHandlers()
	return c, nil
}
