package http

import (
	"fmt"

	"github.com/hhgcare/hhg/internal/domain/booking"
	ratelimitDomain "github.com/hhgcare/hhg/internal/domain/ratelimit"
	"github.com/hhgcare/hhg/internal/infrastructure/auth"
	"github.com/hhgcare/hhg/internal/infrastructure/crypto"
	"github.com/hhgcare/hhg/internal/infrastructure/permission"
	"github.com/hhgcare/hhg/internal/infrastructure/ratelimit"
	"github.com/hhgcare/hhg/internal/shared/services/markdown"
)

type services struct {
	rateLimiter     *ratelimit.FixedWindowLimiter
	jwtService      *auth.JWTService
	enforcer        *permission.Enforcer
	phoneHasher     *crypto.HMACPhoneHasher
	keyVault        *crypto.KeyVault
	fieldCipher     crypto.FieldCipher
	numberGenerator *booking.PrefixNumberGenerator
	markdown        markdown.MarkdownService
}

func (c *Container) wireServices() (*services, error) {
	var counterStore ratelimitDomain.CounterRepository = c.repos.rateLimitCounter
	if c.cfg.RateLimit.Store == "redis" {
		if c.redisClient == nil {
			return nil, fmt.Errorf("ratelimit.store is redis but no redis client is configured")
		}
		counterStore = ratelimit.NewRedisCounterStore(c.redisClient)
	}

	masterKeys, err := crypto.DeriveMasterKeys(c.cfg.Privacy.MasterSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to derive privacy keys: %w", err)
	}

	enforcer, err := permission.NewEnforcer(c.db, c.log.With("component", "permission"))
	if err != nil {
		return nil, fmt.Errorf("failed to create permission enforcer: %w", err)
	}

	c.log.Infow("services wired", "ratelimit_store", c.cfg.RateLimit.Store)

	return &services{
		rateLimiter: ratelimit.NewFixedWindowLimiter(counterStore, c.log.With("component", "ratelimit")),
		jwtService: auth.NewJWTService(
			c.cfg.Auth.JWT.Secret,
			c.cfg.Auth.JWT.Issuer,
			c.cfg.Auth.JWT.AccessExpMinutes,
		),
		enforcer:    enforcer,
		phoneHasher: crypto.NewHMACPhoneHasher(masterKeys.PhoneHashKey),
		keyVault:    crypto.NewKeyVault(c.repos.encryptionKey, masterKeys.KEK, c.log.With("component", "key_vault")),
		numberGenerator: booking.NewPrefixNumberGenerator(
			c.repos.booking,
			c.cfg.Booking.NumberPrefix,
			c.cfg.Booking.MaxProbes,
		),
		markdown: markdown.NewMarkdownService(),
	}, nil
}
