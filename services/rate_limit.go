package services

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/reinaldotineo/portfolio_api/dto"
	"github.com/reinaldotineo/portfolio_api/model"
	"github.com/reinaldotineo/portfolio_api/shared"
	log "github.com/sirupsen/logrus"
)

type RateLimitService struct {
	appContext.DefaultService

	configs map[string]*model.RateLimitConfig
	mutex   sync.RWMutex

	store   CounterStore
	backend string
	now     func() time.Time

	stop chan struct{}
	wg   sync.WaitGroup
}

const RATE_LIMIT_SVC = "rate_limit_svc"

const sweepInterval = 5 * time.Minute

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

// NewRateLimitService is used outside the service container.
func NewRateLimitService(store CounterStore, configs map[string]*model.RateLimitConfig) *RateLimitService {
	return &RateLimitService{
		configs: configs,
		store:   store,
		now:     time.Now,
	}
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	settings := ctx.Service(CONFIG_SVC).(*ConfigService).Settings()
	svc.configs = DefaultRateLimitConfigs(settings)
	svc.backend = strings.ToLower(settings.RateLimitBackend)
	svc.now = time.Now
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	if svc.backend == "redis" {
		redisSvc := svc.Service(REDIS_SVC).(*RedisService)
		svc.store = NewRedisCounterStore(redisSvc.GetClient(), "ratelimit:")
		log.Info("Rate limiter using redis counters")
		return nil
	}

	memory := NewMemoryCounterStore(nil)
	svc.store = memory
	svc.stop = make(chan struct{})
	svc.wg.Add(1)
	go svc.startCleanupJob(memory)
	return nil
}

func (svc *RateLimitService) Shutdown() {
	if svc.stop != nil {
		close(svc.stop)
		svc.wg.Wait()
		svc.stop = nil
	}
}

// DefaultRateLimitConfigs returns the per-endpoint windows. Contact and
// consultation intake share a limit but count separately.
func DefaultRateLimitConfigs(settings *Settings) map[string]*model.RateLimitConfig {
	window := settings.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	return map[string]*model.RateLimitConfig{
		shared.EndpointContact: {
			EndpointType: shared.EndpointContact,
			MaxRequests:  settings.RateLimitIntake,
			WindowSize:   window,
			Description:  "Contact form submissions",
		},
		shared.EndpointConsultation: {
			EndpointType: shared.EndpointConsultation,
			MaxRequests:  settings.RateLimitIntake,
			WindowSize:   window,
			Description:  "Consultation form submissions",
		},
		shared.EndpointChat: {
			EndpointType: shared.EndpointChat,
			MaxRequests:  settings.RateLimitChat,
			WindowSize:   window,
			Description:  "Assistant chat questions",
		},
		shared.EndpointLogin: {
			EndpointType: shared.EndpointLogin,
			MaxRequests:  settings.RateLimitLogin,
			WindowSize:   window,
			Description:  "Admin login attempts",
		},
	}
}

// ==================== CORE RATE LIMITING LOGIC ====================

// CheckAndConsume counts one request from clientID against endpointType.
// Unknown endpoint types are not limited.
func (svc *RateLimitService) CheckAndConsume(ctx context.Context, endpointType, clientID string) (bool, *dto.RateLimitInfo, error) {
	svc.mutex.RLock()
	config, exists := svc.configs[endpointType]
	svc.mutex.RUnlock()

	if !exists {
		return true, &dto.RateLimitInfo{Allowed: true, Remaining: -1}, nil
	}

	counter, allowed, err := svc.store.Consume(ctx, endpointType+":"+clientID, config.MaxRequests, config.WindowSize)
	if err != nil {
		return true, nil, err
	}

	remaining := config.MaxRequests - counter.Count
	if remaining < 0 {
		remaining = 0
	}
	resetTime := counter.ResetTime
	return allowed, &dto.RateLimitInfo{
		Allowed:   allowed,
		Limit:     config.MaxRequests,
		Remaining: remaining,
		ResetTime: &resetTime,
	}, nil
}

// ==================== MIDDLEWARE FUNCTIONS ====================

// RateLimit guards a route with the window configured for endpointType.
func (svc *RateLimitService) RateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID := GetClientID(c)

		allowed, info, err := svc.CheckAndConsume(c.UserContext(), endpointType, clientID)
		if err != nil {
			log.WithFields(log.Fields{
				"endpoint": endpointType,
				"client":   clientID,
			}).WithError(err).Warn("Rate limit check failed, letting request through")
			return c.Next()
		}

		svc.addRateLimitHeaders(c, info)

		if !allowed {
			RecordRateLimitRejection(endpointType)
			log.WithFields(log.Fields{
				"endpoint": endpointType,
				"client":   clientID,
			}).Info("Rate limit exceeded")
			return shared.NewTooManyRequestsError()
		}

		return c.Next()
	}
}

// ==================== HELPER FUNCTIONS ====================

func (svc *RateLimitService) addRateLimitHeaders(c *fiber.Ctx, info *dto.RateLimitInfo) {
	if info == nil || info.Remaining < 0 {
		return
	}

	c.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))

	if info.ResetTime != nil {
		c.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		if !info.Allowed {
			retryAfter := int(info.ResetTime.Sub(svc.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		}
	}
}

// GetClientID takes the first X-Forwarded-For entry, then X-Real-IP. Clients
// sending neither share the "unknown" bucket.
func GetClientID(c *fiber.Ctx) string {
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if realIP := strings.TrimSpace(c.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	return shared.UnknownClient
}

// ==================== BACKGROUND JOBS ====================

func (svc *RateLimitService) startCleanupJob(store *MemoryCounterStore) {
	defer svc.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := store.Sweep(); removed > 0 {
				log.WithField("removed", removed).Debug("Rate limit windows swept")
			}
		case <-svc.stop:
			return
		}
	}
}
