package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
)

const systemStatusCacheKey = "system-status:latest"

// StatusService relays the infrastructure status JSON shown on the site,
// caching good payloads in Redis when it is available.
type StatusService struct {
	appContext.DefaultService
	httpClient  *http.Client
	apiURL      string
	redisSvc    *RedisService
	cacheExpiry time.Duration
}

const STATUS_SVC = "status_svc"

func (svc StatusService) Id() string {
	return STATUS_SVC
}

func NewStatusService(apiURL string, redisSvc *RedisService, timeout time.Duration) *StatusService {
	return &StatusService{
		httpClient:  &http.Client{Timeout: timeout},
		apiURL:      apiURL,
		redisSvc:    redisSvc,
		cacheExpiry: 30 * time.Second,
	}
}

func (svc *StatusService) Configure(ctx *appContext.Context) error {
	settings := ctx.Service(CONFIG_SVC).(*ConfigService).Settings()
	svc.httpClient = &http.Client{Timeout: settings.UpstreamTimeout}
	svc.apiURL = settings.SystemStatusURL
	svc.cacheExpiry = 30 * time.Second
	return svc.DefaultService.Configure(ctx)
}

func (svc *StatusService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

func (svc *StatusService) Fetch(ctx context.Context) ([]byte, error) {
	if svc.redisSvc.Enabled() {
		cached, err := svc.redisSvc.Get(ctx, systemStatusCacheKey)
		if err == nil && cached != "" {
			log.Debug("System status cache hit")
			return []byte(cached), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc.apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Failed to fetch system status")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Error("System status API returned non-200 status")
		return nil, fmt.Errorf("system status API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, err
	}
	if !sonic.Valid(body) {
		return nil, fmt.Errorf("system status API returned invalid JSON")
	}

	if svc.redisSvc.Enabled() {
		if err := svc.redisSvc.Set(ctx, systemStatusCacheKey, body, svc.cacheExpiry); err != nil {
			log.WithError(err).Warn("Failed to cache system status")
		}
	}

	return body, nil
}
