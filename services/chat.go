package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/reinaldotineo/portfolio_api/dto"
	log "github.com/sirupsen/logrus"
)

const maxUpstreamBody = 1 << 20

// ChatService relays assistant questions to the AI backend.
type ChatService struct {
	appContext.DefaultService
	httpClient *http.Client
	baseURL    string
	token      string
}

const CHAT_SVC = "chat_svc"

func (svc ChatService) Id() string {
	return CHAT_SVC
}

func NewChatService(baseURL, token string, timeout time.Duration) *ChatService {
	return &ChatService{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

func (svc *ChatService) Configure(ctx *appContext.Context) error {
	settings := ctx.Service(CONFIG_SVC).(*ConfigService).Settings()
	svc.httpClient = &http.Client{Timeout: settings.UpstreamTimeout}
	svc.baseURL = strings.TrimRight(settings.AIServiceURL, "/")
	svc.token = settings.AIServiceToken
	return svc.DefaultService.Configure(ctx)
}

func (svc *ChatService) Start() error {
	return nil
}

// Forward posts the question and returns the upstream status and body as is.
// err is set only when no response was received.
func (svc *ChatService) Forward(ctx context.Context, fwd dto.ChatForward) (int, []byte, error) {
	payload, err := sonic.Marshal(fwd)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.baseURL+"/ai/chat", bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if svc.token != "" {
		req.Header.Set("Authorization", "Bearer "+svc.token)
	}

	start := time.Now()
	resp, err := svc.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("AI service request failed")
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return 0, nil, err
	}

	log.WithFields(log.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("AI service responded")
	return resp.StatusCode, body, nil
}
