package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
)

type recaptchaVerifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

// RecaptchaService checks contact form tokens against siteverify. With no
// secret configured it is disabled and intake skips the check.
type RecaptchaService struct {
	appContext.DefaultService
	httpClient *http.Client
	secret     string
	verifyURL  string
	minScore   float64
}

const RECAPTCHA_SVC = "recaptcha_svc"

func (svc RecaptchaService) Id() string {
	return RECAPTCHA_SVC
}

func NewRecaptchaService(secret, verifyURL string, minScore float64, timeout time.Duration) *RecaptchaService {
	return &RecaptchaService{
		httpClient: &http.Client{Timeout: timeout},
		secret:     secret,
		verifyURL:  verifyURL,
		minScore:   minScore,
	}
}

func (svc *RecaptchaService) Configure(ctx *appContext.Context) error {
	settings := ctx.Service(CONFIG_SVC).(*ConfigService).Settings()
	svc.httpClient = &http.Client{Timeout: settings.UpstreamTimeout}
	svc.secret = settings.RecaptchaSecretKey
	svc.verifyURL = settings.RecaptchaVerifyURL
	svc.minScore = settings.RecaptchaMinScore
	return svc.DefaultService.Configure(ctx)
}

func (svc *RecaptchaService) Start() error {
	return nil
}

func (svc *RecaptchaService) Enabled() bool {
	return svc.secret != ""
}

// Verify treats every transport or decoding failure as a failed check.
func (svc *RecaptchaService) Verify(ctx context.Context, token, remoteIP string) bool {
	if token == "" {
		return false
	}

	ok, err := svc.verify(ctx, token, remoteIP)
	if err != nil {
		log.WithError(err).Warn("reCAPTCHA verification request failed")
		return false
	}
	return ok
}

func (svc *RecaptchaService) verify(ctx context.Context, token, remoteIP string) (bool, error) {
	form := url.Values{}
	form.Set("secret", svc.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return false, err
	}

	var result recaptchaVerifyResponse
	if err := sonic.Unmarshal(body, &result); err != nil {
		return false, fmt.Errorf("decode siteverify response: %w", err)
	}

	if !result.Success || result.Score < svc.minScore {
		log.WithFields(log.Fields{
			"success": result.Success,
			"score":   result.Score,
			"errors":  result.ErrorCodes,
		}).Info("reCAPTCHA rejected submission")
		return false, nil
	}
	return true, nil
}
