package shared

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// JSONAPI is the frozen sonic config used for every response body.
var JSONAPI = sonic.Config{
	UseNumber:            true,
	EscapeHTML:           false,
	SortMapKeys:          false,
	CompactMarshaler:     true,
	NoQuoteTextMarshaler: true,
	NoNullSliceOrMap:     true,
}.Froze()

var (
	unauthorizedResponse  = mustMarshal(ErrorResponse{Error: "Unauthorized"})
	rateLimitedResponse   = mustMarshal(ErrorResponse{Error: "Too many requests. Please try again later."})
	internalErrorResponse = mustMarshal(ErrorResponse{Error: "Internal server error"})
)

func mustMarshal(v interface{}) []byte {
	b, _ := JSONAPI.Marshal(v)
	return b
}

func ResponseJSON(c *fiber.Ctx, httpCode int, data interface{}) error {
	body, err := JSONAPI.Marshal(data)
	if err != nil {
		return err
	}
	return writeJSON(c, httpCode, body)
}

func ResponseError(c *fiber.Ctx, httpCode int, message string) error {
	switch {
	case httpCode == http.StatusUnauthorized && message == "Unauthorized":
		return writeJSON(c, httpCode, unauthorizedResponse)
	case httpCode == http.StatusTooManyRequests && message == "Too many requests. Please try again later.":
		return writeJSON(c, httpCode, rateLimitedResponse)
	case httpCode == http.StatusInternalServerError && message == "Internal server error":
		return writeJSON(c, httpCode, internalErrorResponse)
	}
	return ResponseJSON(c, httpCode, ErrorResponse{Error: message})
}

func ResponseOK(c *fiber.Ctx, data interface{}) error {
	return ResponseJSON(c, http.StatusOK, data)
}

func ResponseSuccess(c *fiber.Ctx, message string) error {
	return ResponseJSON(c, http.StatusOK, SuccessResponse{Success: true, Message: message})
}

func ResponseInternalError(c *fiber.Ctx) error {
	return ResponseError(c, http.StatusInternalServerError, "Internal server error")
}

func writeJSON(c *fiber.Ctx, httpCode int, body []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(httpCode).Send(body)
}

func ResponseErrorDetails(c *fiber.Ctx, httpCode int, message, details string) error {
	return ResponseJSON(c, httpCode, ErrorResponse{Error: message, Details: details})
}

// ResponseRawJSON relays an already encoded JSON body.
func ResponseRawJSON(c *fiber.Ctx, httpCode int, body []byte) error {
	return writeJSON(c, httpCode, body)
}
