package dto

import (
	"net/http"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/reinaldotineo/portfolio_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeIntake(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"plain", 100, "plain"},
		{"<script>alert(1)</script>", 100, "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{`"quoted" & 'single'`, 100, `"quoted" & 'single'`},
		{"abcdef", 3, "abc"},
		{"<<<", 5, "&lt;&"},
		{"ñandú", 3, "ñan"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeIntake(tt.input, tt.max))
		})
	}
}

func TestSanitizeChat(t *testing.T) {
	assert.Equal(t, "&lt;b&gt; &quot;hi&quot; it&#x27;s", SanitizeChat(`<b> "hi" it's`, 100))
}

func TestSanitizeIntake_NeverExceedsMax(t *testing.T) {
	inputs := []string{
		strings.Repeat("<", 500),
		strings.Repeat("a<b>", 300),
		strings.Repeat("é", 6000),
	}
	for _, input := range inputs {
		for _, max := range []int{1, 100, 254, 2000, 5000} {
			out := SanitizeIntake(input, max)
			assert.LessOrEqual(t, utf8.RuneCountInString(out), max)
			assert.NotContains(t, out, "<")
			assert.NotContains(t, out, ">")
		}
	}
}

func TestIsSimpleEmail(t *testing.T) {
	valid := []string{"ana@example.com", "a.b+c@sub.domain.io", "x@y.z"}
	invalid := []string{"", "ana", "ana@", "@example.com", "ana@example", "ana @example.com", "ana@@example.com"}

	for _, email := range valid {
		assert.True(t, IsSimpleEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, IsSimpleEmail(email), email)
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	return appErr.StatusCode
}

func TestParseContact(t *testing.T) {
	req, err := ParseContact([]byte(`{"name":"  Ana ","email":"ana@example.com","message":" hi "}`))
	require.NoError(t, err)
	assert.Equal(t, "Ana", req.Name)
	assert.Equal(t, "hi", req.Message)

	_, err = ParseContact([]byte(`{"name":`))
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))

	_, err = ParseContact([]byte(`{"name":"Ana","email":"ana@example.com","message":"hi","extra":1}`))
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = ParseContact([]byte(`{"name":42,"email":"ana@example.com","message":"hi"}`))
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = ParseContact([]byte(`{"name":"Ana","email":"ana@example.com","message":"` + strings.Repeat("m", MaxContactMessage+1) + `"}`))
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = ParseContact([]byte(`{"name":"Ana","email":"ana@example.com","message":"` + strings.Repeat("m", MaxContactMessage) + `"}`))
	assert.NoError(t, err)
}

func TestContactRequest_ToModel(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.FixedZone("CET", 3600))

	record := ContactRequest{
		Name:    "<i>Ana</i>",
		Email:   "ana@example.com",
		Message: strings.Repeat("<", MaxContactMessage),
	}.ToModel(now)

	assert.Empty(t, record.ID)
	assert.Equal(t, "&lt;i&gt;Ana&lt;/i&gt;", record.Name)
	assert.Equal(t, shared.DefaultProjectType, record.ProjectType)
	assert.Equal(t, MaxContactMessage, utf8.RuneCountInString(record.Message))
	assert.Equal(t, time.UTC, record.Timestamp.Location())
	assert.True(t, record.Timestamp.Equal(now))
}

func TestParseConsultation(t *testing.T) {
	req, err := ParseConsultation([]byte(`{"name":"Luis","email":"luis@example.com","role":"CTO","projectStage":"mvp","mainChallenge":"<scale>","teamSize":"2-5","urgency":"now"}`))
	require.NoError(t, err)

	record := req.ToModel(time.Now())
	assert.Equal(t, shared.ConsultationSource, record.Source)
	assert.Equal(t, "&lt;scale&gt;", record.MainChallenge)

	_, err = ParseConsultation([]byte(`{"name":"Luis","email":"luis@example.com"}`))
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = ParseConsultation([]byte(`{"name":"Luis","email":"luis@example.com","role":"CTO","projectStage":"mvp","mainChallenge":"x","teamSize":"2-5","urgency":"now","source":"spoofed"}`))
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestParseLogin(t *testing.T) {
	req, err := ParseLogin([]byte(`{"email":" admin@example.com ","password":" pw "}`))
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", req.Email)
	assert.Equal(t, " pw ", req.Password, "passwords are compared verbatim")

	_, err = ParseLogin([]byte(`{"email":"admin@example.com"}`))
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, LoginRequiredMessage, appErr.Message)
}

func TestChatRequest_ToForward(t *testing.T) {
	tests := []struct {
		name string
		body string
		want ChatForward
	}{
		{"defaults", `{"question":"hi"}`, ChatForward{Question: "hi", MaxContextItems: DefaultContextItems}},
		{"clamped low", `{"question":"hi","max_context_items":0}`, ChatForward{Question: "hi", MaxContextItems: MinContextItems}},
		{"clamped high", `{"question":"hi","max_context_items":99}`, ChatForward{Question: "hi", MaxContextItems: MaxContextItems}},
		{"conversation truncated", `{"question":"hi","conversation_id":"` + strings.Repeat("c", 150) + `"}`,
			ChatForward{Question: "hi", ConversationID: strings.Repeat("c", MaxConversationID), MaxContextItems: DefaultContextItems}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseChat([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.ToForward())
		})
	}

	_, err := ParseChat([]byte(`{"question":"   "}`))
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, InvalidQuestionMessage, appErr.Message)
}

func TestFormatValidationErrors(t *testing.T) {
	err := GetValidator().Struct(ContactRequest{Email: "nope"})
	errs := FormatValidationErrors(err)

	messages := map[string]string{}
	for _, e := range errs {
		messages[e.Field] = e.Message
	}
	assert.Equal(t, "Name is required", messages["Name"])
	assert.Equal(t, "Invalid email format", messages["Email"])
	assert.Equal(t, "Message is required", messages["Message"])
}
