package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/core/ports"
	"github.com/lawbot360/web/internal/infrastructure/lawbot"
)

const (
	welcomeMessage = "Hello, I am an AI-powered bot that can answer your legal queries related to Indian Laws and give you answers relevant to your questions. " +
		"I am not a legal advisor or lawyer. Please consult a lawyer with your query to find a solution for your legal issues. " +
		"I can only provide a starting ground so you understand your rights better and get more information regarding your questions before consulting a lawyer."
	emptyReply        = "I apologize, but I could not generate a response. Please try again."
	chatErrorPrefix   = "I apologize, but I encountered an error processing your question. "
	chatNotConfigured = "OpenAI API is not configured. Please set OPENAI_API_KEY in your environment variables."
	chatUnreachable   = "Please ensure the backend server is running."
	chatRetry         = "Please try again or rephrase your question."
)

var exampleQuestions = []string{
	"Someone's pet dog bit me, what can I do?",
	"Someone is repeatedly calling me and harassing me, what can I do?",
	"How do I file a case against a person who has not returned my money after I lent it to them?",
	"What are the steps I can take towards filing for divorce?",
}

// ChatEntry is one bubble on the chat page.
type ChatEntry struct {
	Role string // "user" or "ai"
	Text string
}

// ChatView is the data for the chat page.
type ChatView struct {
	Messages     []ChatEntry
	History      string
	Examples     []string
	ShowExamples bool
}

type chatPayload struct {
	Message string              `label:"message" validate:"required,max=4000"`
	History []ports.ChatMessage `label:"history" validate:"max=200,dive"`
}

type ChatHandler struct {
	api    ports.LawbotAPI
	layout *Layout
	log    zerolog.Logger
}

func NewChatHandler(api ports.LawbotAPI, layout *Layout, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{api: api, layout: layout, log: log.With().Str("component", "chat_handler").Logger()}
}

// Show renders GET /chat with only the welcome message.
func (h *ChatHandler) Show(c echo.Context) error {
	return h.render(c, nil)
}

// Send handles POST /chat. The conversation so far travels in the "history"
// field; the welcome message is never part of it.
func (h *ChatHandler) Send(c echo.Context) error {
	history, err := decodeHistory(c.FormValue("history"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chat history")
	}
	text := strings.TrimSpace(c.FormValue("message"))
	if text == "" {
		return h.render(c, history)
	}

	payload := chatPayload{Message: text, History: history}
	if err := c.Validate(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.api.Chat(c.Request().Context(), ports.ChatRequest{Messages: history, Message: text})
	reply := ""
	switch {
	case err == nil:
		reply = resp.Message
		if reply == "" {
			reply = emptyReply
		}
	case errors.Is(err, lawbot.ErrSessionExpired):
		return err
	default:
		reply = chatErrorText(err)
		h.log.Warn().Err(err).Msg("chat request failed")
	}

	history = append(history,
		ports.ChatMessage{Role: "user", Content: text},
		ports.ChatMessage{Role: "assistant", Content: reply},
	)
	return h.render(c, history)
}

// chatErrorText picks the page text for a failed chat call.
func chatErrorText(err error) string {
	switch {
	case lawbot.StatusOf(err) == http.StatusServiceUnavailable:
		return lawbot.MessageOf(err, chatNotConfigured)
	case errors.Is(err, lawbot.ErrUnreachable):
		return chatErrorPrefix + chatUnreachable
	default:
		return chatErrorPrefix + lawbot.MessageOf(err, chatRetry)
	}
}

func (h *ChatHandler) render(c echo.Context, history []ports.ChatMessage) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}
	if history == nil {
		raw = []byte("[]")
	}

	view := ChatView{
		Messages:     []ChatEntry{{Role: "ai", Text: welcomeMessage}},
		History:      string(raw),
		Examples:     exampleQuestions,
		ShowExamples: len(history) == 0,
	}
	for _, m := range history {
		role := "ai"
		if m.Role == "user" {
			role = "user"
		}
		view.Messages = append(view.Messages, ChatEntry{Role: role, Text: m.Content})
	}

	p := h.layout.Page(c, "Chat")
	p.Data = view
	return c.Render(http.StatusOK, "chat", p)
}

func decodeHistory(raw string) ([]ports.ChatMessage, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var history []ports.ChatMessage
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, err
	}
	return history, nil
}
