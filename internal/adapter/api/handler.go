package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/repository"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/usecase"
)

// analyticsTimeout bounds the fire-and-forget recording call.
const analyticsTimeout = 5 * time.Second

type ChatHandler struct {
	orchestrator *usecase.Orchestrator
	analytics    *usecase.Analytics
	comparer     *usecase.Comparer
	provider     repository.AIProvider
	limiter      repository.MessageLimiter
	settings     entity.GeneratorSettings
}

func NewChatHandler(orch *usecase.Orchestrator, analytics *usecase.Analytics, comparer *usecase.Comparer,
	provider repository.AIProvider, limiter repository.MessageLimiter, settings entity.GeneratorSettings) *ChatHandler {
	return &ChatHandler{
		orchestrator: orch,
		analytics:    analytics,
		comparer:     comparer,
		provider:     provider,
		limiter:      limiter,
		settings:     settings,
	}
}

// HandleChat resolves one inbound message. Analytics recording happens after
// the response is computed, in the background, and can never fail the
// request.
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req entity.ChatRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return respondError(c, entity.ErrInvalidMessage)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = fmt.Sprintf("session_%d", time.Now().UnixMilli())
	}

	if h.limiter != nil {
		allowed, err := h.limiter.Allow(c.Context(), sessionID)
		if err != nil {
			// Limiter trouble must not take the chatbot down.
			log.WithError(err).Warn("message limiter unavailable, allowing request")
			allowed = true
		}
		if !allowed {
			return respondError(c, entity.ErrRateLimitExceeded)
		}
	}

	res, err := h.orchestrator.Execute(c.Context(), req.Message)
	if err != nil {
		log.WithError(err).Error("chat pipeline failed")
		return respondError(c, entity.ErrInternalServer)
	}

	meta := entity.RequesterMeta{
		UserAgent: c.Get(fiber.HeaderUserAgent),
		IPAddress: clientIP(c),
	}
	h.recordAsync(sessionID, req.Message, res, meta)

	return c.JSON(fiber.Map{
		"answer":     res.Answer,
		"confidence": res.Classification.Confidence,
		"intent":     res.Classification.Intent,
		"sessionId":  sessionID,
		"aiProvider": res.Provider,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// recordAsync notifies the analytics recorder and bumps the session counter.
// Best effort: errors are logged and swallowed.
func (h *ChatHandler) recordAsync(sessionID, message string, res entity.ChatResult, meta entity.RequesterMeta) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), analyticsTimeout)
		defer cancel()

		if _, err := h.analytics.LogConversation(ctx, sessionID, message, res.Answer, res.Classification, meta); err != nil {
			log.WithError(err).Warn("failed to log analytics")
		}
		if h.limiter != nil {
			if err := h.limiter.Increment(ctx, sessionID); err != nil {
				log.WithError(err).Warn("failed to increment session counter")
			}
		}
	}()
}

type analyticsCommand struct {
	Type       string  `json:"type"`
	SessionID  string  `json:"sessionId"`
	Message    string  `json:"message"`
	Response   string  `json:"response"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

func (h *ChatHandler) HandleAnalyticsCommand(c *fiber.Ctx) error {
	var cmd analyticsCommand
	if err := c.BodyParser(&cmd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid type parameter"})
	}

	switch cmd.Type {
	case "log_conversation":
		meta := entity.RequesterMeta{
			UserAgent: c.Get(fiber.HeaderUserAgent),
			IPAddress: clientIP(c),
		}
		cls := entity.Classification{Intent: entity.Intent(cmd.Intent), Confidence: cmd.Confidence}
		logID, err := h.analytics.LogConversation(c.Context(), cmd.SessionID, cmd.Message, cmd.Response, cls, meta)
		if err != nil {
			log.WithError(err).Error("failed to record conversation")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
		return c.JSON(fiber.Map{"success": true, "logId": logID})

	case "end_session":
		if err := h.analytics.EndSession(c.Context(), cmd.SessionID); err != nil {
			log.WithError(err).Error("failed to end session")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
		return c.JSON(fiber.Map{"success": true})

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid type parameter"})
	}
}

func (h *ChatHandler) HandleAnalyticsQuery(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	switch c.Query("type") {
	case "analytics":
		summary, err := h.analytics.Summary(c.Context())
		if err != nil {
			log.WithError(err).Error("failed to compute analytics summary")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
		return c.JSON(summary)

	case "sessions":
		sessions, total, err := h.analytics.Sessions(c.Context(), limit, offset)
		if err != nil {
			log.WithError(err).Error("failed to list sessions")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
		return c.JSON(fiber.Map{
			"sessions": sessions,
			"total":    total,
			"hasMore":  offset+limit < total,
		})

	case "logs":
		logs, total, err := h.analytics.Logs(c.Context(), limit, offset)
		if err != nil {
			log.WithError(err).Error("failed to list logs")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
		return c.JSON(fiber.Map{
			"logs":    logs,
			"total":   total,
			"hasMore": offset+limit < total,
		})

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid type parameter"})
	}
}

func (h *ChatHandler) HandleGeminiStatus(c *fiber.Ctx) error {
	connected := h.provider != nil && h.provider.IsAvailable()
	settings := h.settings
	settings.IsEnabled = connected

	return c.JSON(fiber.Map{
		"isConnected": connected,
		"settings":    settings,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleGeminiSettings validates the submitted settings and echoes them back.
// Nothing is persisted; the effective settings come from the environment.
func (h *ChatHandler) HandleGeminiSettings(c *fiber.Ctx) error {
	var in entity.GeneratorSettings
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to update settings"})
	}

	validated := entity.GeneratorSettings{
		IsEnabled:       in.IsEnabled,
		Model:           in.Model,
		Temperature:     clamp(in.Temperature, 0, 1),
		MaxTokens:       clampInt(in.MaxTokens, 100, 2000),
		FallbackEnabled: in.FallbackEnabled,
	}
	if validated.Model == "" {
		validated.Model = h.settings.Model
	}

	log.WithField("settings", validated).Info("validated generator settings")
	return c.JSON(fiber.Map{
		"success":   true,
		"settings":  validated,
		"message":   "Settings updated successfully",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *ChatHandler) HandleGeminiCompare(c *fiber.Ctx) error {
	var req entity.ChatRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid message"})
	}

	return c.JSON(h.comparer.Run(c.Context(), req.Message))
}

// respondError maps domain errors to HTTP statuses and the user-facing copy.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entity.ErrInvalidMessage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Pesan tidak valid"})
	case errors.Is(err, entity.ErrRateLimitExceeded):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": entity.ErrRateLimitExceeded.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Terjadi kesalahan pada server"})
	}
}

// clientIP prefers the proxy headers over the socket address.
func clientIP(c *fiber.Ctx) string {
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if real := c.Get("X-Real-IP"); real != "" {
		return strings.TrimSpace(real)
	}
	return c.IP()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
