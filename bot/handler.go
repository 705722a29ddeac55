package bot

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
)

// Handler processes Telegram webhook events delivered through API Gateway.
type Handler struct {
	router *Router
	logger *slog.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(router *Router, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		router: router,
		logger: logger,
	}
}

// update mirrors the subset of the Telegram update payload the bot reads.
type update struct {
	Message *message `json:"message"`
}

type message struct {
	From *actor `json:"from"`
	Chat *actor `json:"chat"`
	Text string `json:"text"`
}

type actor struct {
	ID int64 `json:"id"`
}

// Handle processes one webhook delivery. It always answers 200 with an ok
// body, whatever happened, so a probe can't confirm the bot exists.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp := events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"ok":true}`,
	}

	var upd update
	if err := json.Unmarshal([]byte(event.Body), &upd); err != nil {
		h.logger.Warn("unparseable webhook body", "error", err)
		return resp, nil
	}
	if upd.Message == nil || upd.Message.From == nil || upd.Message.Chat == nil {
		return resp, nil
	}

	cmd, ok := ParseCommand(
		strconv.FormatInt(upd.Message.From.ID, 10),
		strconv.FormatInt(upd.Message.Chat.ID, 10),
		upd.Message.Text,
	)
	if !ok {
		return resp, nil
	}

	if err := h.router.Dispatch(ctx, cmd); err != nil {
		h.logger.Error("failed to process command",
			"command", cmd.Name,
			"error", err,
		)
	}
	return resp, nil
}
