package bot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jacentio/familyforest/auth"
	"github.com/jacentio/familyforest/forest"
)

// Reply texts. Unauthorized principals receive nothing at all, so none of
// these confirm the bot's existence to a probe.
const (
	startText = "Welcome to Family Forest! 🌳\n\n" +
		"Here are the available commands:\n" +
		"/new_tree - Create a new family tree\n" +
		"/add_member - Add a family member\n" +
		"/view_tree - View your family tree\n" +
		"/help - Show this help message"

	helpText = "Family Forest Help 🌳\n\n" +
		"Available Commands:\n" +
		"/new_tree - Create a new family tree\n" +
		"/add_member - Add a family member\n" +
		"/view_tree - View your family tree\n" +
		"/help - Show this help message\n\n" +
		"For more assistance, contact support."

	allowUsageText = "Usage: /allow <user_id>\n\nExample:\n/allow 123456"

	revokeUsageText = "Usage: /revoke <user_id>\n\nExample:\n/revoke 123456"

	welcomeText = "Welcome to Family Forest! 🌳\n\n" +
		"You've been granted access to use this bot.\n" +
		"Use /start to begin your family tree journey!"

	revokedText = "Your access to Family Forest has been revoked.\n\n" +
		"Please contact an administrator if you believe this is a mistake."

	newTreeUsageText = "Please provide a name for your family tree:\n/new_tree My Family Tree"

	addMemberText = "To add a family member, please provide:\n" +
		"1. Member's name\n" +
		"2. Birth date (optional)\n" +
		"3. Relationship to you\n\n" +
		"Example: /add_member John Smith, 1980-01-01, father"

	viewTreeText = "Family tree visualization coming soon!"

	failureText = "Sorry, something went wrong. Please try again."
)

// Router dispatches parsed commands to the gate and the tree access service.
type Router struct {
	gate    *auth.Gate
	service *forest.Service
	sender  Sender
	logger  *slog.Logger
}

// NewRouter creates a Router.
func NewRouter(gate *auth.Gate, service *forest.Service, sender Sender, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		gate:    gate,
		service: service,
		sender:  sender,
		logger:  logger,
	}
}

// Dispatch executes a single command. Denied principals get no reply; the
// returned error covers transport and internal failures only.
func (r *Router) Dispatch(ctx context.Context, cmd Command) error {
	// Admin commands are intercepted before the general authorization check.
	switch cmd.Name {
	case "/allow", "/revoke":
		if !r.gate.IsAdmin(cmd.PrincipalID) {
			r.logger.Warn("unauthorized admin command attempt", "principalID", cmd.PrincipalID)
			return nil
		}
		if cmd.Name == "/allow" {
			return r.handleAllow(ctx, cmd)
		}
		return r.handleRevoke(ctx, cmd)
	}

	if !r.gate.IsAuthorized(ctx, cmd.PrincipalID) {
		r.logger.Warn("unauthorized access attempt", "principalID", cmd.PrincipalID)
		return nil
	}

	switch cmd.Name {
	case "/start":
		return r.sender.SendMessage(ctx, cmd.ChatID, startText)
	case "/help":
		return r.sender.SendMessage(ctx, cmd.ChatID, helpText)
	case "/new_tree":
		return r.handleNewTree(ctx, cmd)
	case "/view_tree":
		return r.sender.SendMessage(ctx, cmd.ChatID, viewTreeText)
	case "/add_member":
		return r.sender.SendMessage(ctx, cmd.ChatID, addMemberText)
	default:
		r.logger.Info("ignoring unknown command", "command", cmd.Name)
		return nil
	}
}

func (r *Router) handleAllow(ctx context.Context, cmd Command) error {
	if len(cmd.Args) == 0 {
		return r.sender.SendMessage(ctx, cmd.ChatID, allowUsageText)
	}
	targetID := cmd.Args[0]

	// Welcome message is best-effort; the grant proceeds either way.
	if err := r.sender.SendMessage(ctx, targetID, welcomeText); err != nil {
		r.logger.Warn("failed to send welcome message",
			"targetID", targetID,
			"error", err,
		)
	}

	if err := r.gate.Grant(ctx, targetID, cmd.PrincipalID, ""); err != nil {
		r.logger.Error("grant failed", "targetID", targetID, "error", err)
		return r.sender.SendMessage(ctx, cmd.ChatID, failureText)
	}

	return r.sender.SendMessage(ctx, cmd.ChatID,
		"✅ Added user "+targetID+" to Family Forest\nA welcome message has been sent to the user.")
}

func (r *Router) handleRevoke(ctx context.Context, cmd Command) error {
	if len(cmd.Args) == 0 {
		return r.sender.SendMessage(ctx, cmd.ChatID, revokeUsageText)
	}
	targetID := cmd.Args[0]

	if err := r.sender.SendMessage(ctx, targetID, revokedText); err != nil {
		r.logger.Warn("failed to send revocation message",
			"targetID", targetID,
			"error", err,
		)
	}

	if err := r.gate.Revoke(ctx, targetID); err != nil {
		r.logger.Error("revoke failed", "targetID", targetID, "error", err)
		return r.sender.SendMessage(ctx, cmd.ChatID, failureText)
	}

	return r.sender.SendMessage(ctx, cmd.ChatID,
		"✅ Removed user "+targetID+" from Family Forest\nThe user has been notified of the access revocation.")
}

func (r *Router) handleNewTree(ctx context.Context, cmd Command) error {
	if len(cmd.Args) == 0 {
		return r.sender.SendMessage(ctx, cmd.ChatID, newTreeUsageText)
	}
	name := strings.Join(cmd.Args, " ")

	if _, err := r.service.CreateTree(ctx, cmd.PrincipalID, forest.TreeInput{Name: name}); err != nil {
		r.logger.Error("tree creation failed",
			"principalID", cmd.PrincipalID,
			"error", err,
		)
		return r.sender.SendMessage(ctx, cmd.ChatID, failureText)
	}

	return r.sender.SendMessage(ctx, cmd.ChatID,
		"Created new family tree: "+name+"\nUse /add_member to start adding family members!")
}
