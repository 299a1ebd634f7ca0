package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/entity"
	"github.com/malithjkd/ai-project-manager/internal/pkg/formatter"
	"github.com/malithjkd/ai-project-manager/internal/pkg/validator"
)

const helpText = `I help you turn a project idea into a filled ideation form.

/start - begin a new ideation session
/problem - generate the problem statement from our chat
/solution - generate the solution statement from our chat
/form - show the current form
/set <field> <value> - edit a form field (persona, sponsor, originator, dasc, problem, solution)
/save - save the completed form
/export [markdown|pdf|docx] - download the last saved form
/reset - start the conversation over
/help - show this message

Anything else you type is part of our ideation chat.`

const startRequired = "No active session. Send /start to begin."

// handleMessage dispatches commands and chat messages.
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if message.IsCommand() {
		b.handleCommand(ctx, chatID, message.Command(), message.CommandArguments())
		return
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}

	bd, ok := b.getBinding(chatID)
	if !ok {
		b.reply(ctx, chatID, startRequired)
		return
	}

	dto, err := b.uc.SendMessage(ctx, bd.sessionID, text)
	if err != nil {
		b.replyError(ctx, chatID, err)
		return
	}

	b.reply(ctx, chatID, lastModelTurn(dto))
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command, args string) {
	switch command {
	case "start":
		b.cmdStart(ctx, chatID)
	case "help":
		b.reply(ctx, chatID, helpText)
	case "problem":
		b.withSession(ctx, chatID, func(sessionID string) (*entity.SessionDTO, error) {
			return b.uc.GenerateProblemStatement(ctx, sessionID)
		})
	case "solution":
		b.withSession(ctx, chatID, func(sessionID string) (*entity.SessionDTO, error) {
			return b.uc.GenerateSolutionStatement(ctx, sessionID)
		})
	case "form":
		b.cmdForm(ctx, chatID)
	case "set":
		b.cmdSet(ctx, chatID, args)
	case "save":
		b.cmdSave(ctx, chatID)
	case "export":
		b.cmdExport(ctx, chatID, args)
	case "reset":
		b.cmdReset(ctx, chatID)
	default:
		b.reply(ctx, chatID, "Unknown command. Send /help to see what I can do.")
	}
}

func (b *Bot) cmdStart(ctx context.Context, chatID int64) {
	dto, err := b.uc.CreateSession(ctx)
	if err != nil {
		b.replyError(ctx, chatID, err)
		return
	}

	b.setBinding(chatID, binding{sessionID: dto.SessionID})
	b.reply(ctx, chatID, dto.Conversation[0].Content)
}

// withSession runs an extraction command and replies with the resulting
// model turn.
func (b *Bot) withSession(ctx context.Context, chatID int64, fn func(sessionID string) (*entity.SessionDTO, error)) {
	bd, ok := b.getBinding(chatID)
	if !ok {
		b.reply(ctx, chatID, startRequired)
		return
	}

	dto, err := fn(bd.sessionID)
	if err != nil {
		b.replyError(ctx, chatID, err)
		return
	}

	b.reply(ctx, chatID, lastModelTurn(dto))
}

func (b *Bot) cmdForm(ctx context.Context, chatID int64) {
	bd, ok := b.getBinding(chatID)
	if !ok {
		b.reply(ctx, chatID, startRequired)
		return
	}

	dto, err := b.uc.GetSession(ctx, bd.sessionID)
	if err != nil {
		b.replyError(ctx, chatID, err)
		return
	}

	b.reply(ctx, chatID, renderForm(dto.Form))
}

var fieldAliases = map[string]func(*entity.UpdateFormRequest, string){
	"persona":    func(r *entity.UpdateFormRequest, v string) { r.TargetPersona = &v },
	"sponsor":    func(r *entity.UpdateFormRequest, v string) { r.BusinessSponsor = &v },
	"originator": func(r *entity.UpdateFormRequest, v string) { r.Originator = &v },
	"dasc":       func(r *entity.UpdateFormRequest, v string) { r.DascApproval = &v },
	"problem":    func(r *entity.UpdateFormRequest, v string) { r.ProblemStatement = &v },
	"solution":   func(r *entity.UpdateFormRequest, v string) { r.SolutionStatement = &v },
}

func (b *Bot) cmdSet(ctx context.Context, chatID int64, args string) {
	bd, ok := b.getBinding(chatID)
	if !ok {
		b.reply(ctx, chatID, startRequired)
		return
	}

	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		b.reply(ctx, chatID, "Usage: /set <field> <value>. Fields: persona, sponsor, originator, dasc, problem, solution.")
		return
	}

	apply, ok := fieldAliases[strings.ToLower(parts[0])]
	if !ok {
		b.reply(ctx, chatID, fmt.Sprintf("Unknown field %q. Fields: persona, sponsor, originator, dasc, problem, solution.", parts[0]))
		return
	}

	var req entity.UpdateFormRequest
	apply(&req, strings.TrimSpace(parts[1]))

	dto, err := b.uc.UpdateForm(ctx, bd.sessionID, req)
	if err != nil {
		b.replyError(ctx, chatID, err)
		return
	}

	b.reply(ctx, chatID, "Updated.\n\n"+renderForm(dto.Form))
}

func (b *Bot) cmdSave(ctx context.Context, chatID int64) {
	bd, ok := b.getBinding(chatID)
	if !ok {
		b.reply(ctx, chatID, startRequired)
		return
	}

	resp, err := b.uc.SaveForm(ctx, bd.sessionID)
	if err != nil {
		b.replyError(ctx, chatID, err)
		return
	}

	bd.lastFormID = resp.FormID
	b.setBinding(chatID, bd)

	b.reply(ctx, chatID, fmt.Sprintf("%s\nForm ID: %s\nUse /export to download it.", resp.Message, resp.FormID))
}

func (b *Bot) cmdExport(ctx context.Context, chatID int64, args string) {
	bd, ok := b.getBinding(chatID)
	if !ok || bd.lastFormID == "" {
		b.reply(ctx, chatID, "Nothing to export yet. Save a form with /save first.")
		return
	}

	formatName := strings.TrimSpace(strings.ToLower(args))
	if formatName == "" {
		formatName = "markdown"
	}
	format := entity.ExportFormat(formatName)
	if !format.IsValid() {
		b.reply(ctx, chatID, "Format must be one of: markdown, pdf, docx.")
		return
	}

	stored, err := b.uc.GetStoredForm(ctx, bd.lastFormID)
	if err != nil {
		b.replyError(ctx, chatID, err)
		return
	}

	fmtr, err := formatter.NewFactory().Create(format)
	if err != nil {
		b.replyError(ctx, chatID, err)
		return
	}

	out, err := fmtr.Format(stored)
	if err != nil {
		b.replyError(ctx, chatID, err)
		return
	}

	file := tgbotapi.FileBytes{
		Name:  fmt.Sprintf("ideation-form-%s%s", stored.ID, fmtr.FileExtension()),
		Bytes: out,
	}
	if _, err := b.api.Send(tgbotapi.NewDocument(chatID, file)); err != nil {
		ctxzap.Error(ctx, "failed to send exported form", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) cmdReset(ctx context.Context, chatID int64) {
	bd, ok := b.getBinding(chatID)
	if !ok {
		b.cmdStart(ctx, chatID)
		return
	}

	dto, err := b.uc.ResetSession(ctx, bd.sessionID)
	if err != nil {
		b.replyError(ctx, chatID, err)
		return
	}

	b.reply(ctx, chatID, dto.Conversation[0].Content)
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		ctxzap.Error(ctx, "failed to send message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

// replyError translates workflow errors into chat-friendly sentences.
func (b *Bot) replyError(ctx context.Context, chatID int64, err error) {
	var vErr *validator.Error
	if errors.As(err, &vErr) {
		var sb strings.Builder
		sb.WriteString("The form is not complete yet:\n")
		for field, msg := range vErr.Fields {
			fmt.Fprintf(&sb, "- %s: %s\n", field, msg)
		}
		b.reply(ctx, chatID, sb.String())
		return
	}

	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		b.reply(ctx, chatID, "Your session has expired. Send /start to begin a new one.")
	case errors.Is(err, entity.ErrSessionBusy):
		b.reply(ctx, chatID, "I'm still working on your previous request. Give me a moment.")
	case errors.Is(err, entity.ErrEmptyMessage):
		b.reply(ctx, chatID, "Please send a non-empty message.")
	case errors.Is(err, entity.ErrNotEnoughHistory):
		b.reply(ctx, chatID, "Let's chat a bit more about your idea first.")
	case errors.Is(err, entity.ErrProblemRequired):
		b.reply(ctx, chatID, "Generate the problem statement with /problem before the solution.")
	case errors.Is(err, entity.ErrFormNotFound):
		b.reply(ctx, chatID, "I couldn't find that form anymore.")
	case errors.Is(err, entity.ErrPersistenceWrite):
		b.reply(ctx, chatID, "Saving failed. Please try again later.")
	default:
		ctxzap.Error(ctx, "unexpected error", zap.Error(err), zap.Int64("chat_id", chatID))
		b.reply(ctx, chatID, "Something went wrong. Please try again.")
	}
}

func lastModelTurn(dto *entity.SessionDTO) string {
	for i := len(dto.Conversation) - 1; i >= 0; i-- {
		if dto.Conversation[i].Role == entity.RoleModel {
			return dto.Conversation[i].Content
		}
	}
	return ""
}

func renderForm(form entity.IdeationForm) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Ideation Form %s (%s)\n\n", form.FormNumber, form.Date)
	fmt.Fprintf(&sb, "Target Persona / Customer: %s\n", orDash(form.TargetPersona))
	fmt.Fprintf(&sb, "Business Sponsor: %s\n", orDash(form.BusinessSponsor))
	fmt.Fprintf(&sb, "Originator: %s\n", orDash(form.Originator))
	fmt.Fprintf(&sb, "DASC Approval: %s\n\n", orDash(form.DascApproval))
	fmt.Fprintf(&sb, "Problem Statement:\n%s\n\n", orDash(form.ProblemStatement))
	fmt.Fprintf(&sb, "Solution Statement:\n%s\n", orDash(form.SolutionStatement))
	return sb.String()
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
