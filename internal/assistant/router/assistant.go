// internal/assistant/router/assistant.go

// Package router is the server-side brain of the AI assistant: abuse
// screening, deterministic featured-service grounding, then model
// delegation. The model never sees a prompt the filter rejected.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"social-support-portal/internal/assistant/catalog"
	"social-support-portal/internal/assistant/moderation"
	"social-support-portal/internal/common/logger"
	"social-support-portal/internal/models"
	"social-support-portal/internal/wizard/persist"
)

// PolicyMessage is the fixed advisory returned for abusive prompts. It is a
// normal answer, not an error.
const PolicyMessage = "Your message contains language that violates our usage policy. Please rephrase or contact support."

const systemPrompt = `You are the TAMM AI Assistant. Use the structured data object (featuredServices, taxonomy, contacts, tools, templates) as the single source of truth when answering user queries about Abu Dhabi government services.

Behavior rules:
- Always check featuredServices first. If a user's query matches a featured service, return that featured service details and path.
- If no featured match, map the query to the best-fit taxonomy category and provide the canonical path (/en/life-events/individual/[category-name]).
- Do NOT invent fees, processing times, or document checklists. If a detail is missing, advise: "For exact documents, fees and processing times, call 800 555 or visit https://www.tamm.abudhabi/ and the path provided."
- Use bullet points for lists and numbered steps for procedures. Keep responses concise and actionable.
- Reply in the language requested by the user (English or Arabic). If user requests Arabic, reply in Modern Standard Arabic.
- Low-temperature, factual style for government guidance. Keep the tone helpful and formal.`

const writerPersona = "Write concise, empathetic hardship descriptions for government social support forms. Keep it factual, respectful, and clear. Use first person (I, me, we) as if you are the applicant."

var languageInstructions = map[string]string{
	"en": "Reply in English. Use bullet points for lists.",
	"ar": "Reply in Modern Standard Arabic. Use bullet points for lists.",
}

var plainParagraphInstructions = map[string]string{
	"en": "Reply ONLY in English, as a single plain paragraph. Do NOT wrap the text in quotes or markdown.",
	"ar": "Reply ONLY in Modern Standard Arabic, as a single plain paragraph. Do NOT wrap the text in quotes or markdown.",
}

// Completer is the model call the router delegates to.
type Completer interface {
	Complete(ctx context.Context, systemMessages, userMessages []string) (string, error)
}

type Assistant struct {
	completer Completer
	store     persist.Store
	logger    logger.Logger
}

func New(completer Completer, store persist.Store, log logger.Logger) *Assistant {
	return &Assistant{
		completer: completer,
		store:     store,
		logger:    log.WithFields(map[string]interface{}{"component": "assistant"}),
	}
}

func buildSystemMessages(lang string) []string {
	instruction, ok := languageInstructions[lang]
	if !ok {
		instruction = languageInstructions["en"]
	}
	return []string{systemPrompt, instruction}
}

// Chat answers a general service question. Abusive prompts short-circuit to
// the policy message; matched featured services pin the model to catalog
// facts; everything else gets the taxonomy hint.
func (a *Assistant) Chat(ctx context.Context, session, prompt, lang string) (string, error) {
	if moderation.ContainsAbusive(prompt) {
		a.logger.Info("prompt blocked by content policy", map[string]interface{}{
			"session": session,
		})
		a.appendTranscript(ctx, session, prompt, PolicyMessage)
		return PolicyMessage, nil
	}

	systemMessages := buildSystemMessages(lang)

	if matched := catalog.Match(prompt); matched != nil {
		a.logger.Debug("featured service matched", map[string]interface{}{
			"serviceId": matched.ID,
		})
		systemMessages = append(systemMessages, fmt.Sprintf(
			"FEATURED_MATCH: Use the following featured service as the single-source answer:\n%s\nDO NOT invent fees or documents. For exact documents/fees call %s.",
			catalog.RenderFeaturedService(matched), catalog.Contacts.Phone))
	} else {
		systemMessages = append(systemMessages, fmt.Sprintf(
			"NO_FEATURED_MATCH: Map the user's request to the best-fit category. %s For exact documents and fees, instruct user to call %s or visit %s.",
			catalog.TaxonomyHint(), catalog.Contacts.Phone, catalog.Contacts.Website))
	}

	answer, err := a.completer.Complete(ctx, systemMessages, []string{prompt})
	if err != nil {
		return "", err
	}

	a.appendTranscript(ctx, session, prompt, answer)
	return answer, nil
}

// HelpMeWrite drafts or revises a hardship narrative in the applicant's
// voice. When userInput is present the model improves the existing text
// instead of starting over.
func (a *Assistant) HelpMeWrite(ctx context.Context, session, prompt, lang, userInput string) (string, error) {
	instruction, ok := plainParagraphInstructions[lang]
	if !ok {
		instruction = plainParagraphInstructions["en"]
	}

	systemMessages := []string{
		writerPersona,
		buildSystemMessages(lang)[1],
		instruction,
	}

	userMessages := []string{prompt}
	if trimmed := strings.TrimSpace(userInput); trimmed != "" {
		userMessages = append(userMessages, fmt.Sprintf(
			"The applicant has already written this text. Improve it naturally in the same tone and language, preserving meaning and clarity:\n\n%q", trimmed))
	}

	answer, err := a.completer.Complete(ctx, systemMessages, userMessages)
	if err != nil {
		return "", err
	}

	a.appendTranscript(ctx, session, prompt, answer)
	return answer, nil
}

// Transcript returns the stored chat history for a session.
func (a *Assistant) Transcript(ctx context.Context, session string) []models.ChatMessage {
	raw, err := a.store.Get(ctx, persist.ChatKey(session))
	if err != nil {
		return []models.ChatMessage{}
	}
	var msgs []models.ChatMessage
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return []models.ChatMessage{}
	}
	return msgs
}

// appendTranscript is best effort; a storage failure never fails the chat.
func (a *Assistant) appendTranscript(ctx context.Context, session, prompt, answer string) {
	now := time.Now().UTC().Format(time.RFC3339)
	msgs := append(a.Transcript(ctx, session),
		models.ChatMessage{Text: prompt, Sender: models.SenderUser, Timestamp: now},
		models.ChatMessage{Text: answer, Sender: models.SenderBot, Timestamp: now},
	)

	data, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	if err := a.store.Set(ctx, persist.ChatKey(session), string(data)); err != nil {
		a.logger.Warn("transcript write failed", map[string]interface{}{
			"session": session,
			"error":   err.Error(),
		})
	}
}
