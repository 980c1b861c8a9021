// internal/assistant/router/assistant_test.go
package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-support-portal/internal/common/logger"
	"social-support-portal/internal/models"
	"social-support-portal/internal/wizard/persist"
)

// fakeCompleter records the messages it received and returns a canned reply.
type fakeCompleter struct {
	systemMessages []string
	userMessages   []string
	reply          string
	err            error
	calls          int
}

func (f *fakeCompleter) Complete(_ context.Context, systemMessages, userMessages []string) (string, error) {
	f.calls++
	f.systemMessages = systemMessages
	f.userMessages = userMessages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestAssistant(t *testing.T, completer Completer) (*Assistant, persist.Store) {
	store := persist.NewMemoryStore()
	return New(completer, store, logger.NewTestLogger(t)), store
}

func TestChat_AbusivePromptShortCircuits(t *testing.T) {
	completer := &fakeCompleter{reply: "should not be called"}
	assistant, _ := newTestAssistant(t, completer)

	answer, err := assistant.Chat(context.Background(), "s1", "you stupid form", "en")

	require.NoError(t, err)
	assert.Equal(t, PolicyMessage, answer)
	assert.Zero(t, completer.calls)
}

func TestChat_FeaturedMatchAddsGroundingHint(t *testing.T) {
	completer := &fakeCompleter{reply: "Here is the Golden Visa process."}
	assistant, _ := newTestAssistant(t, completer)

	answer, err := assistant.Chat(context.Background(), "s1", "how do I get a golden visa?", "en")

	require.NoError(t, err)
	assert.Equal(t, "Here is the Golden Visa process.", answer)
	require.Len(t, completer.systemMessages, 3)
	assert.Contains(t, completer.systemMessages[2], "FEATURED_MATCH")
	assert.Contains(t, completer.systemMessages[2], "Golden Visa Nomination")
	assert.Contains(t, completer.systemMessages[2], "800 555")
}

func TestChat_NoMatchAddsTaxonomyHint(t *testing.T) {
	completer := &fakeCompleter{reply: "Try the transport category."}
	assistant, _ := newTestAssistant(t, completer)

	_, err := assistant.Chat(context.Background(), "s1", "how do I pay a parking fine", "en")

	require.NoError(t, err)
	require.Len(t, completer.systemMessages, 3)
	assert.Contains(t, completer.systemMessages[2], "NO_FEATURED_MATCH")
	assert.Contains(t, completer.systemMessages[2], "TAXONOMY_SHORT")
}

func TestChat_ArabicLanguageInstruction(t *testing.T) {
	completer := &fakeCompleter{reply: "ok"}
	assistant, _ := newTestAssistant(t, completer)

	_, err := assistant.Chat(context.Background(), "s1", "renew my licence", "ar")

	require.NoError(t, err)
	assert.Contains(t, completer.systemMessages[1], "Modern Standard Arabic")
}

func TestChat_CompleterErrorPropagatesOnce(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("upstream down")}
	assistant, store := newTestAssistant(t, completer)

	_, err := assistant.Chat(context.Background(), "s1", "renew my licence", "en")

	assert.Error(t, err)
	assert.Equal(t, 1, completer.calls)

	// Failed exchanges are not recorded.
	_, getErr := store.Get(context.Background(), persist.ChatKey("s1"))
	assert.ErrorIs(t, getErr, persist.ErrNotFound)
}

func TestChat_AppendsTranscript(t *testing.T) {
	completer := &fakeCompleter{reply: "answer one"}
	assistant, _ := newTestAssistant(t, completer)
	ctx := context.Background()

	_, err := assistant.Chat(ctx, "s1", "first question", "en")
	require.NoError(t, err)
	completer.reply = "answer two"
	_, err = assistant.Chat(ctx, "s1", "second question", "en")
	require.NoError(t, err)

	transcript := assistant.Transcript(ctx, "s1")
	require.Len(t, transcript, 4)
	assert.Equal(t, models.SenderUser, transcript[0].Sender)
	assert.Equal(t, "first question", transcript[0].Text)
	assert.Equal(t, models.SenderBot, transcript[1].Sender)
	assert.Equal(t, "answer two", transcript[3].Text)
}

func TestHelpMeWrite_PersonaAndLanguage(t *testing.T) {
	completer := &fakeCompleter{reply: "I am writing to request support."}
	assistant, _ := newTestAssistant(t, completer)

	answer, err := assistant.HelpMeWrite(context.Background(), "s1",
		"Describe my financial hardship", "en", "")

	require.NoError(t, err)
	assert.Equal(t, "I am writing to request support.", answer)
	require.Len(t, completer.systemMessages, 3)
	assert.Contains(t, completer.systemMessages[0], "first person")
	assert.Contains(t, completer.systemMessages[2], "single plain paragraph")
	assert.Len(t, completer.userMessages, 1)
}

func TestHelpMeWrite_RevisesExistingText(t *testing.T) {
	completer := &fakeCompleter{reply: "improved text"}
	assistant, _ := newTestAssistant(t, completer)

	_, err := assistant.HelpMeWrite(context.Background(), "s1",
		"Describe my financial hardship", "en", "I lost my job last month.")

	require.NoError(t, err)
	require.Len(t, completer.userMessages, 2)
	assert.Contains(t, completer.userMessages[1], "already written")
	assert.Contains(t, completer.userMessages[1], "I lost my job last month.")
}

func TestHelpMeWrite_ArabicParagraphInstruction(t *testing.T) {
	completer := &fakeCompleter{reply: "ok"}
	assistant, _ := newTestAssistant(t, completer)

	_, err := assistant.HelpMeWrite(context.Background(), "s1", "اشرح وضعي المالي", "ar", "")

	require.NoError(t, err)
	assert.True(t, strings.Contains(completer.systemMessages[2], "Modern Standard Arabic"))
}

func TestTranscript_CorruptBlobYieldsEmpty(t *testing.T) {
	assistant, store := newTestAssistant(t, &fakeCompleter{reply: "ok"})
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, persist.ChatKey("s1"), "{broken"))

	assert.Empty(t, assistant.Transcript(ctx, "s1"))
}
