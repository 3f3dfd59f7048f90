// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/firstverify-chat/internal/agent"
	"github.com/jeranaias/firstverify-chat/internal/config"
	"github.com/jeranaias/firstverify-chat/internal/logging"
	"github.com/jeranaias/firstverify-chat/internal/model"
)

// =============================================================================
// HELPERS
// =============================================================================

// fakeAgent records each request body and answers with a fixed status and
// body.
type fakeAgent struct {
	mu       sync.Mutex
	status   int
	body     string
	requests []map[string]any
	types    []string
}

func (f *fakeAgent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.types = append(f.types, r.Header.Get("Content-Type"))
	status, body := f.status, f.body
	f.mu.Unlock()

	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// recorded returns the request bodies and content types seen so far.
func (f *fakeAgent) recorded() ([]map[string]any, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.requests...), append([]string(nil), f.types...)
}

func (f *fakeAgent) setBody(body string) {
	f.mu.Lock()
	f.body = body
	f.mu.Unlock()
}

func replyJSON(t *testing.T, text string) string {
	t.Helper()
	b, err := json.Marshal(map[string]string{"response": text})
	require.NoError(t, err)
	return string(b)
}

func newTestModel(t *testing.T, handler http.Handler) Model {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.UI.Theme = "dark"
	cfg.UI.Animate = false

	client := agent.NewClientWithConfig(&agent.ClientConfig{
		BaseURL: server.URL,
		Logger:  logging.Discard(),
	})
	m := New(Options{
		Config:    cfg,
		Client:    client,
		Logger:    logging.Discard(),
		ExportDir: t.TempDir(),
	})
	return step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

// step feeds one message and drops the command.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	return step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// submit presses enter and returns the model and the agent outcome
// message, if a request was sent.
func submit(t *testing.T, m Model) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd == nil {
		return m, nil
	}

	msgs := []tea.Msg{cmd()}
	if batch, ok := msgs[0].(tea.BatchMsg); ok {
		msgs = msgs[:0]
		for _, c := range batch {
			if c != nil {
				msgs = append(msgs, c())
			}
		}
	}
	for _, msg := range msgs {
		switch msg.(type) {
		case ChatReplyMsg, ChatErrorMsg:
			return m, msg
		}
	}
	return m, nil
}

// roundTrip types text, submits it and delivers the outcome.
func roundTrip(t *testing.T, m Model, text string) Model {
	t.Helper()
	m = typeText(t, m, text)
	m, outcome := submit(t, m)
	require.NotNil(t, outcome, "submit sent no request")
	return step(t, m, outcome)
}

func lastMessage(m Model) *model.Message {
	return m.Transcript().Last()
}

// =============================================================================
// SUBMIT TESTS
// =============================================================================

func TestNew_StartsInHeroWithGreeting(t *testing.T) {
	m := newTestModel(t, &fakeAgent{status: 200})

	assert.Equal(t, StageHero, m.Stage())
	assert.False(t, m.Loading())
	require.Equal(t, 1, m.Transcript().Len())
	assert.Equal(t, model.DefaultGreeting, lastMessage(m).Content)
	assert.Contains(t, m.View(), "FirstVerify Chat")
}

func TestSubmit_BlankInputIsIgnored(t *testing.T) {
	fa := &fakeAgent{status: 200}
	m := newTestModel(t, fa)

	for _, text := range []string{"", "   ", "\t"} {
		m = typeText(t, m, text)
		var outcome tea.Msg
		m, outcome = submit(t, m)
		assert.Nil(t, outcome, "blank input %q sent a request", text)
	}
	assert.Equal(t, 1, m.Transcript().Len())
	assert.Equal(t, StageHero, m.Stage())
	reqs, _ := fa.recorded()
	assert.Empty(t, reqs)
}

func TestSubmit_IgnoredWhileLoading(t *testing.T) {
	m := newTestModel(t, &fakeAgent{status: 200, body: `{"response":"ok"}`})

	m = typeText(t, m, "first")
	m, outcome := submit(t, m)
	require.NotNil(t, outcome)
	require.True(t, m.Loading())

	m = typeText(t, m, "second")
	m, again := submit(t, m)
	assert.Nil(t, again, "second submit while loading sent a request")
	assert.Equal(t, "second", m.Input(), "input should be kept while loading")
	assert.Equal(t, 2, m.Transcript().Len())
}

func TestSubmit_SendsWholeConversation(t *testing.T) {
	fa := &fakeAgent{status: 200, body: `{"response":"Hi there"}`}
	m := newTestModel(t, fa)

	m = typeText(t, m, "Hello")
	m, outcome := submit(t, m)

	// Optimistic state before the reply lands
	assert.True(t, m.Loading())
	assert.Equal(t, "", m.Input())
	assert.Equal(t, StageActive, m.Stage())
	assert.Equal(t, model.RoleUser, lastMessage(m).Role)

	m = step(t, m, outcome)
	assert.False(t, m.Loading())
	assert.Equal(t, "Hi there", lastMessage(m).Content)
	assert.Equal(t, model.RoleAssistant, lastMessage(m).Role)

	reqs, types := fa.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "application/json", types[0])
	msgs, ok := reqs[0]["messages"].([]any)
	require.True(t, ok, "request has no messages array")
	require.Len(t, msgs, 2)
	assert.Equal(t, map[string]any{"role": "assistant", "content": model.DefaultGreeting}, msgs[0])
	assert.Equal(t, map[string]any{"role": "user", "content": "Hello"}, msgs[1])
}

func TestSubmit_KeepsUntrimmedText(t *testing.T) {
	fa := &fakeAgent{status: 200, body: `{"response":"ok"}`}
	m := newTestModel(t, fa)

	roundTrip(t, m, "  padded  ")
	reqs, _ := fa.recorded()
	require.Len(t, reqs, 1)
	msgs := reqs[0]["messages"].([]any)
	assert.Equal(t, "  padded  ", msgs[1].(map[string]any)["content"])
}

// =============================================================================
// REPLY TESTS
// =============================================================================

func TestReply_PayloadFeedsBars(t *testing.T) {
	raw := "What color?\n```json\n{\"questions\":[{\"question\":\"What color?\",\"answers\":[{\"label\":\"Red\",\"percentage\":60},{\"label\":\"Blue\",\"percentage\":40}]}]}\n```"
	m := newTestModel(t, &fakeAgent{status: 200, body: replyJSON(t, raw)})

	m = roundTrip(t, m, "colors?")

	last := lastMessage(m)
	assert.Equal(t, "What color?", last.Content)
	require.NotNil(t, last.Payload)
	assert.Same(t, last.Payload, m.Payload())
	assert.Contains(t, m.View(), "Red (60%)")
}

func TestReply_InvalidJSONKeepsRawText(t *testing.T) {
	raw := "Here:\n```json\n{not json}\n```"
	m := newTestModel(t, &fakeAgent{status: 200, body: replyJSON(t, raw)})

	m = roundTrip(t, m, "go")

	assert.Equal(t, raw, lastMessage(m).Content)
	assert.Nil(t, lastMessage(m).Payload)
	assert.Nil(t, m.Payload())
	assert.Contains(t, m.View(), "Analysis will appear here")
}

func TestReply_BarsFollowNewestPayload(t *testing.T) {
	fa := &fakeAgent{status: 200}
	m := newTestModel(t, fa)

	fa.setBody(replyJSON(t, "a\n```json\n{\"questions\":[{\"question\":\"First?\",\"answers\":[]}]}\n```"))
	m = roundTrip(t, m, "one")
	first := m.Payload()
	require.NotNil(t, first)

	// A reply without a payload keeps the previous one on display.
	fa.setBody(replyJSON(t, "plain text"))
	m = roundTrip(t, m, "two")
	assert.Same(t, first, m.Payload())

	fa.setBody(replyJSON(t, "b\n```json\n{\"questions\":[{\"question\":\"Second?\",\"answers\":[{\"label\":\"x\",\"percentage\":5}]}]}\n```"))
	m = roundTrip(t, m, "three")
	require.NotNil(t, m.Payload())
	assert.Equal(t, "Second?", m.Payload().Questions[0].Question)
}

// Replies are applied to whatever transcript exists when they arrive.
// Submissions are blocked while loading, so this only matters for a reply
// nobody is waiting for.
func TestReply_UnsolicitedReplyIsAppended(t *testing.T) {
	fa := &fakeAgent{status: 200, body: replyJSON(t, "first")}
	m := newTestModel(t, fa)
	m = roundTrip(t, m, "one")
	require.False(t, m.Loading())
	before := m.Transcript().Len()

	m = step(t, m, ChatReplyMsg{Raw: "late\n```json\n{\"questions\":[{\"question\":\"Late?\",\"answers\":[]}]}\n```"})

	require.Equal(t, before+1, m.Transcript().Len())
	assert.Equal(t, "late", lastMessage(m).Content)
	assert.Equal(t, model.RoleAssistant, lastMessage(m).Role)
	require.NotNil(t, m.Payload(), "last reply wins")
	assert.Equal(t, "Late?", m.Payload().Questions[0].Question)

	// A stray reply during a pending request clears loading; the real
	// reply is still appended after it.
	m = typeText(t, m, "two")
	m, outcome := submit(t, m)
	require.True(t, m.Loading())
	require.NotNil(t, outcome)

	m = step(t, m, ChatReplyMsg{Raw: "stray"})
	assert.False(t, m.Loading())
	m = step(t, m, outcome)

	msgs := m.Transcript().Messages()
	require.GreaterOrEqual(t, len(msgs), 3)
	assert.Equal(t, "two", msgs[len(msgs)-3].Content)
	assert.Equal(t, "stray", msgs[len(msgs)-2].Content)
	assert.Equal(t, "first", msgs[len(msgs)-1].Content)
}

// =============================================================================
// FAILURE TESTS
// =============================================================================

func TestFailure_BadStatusAppendsFallback(t *testing.T) {
	m := newTestModel(t, &fakeAgent{status: 500, body: `{"detail":"boom"}`})

	m = roundTrip(t, m, "hello")

	assert.Equal(t, model.FallbackReply, lastMessage(m).Content)
	assert.Equal(t, model.RoleAssistant, lastMessage(m).Role)
	assert.False(t, m.Loading())
	assert.Equal(t, StageActive, m.Stage(), "layout never returns to hero")
}

func TestFailure_TransportErrorAppendsFallback(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := agent.NewClientWithConfig(&agent.ClientConfig{BaseURL: url, Logger: logging.Discard()})
	m := New(Options{Client: client, Logger: logging.Discard()})

	m = roundTrip(t, m, "anyone?")
	assert.Equal(t, model.FallbackReply, lastMessage(m).Content)
	assert.False(t, m.Loading())
}

func TestFailure_ErrorMessageDirect(t *testing.T) {
	m := newTestModel(t, &fakeAgent{status: 200})
	m = typeText(t, m, "x")
	m, _ = submit(t, m)

	m = step(t, m, ChatErrorMsg{Err: errors.New("connection reset")})
	assert.Equal(t, model.FallbackReply, lastMessage(m).Content)
	assert.NotContains(t, lastMessage(m).Content, "connection reset")
}

// =============================================================================
// KEY AND CONFIG TESTS
// =============================================================================

func TestKeys_FocusShowsTooltip(t *testing.T) {
	raw := "x\n```json\n{\"questions\":[{\"question\":\"Q\",\"answers\":[{\"label\":\"Yes\",\"percentage\":70},{\"label\":\"No\",\"percentage\":30}]}]}\n```"
	m := newTestModel(t, &fakeAgent{status: 200, body: replyJSON(t, raw)})
	m = roundTrip(t, m, "q")

	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "Yes: 70%")

	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "No: 30%")

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, m.View(), "No: 30%")
}

func TestKeys_ExportWritesFile(t *testing.T) {
	m := newTestModel(t, &fakeAgent{status: 200, body: `{"response":"ok"}`})
	m = roundTrip(t, m, "save me")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)
	require.NotNil(t, cmd)

	done, ok := cmd().(ExportDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	_, err := os.Stat(done.Path)
	assert.NoError(t, err)

	m = step(t, m, done)
	notice := lastMessage(m)
	assert.Equal(t, model.RoleSystem, notice.Role)
	assert.True(t, strings.HasPrefix(notice.Content, "[OK] Exported to "))

	// Local notices are never sent upstream.
	for _, w := range m.Transcript().WireMessages() {
		assert.NotEqual(t, "system", w.Role)
	}
}

func TestConfigReload_AppliesUISettings(t *testing.T) {
	m := newTestModel(t, &fakeAgent{status: 200})

	cfg := config.Default()
	cfg.UI.BarWidth = 12
	m = step(t, m, ConfigReloadedMsg{Config: cfg})
	assert.Equal(t, 12, m.cfg.UI.BarWidth)

	m = step(t, m, ConfigReloadedMsg{Err: errors.New("bad toml")})
	assert.Equal(t, 12, m.cfg.UI.BarWidth, "failed reload must keep the previous config")
}

func TestView_NarrowStacksPanel(t *testing.T) {
	m := newTestModel(t, &fakeAgent{status: 200, body: `{"response":"ok"}`})
	m = roundTrip(t, m, "hi")

	m = step(t, m, tea.WindowSizeMsg{Width: 70, Height: 30})
	_, _, beside := m.panelGeometry()
	assert.False(t, beside)

	m = step(t, m, tea.WindowSizeMsg{Width: 140, Height: 30})
	_, _, beside = m.panelGeometry()
	assert.True(t, beside)
	assert.Equal(t, StageActive, m.Stage())
}
