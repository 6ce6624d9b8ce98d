package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/footagents/internal/middleware"
	"github.com/jwebster45206/footagents/internal/services"
	"github.com/jwebster45206/footagents/internal/storage"
	"github.com/jwebster45206/footagents/pkg/chat"
	"github.com/jwebster45206/footagents/pkg/chatbridge"
	"github.com/jwebster45206/footagents/pkg/state"
	"github.com/jwebster45206/footagents/pkg/textfilter"
)

type fakeSpeaker struct{ id, name string }

func (s fakeSpeaker) ID() string   { return s.id }
func (s fakeSpeaker) Name() string { return s.name }

// newTestAPI serves the full route table over a miniredis-backed store.
func newTestAPI(t *testing.T) (*httptest.Server, *miniredis.Miniredis, *services.MockLLMAPI) {
	t.Helper()
	mr := miniredis.RunT(t)
	dataDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "legends"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "legends", "zidane.json"),
		[]byte(`{"name":"Zinedine Zidane","position":"Midfielder","perspective":"Calm and elegant"}`), 0o644))

	store, err := storage.NewRedisStorage("redis://"+mr.Addr(), dataDir, time.Hour, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	llm := services.NewMockLLMAPI()
	log := testLogger()

	mux := http.NewServeMux()
	mux.Handle("/health", NewHealthHandler(store, llm, log))
	characters := NewCharacterHandler(log, store)
	mux.Handle("/characters", characters)
	mux.Handle("/characters/", characters)
	mux.Handle("/chat", NewChatHandler(llm, store, 20, log).WithFilter(textfilter.New(textfilter.Options{Censor: true})))
	mux.Handle("/reset-memory", NewResetMemoryHandler(store, log))
	mux.Handle("/conversations/", NewConversationHandler(store, log))

	srv := httptest.NewServer(middleware.Chain(mux,
		middleware.Recover(log),
		middleware.Logger(log),
		middleware.CORS(),
	))
	t.Cleanup(srv.Close)
	return srv, mr, llm
}

func TestAPI_GameFlow(t *testing.T) {
	srv, mr, llm := newTestAPI(t)
	ctx := t.Context()
	bridge := chatbridge.NewClient(srv.URL, srv.Client(), testLogger())
	kaka := fakeSpeaker{id: "kaka", name: "Kaká"}

	// two turns with the same legend share one stored conversation
	first := bridge.SendMessage(ctx, kaka, "How do I stay calm?")
	assert.Contains(t, first, "How do I stay calm?")
	bridge.SendMessage(ctx, kaka, "And before a final?")
	require.Equal(t, 2, llm.CallCount())
	assert.Len(t, llm.ChatCalls[1].Messages, 5)

	id := state.DefaultConversationID("kaka")
	assert.True(t, mr.Exists("conversation:"+id.String()))

	resp, err := srv.Client().Get(srv.URL + "/conversations/" + id.String())
	require.NoError(t, err)
	var conv state.Conversation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&conv))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, conv.ChatHistory, 4)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	// a card from the data dir is voiced too
	zizou := bridge.SendMessage(ctx, fakeSpeaker{id: "zidane", name: "Zinedine Zidane"}, "Teach me the roulette")
	assert.Contains(t, zizou, "roulette")

	reset, err := bridge.ResetMemory(ctx)
	require.NoError(t, err)
	assert.Equal(t, "success", reset.Status)
	assert.Equal(t, 2, reset.Cleared)
	assert.False(t, mr.Exists("conversation:"+id.String()))
}

func TestAPI_UnknownCharacterFallsBack(t *testing.T) {
	srv, _, llm := newTestAPI(t)
	bridge := chatbridge.NewClient(srv.URL, srv.Client(), testLogger())

	reply := bridge.SendMessage(t.Context(), fakeSpeaker{id: "nobody", name: "Nobody"}, "Hello?")
	assert.Equal(t, chatbridge.FallbackResponse("Nobody"), reply)
	assert.Zero(t, llm.CallCount())
}

func TestAPI_CORSPreflight(t *testing.T) {
	srv, _, _ := newTestAPI(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/chat", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAPI_HealthDegradesWithoutRedis(t *testing.T) {
	srv, mr, _ := newTestAPI(t)
	mr.Close()

	resp, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "degraded", health.Status)
}

func TestAPI_ChatRejectsBadBody(t *testing.T) {
	srv, _, _ := newTestAPI(t)

	resp, err := srv.Client().Post(srv.URL+"/chat", "application/json", strings.NewReader(`{"message":""}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body chat.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "message cannot be empty", body.Error)
}
