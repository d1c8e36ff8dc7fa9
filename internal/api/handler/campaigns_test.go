package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
	"github.com/vfg2006/nudge-marketing-api/internal/usecases/campaigning"
)

// stubDispatcher devolve um roteiro fixo de eventos e resultados
type stubDispatcher struct {
	result *domain.DispatchResult
	events []campaigning.ProgressEvent
	opts   campaigning.Options
}

func (s *stubDispatcher) Dispatch(_ context.Context, _ []domain.Match, opts campaigning.Options) *domain.DispatchResult {
	s.opts = opts
	return s.result
}

func (s *stubDispatcher) DispatchWithProgress(_ context.Context, _ []domain.Match, opts campaigning.Options, emit campaigning.ProgressFunc) *domain.DispatchResult {
	s.opts = opts
	for _, event := range s.events {
		emit(event)
	}
	return s.result
}

func (s *stubDispatcher) Preview(context.Context, domain.Customer, *domain.Product) domain.GeneratedEmail {
	return domain.GeneratedEmail{Success: true}
}

func dispatchBody(t *testing.T) *strings.Reader {
	t.Helper()
	body, err := json.Marshal(DispatchRequest{
		CampaignID: "camp-001",
		ChunkSize:  2,
		Matches: []domain.Match{
			{Customer: domain.Customer{ID: "c1", Email: "c1@example.com"}, Success: true},
		},
	})
	require.NoError(t, err)
	return strings.NewReader(string(body))
}

func TestDispatchCampaign(t *testing.T) {
	dispatcher := &stubDispatcher{
		result: &domain.DispatchResult{
			CampaignID: "camp-001",
			Results:    []domain.SendResult{{CustomerID: "c1", Success: true, MessageID: "msg-1"}},
			Summary:    domain.DispatchSummary{Total: 1, Attempted: 1, Succeeded: 1},
		},
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/campaigns/dispatch", dispatchBody(t))

	DispatchCampaign(dispatcher)(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "camp-001", dispatcher.opts.CampaignID)
	assert.Equal(t, 2, dispatcher.opts.ChunkSize)

	var result domain.DispatchResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, "camp-001", result.CampaignID)
	assert.Equal(t, 1, result.Summary.Succeeded)
}

func TestDispatchCampaign_SemMatches(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/campaigns/dispatch", strings.NewReader(`{"matches": []}`))

	DispatchCampaign(&stubDispatcher{})(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "VAL_002")
}

func TestDispatchCampaignStream(t *testing.T) {
	dispatcher := &stubDispatcher{
		result: &domain.DispatchResult{CampaignID: "camp-001"},
		events: []campaigning.ProgressEvent{
			{Type: campaigning.EventTypeStatus, Phase: campaigning.PhaseInit, Message: "Iniciando disparo", Percent: 0},
			{Type: campaigning.EventTypeStatus, Phase: campaigning.PhaseGenerating, Message: "Gerando e-mails", Percent: 10},
			{Type: campaigning.EventTypeComplete, Phase: campaigning.PhaseDone, Message: "Disparo concluído", Percent: 100, Result: &domain.DispatchResult{CampaignID: "camp-001"}},
		},
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/campaigns/dispatch/stream", dispatchBody(t))

	DispatchCampaignStream(dispatcher)(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/event-stream", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", recorder.Header().Get("Cache-Control"))
	assert.True(t, recorder.Flushed)

	// Cada marco vira um frame "data: <json>" separado por linha em branco
	frames := strings.Split(strings.TrimSpace(recorder.Body.String()), "\n\n")
	require.Len(t, frames, 3)

	var events []campaigning.ProgressEvent
	for _, frame := range frames {
		require.True(t, strings.HasPrefix(frame, "data: "))

		var event campaigning.ProgressEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(frame, "data: ")), &event))
		events = append(events, event)
	}

	assert.Equal(t, campaigning.EventTypeStatus, events[0].Type)
	assert.Equal(t, campaigning.PhaseInit, events[0].Phase)
	assert.Equal(t, campaigning.EventTypeComplete, events[2].Type)
	require.NotNil(t, events[2].Result)
	assert.Equal(t, "camp-001", events[2].Result.CampaignID)
}
