package campaigning

import "github.com/vfg2006/nudge-marketing-api/internal/domain"

// Tipos de evento emitidos durante um disparo com progresso
const (
	EventTypeStatus   = "status"
	EventTypeChunk    = "chunk"
	EventTypeComplete = "complete"
	EventTypeError    = "error"
)

// Fases de uma rodada de disparo
const (
	PhaseInit       = "init"
	PhaseGenerating = "generating"
	PhaseSending    = "sending"
	PhaseDone       = "done"
)

// ProgressEvent é um marco de progresso emitido pelo stream do disparo
type ProgressEvent struct {
	Type    string                 `json:"type"`
	Phase   string                 `json:"phase,omitempty"`
	Message string                 `json:"message"`
	Percent int                    `json:"percent"`
	Results []domain.SendResult    `json:"results,omitempty"`
	Result  *domain.DispatchResult `json:"result,omitempty"`
}

// ProgressFunc recebe cada evento de progresso. É chamada de forma síncrona
// na goroutine do disparo, sempre na ordem dos marcos.
type ProgressFunc func(event ProgressEvent)
