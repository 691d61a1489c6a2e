package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/HerbHall/terroir/pkg/models"
)

// liveReadLimit bounds a single client message.
const liveReadLimit = 4096

// LiveError is sent in place of a result when a client message cannot be
// used. Field names the offending input field, when there is one. The
// connection stays open.
type LiveError struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// handleLive upgrades to a websocket and answers every TerroirInput message
// with a fresh SimulationResponse. Each message is simulated independently;
// fields omitted from a message take the default terroir.
//
//	@Summary		Live simulation
//	@Description	WebSocket. Send TerroirInput JSON text messages; each is answered with a SimulationResponse.
//	@Tags			simulate
//	@Router			/simulate/live [get]
func (h *Handler) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		// Accept has already written the HTTP error response.
		h.logger.Debug("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(liveReadLimit)

	if err := h.serveLive(r.Context(), conn); err != nil {
		h.logger.Debug("live session ended", zap.Error(err))
		return
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

func (h *Handler) serveLive(ctx context.Context, conn *websocket.Conn) error {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			return err
		}
		if typ != websocket.MessageText {
			if err := wsjson.Write(ctx, conn, LiveError{Error: "expected a text message"}); err != nil {
				return err
			}
			continue
		}

		input, err := decodeInput(func(v any) error { return json.Unmarshal(data, v) })
		if err != nil {
			h.metrics.RecordInvalidInput(TransportWebSocket)
			if err := wsjson.Write(ctx, conn, liveError(err)); err != nil {
				return err
			}
			continue
		}

		if err := wsjson.Write(ctx, conn, h.run(TransportWebSocket, input)); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func liveError(err error) LiveError {
	var fe *models.FieldError
	if errors.As(err, &fe) {
		return LiveError{Error: fe.Error(), Field: fe.Field}
	}
	return LiveError{Error: "invalid terroir input"}
}
