package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rustyeddy/sizer/form"
)

const (
	wsReadLimit = 4 << 10
	wsIdle      = 2 * time.Minute
	wsWriteWait = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// wsMessage is one edit from the page: a single field change, or a
// complete set of inputs either under "inputs" or as the message itself.
type wsMessage struct {
	Field  string       `json:"field,omitempty"`
	Value  Text         `json:"value"`
	Inputs *CalcRequest `json:"inputs,omitempty"`
}

// handleWS keeps one Calculator per connection. Every message is applied
// in order and answered with the new evaluation.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	start, err := overlay(s.defaults, r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	log := s.log.With().Str("remote", r.RemoteAddr).Logger()
	log.Debug().Msg("websocket connected")

	conn.SetReadLimit(wsReadLimit)
	calc := form.NewCalculator(start)

	send := func(resp CalcResponse) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(resp)
	}
	if err := send(NewCalcResponse(calc.Inputs(), calc.Outcome())); err != nil {
		return
	}

	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdle))
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("websocket closed")
			}
			return
		}

		resp := s.applyMessage(calc, data)
		if err := send(resp); err != nil {
			log.Debug().Err(err).Msg("websocket write")
			return
		}
	}
}

func (s *Server) applyMessage(calc *form.Calculator, data []byte) CalcResponse {
	var msg wsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return errorResponse("invalid message")
	}
	if msg.Field == "" && msg.Inputs == nil {
		bare, err := bareInputs(data)
		if err != nil {
			return errorResponse("invalid message")
		}
		msg.Inputs = bare
	}

	switch {
	case msg.Inputs != nil:
		raw, err := msg.Inputs.Inputs()
		if err != nil {
			return errorResponse(err.Error())
		}
		calc.SetAll(raw)
	case msg.Field != "":
		if err := calc.Set(msg.Field, string(msg.Value)); err != nil {
			return errorResponse(err.Error())
		}
	default:
		return errorResponse("message needs field or inputs")
	}
	return NewCalcResponse(calc.Inputs(), calc.Outcome())
}

var inputKeys = []string{"capital", "risk", "entry", "stop", "leverage", "direction"}

// bareInputs reads a message that is a CalcRequest on its own. It returns
// nil when the message carries none of the input fields.
func bareInputs(data []byte) (*CalcRequest, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, err
	}
	for _, k := range inputKeys {
		if _, ok := keys[k]; ok {
			var req CalcRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return nil, err
			}
			return &req, nil
		}
	}
	return nil, nil
}
