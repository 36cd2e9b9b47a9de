package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"vault/internal/game"
	"vault/pkg/realtime"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxMessage = 4096
)

// ChannelHandler exposes the event bus over WebSocket so external clients can
// publish to and subscribe on a topic. Inbound payloads are validated before
// they reach other subscribers.
type ChannelHandler struct {
	bus      *realtime.Bus
	upgrader websocket.Upgrader
}

func NewChannelHandler(bus *realtime.Bus) *ChannelHandler {
	return &ChannelHandler{
		bus: bus,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *ChannelHandler) RegisterRoutes(r chi.Router) {
	r.Get("/channel/{topic}", h.serve)
}

// validate decodes payload for topic and returns the normalised event to
// publish.
func validate(topic string, payload []byte) (any, error) {
	if topic == game.TopicComments {
		return game.DecodeComment(payload)
	}
	return game.DecodeScore(payload)
}

func knownTopic(topic string) bool {
	switch topic {
	case game.TopicScores, game.TopicPledges, game.TopicComments:
		return true
	}
	return false
}

func (h *ChannelHandler) serve(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	if !knownTopic(topic) {
		http.NotFound(w, r)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade failed topic=%s err=%v", topic, err)
		return
	}
	defer conn.Close()

	sub := h.bus.Subscribe(topic)
	var once sync.Once
	unsubscribe := func() { once.Do(func() { h.bus.Unsubscribe(topic, sub) }) }
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writeLoop(conn, sub)
	}()

	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("channel read error topic=%s err=%v", topic, err)
			}
			break
		}
		ev, err := validate(topic, payload)
		if err != nil {
			log.Printf("discarding malformed message topic=%s err=%v", topic, err)
			continue
		}
		if err := h.bus.PublishJSON(topic, ev); err != nil {
			log.Printf("channel publish error topic=%s err=%v", topic, err)
		}
	}

	// Closing the subscription ends the write loop.
	unsubscribe()
	<-done
}

func (h *ChannelHandler) writeLoop(conn *websocket.Conn, sub chan realtime.Message) {
	// A failed write closes the connection so the read loop returns too.
	defer conn.Close()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case msg, ok := <-sub:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg.Data); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
