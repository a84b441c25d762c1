package websocket

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"apyx-assistant/domain"
	"apyx-assistant/usecase"
	"apyx-assistant/utils/log"
)

// Server pushes completed chat exchanges to connected browsers so open
// sessions render history live instead of polling /api/conversations.
type Server struct {
	upgrader websocket.Upgrader
	broker   domain.MessageBroker
	hub      *Hub
}

func NewServer(broker domain.MessageBroker) *Server {
	server := &Server{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		broker:   broker,
		hub:      NewHub(),
	}

	go server.startExchangeListener()

	return server
}

func (s *Server) RunWebsocketHub() {
	s.hub.Run()
}

// startExchangeListener relays exchange events from the broker to every
// connected WebSocket client.
func (s *Server) startExchangeListener() {
	ctx := context.Background()

	messageChan, err := s.broker.Subscribe(ctx, usecase.ExchangeTopic, "")
	if err != nil {
		log.WithCtx(ctx).Error("failed to subscribe to exchange topic", zap.Error(err))
		return
	}

	log.WithCtx(ctx).Info("WebSocket server listening for chat exchanges")

	for {
		select {
		case msg, ok := <-messageChan:
			if !ok {
				log.WithCtx(ctx).Info("exchange topic closed, listener stopped")
				return
			}

			var event domain.ExchangeEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				log.WithCtx(ctx).Error("failed to unmarshal exchange event", zap.Error(err))
				continue
			}

			wsMessage := map[string]interface{}{
				"type":        "exchange",
				"exchange_id": event.ExchangeID,
				"message":     event.Message,
				"response":    event.Response,
				"language":    event.Language,
				"timestamp":   event.Timestamp,
			}

			jsonData, err := json.Marshal(wsMessage)
			if err != nil {
				log.WithCtx(ctx).Error("failed to marshal WebSocket message", zap.Error(err))
				continue
			}

			s.hub.Broadcast(jsonData)
			log.WithCtx(ctx).Debug("broadcasted exchange to WebSocket clients",
				zap.Int("exchange_id", event.ExchangeID),
				zap.String("language", event.Language))

		case <-ctx.Done():
			log.WithCtx(ctx).Info("exchange listener stopped")
			return
		}
	}
}
