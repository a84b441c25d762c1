package websocket

import (
	"crypto/rand"
	"fmt"

	"github.com/labstack/echo/v4"
)

// Handler upgrades "/ws" requests and keeps the connection registered
// until the peer goes away.
func (s *Server) Handler(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := NewClient(conn, newSessionID())
	s.hub.Register(client)

	client.Run()

	defer s.hub.Unregister(client)

	// Wait for the client context to be done (connection closed)
	<-client.Context().Done()

	return nil
}

func newSessionID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return fmt.Sprintf("%x", bytes)
}
