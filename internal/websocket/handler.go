package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Upgrade is route-level middleware that rejects plain HTTP requests to the
// WebSocket endpoint with 426 Upgrade Required.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve returns the WebSocket handler for GET /ws/matches/:id.
// It registers the connection with the Hub, streams broadcasts to the socket,
// and unregisters on any read or write failure. Inbound frames are drained and
// discarded — the stream is one-way, server to client.
func Serve(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			MatchID: conn.Params("id"),
			Send:    make(chan []byte, 16),
		}
		hub.Register(client)

		// Writer: drain the Send channel into the socket. The Hub closes
		// Send on unregister, which ends this goroutine.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for data := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}
		}()

		// Reader: block until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		hub.Unregister(client)
		<-done
	})
}
