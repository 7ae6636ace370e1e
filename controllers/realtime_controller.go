package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/Alianama/food-gamification-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RealtimeController struct {
	hub *services.RealtimeHub
}

func NewRealtimeController(hub *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{hub: hub}
}

// Connect upgrades to a websocket and streams progress notifications
// until the client disconnects.
func (ctl *RealtimeController) Connect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &services.WSClient{UserID: currentUserID(c), Conn: conn}
	ctl.hub.Register(client)

	go ctl.keepAlive(client)
	ctl.readLoop(client)
}

func (ctl *RealtimeController) keepAlive(client *services.WSClient) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}

// readLoop drains incoming frames; the stream is server-to-client only,
// reading just detects disconnects.
func (ctl *RealtimeController) readLoop(client *services.WSClient) {
	defer ctl.hub.Unregister(client)
	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
