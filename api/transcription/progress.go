package transcription

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/killallgit/scriptify/api/types"
	"github.com/killallgit/scriptify/internal/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ProgressMessage is one frame of the progress stream
type ProgressMessage struct {
	Type string     `json:"type"` // "progress" until the final frame, then the terminal status
	Job  models.Job `json:"job"`
}

// Progress streams job snapshots over a websocket
// @Summary      Stream transcription progress
// @Description  Upgrades to a websocket that sends the job snapshot on connect and after every
// @Description  progress update. The final frame carries the terminal status, then the server closes.
// @Tags         transcription
// @Param        id path string true "Job ID"
// @Success      101 {object} ProgressMessage
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/transcriptions/{id}/progress [get]
func Progress(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("id")
		updates, unsubscribe, err := deps.Workspace.Jobs().Subscribe(jobID)
		if err != nil {
			types.SendError(c, err)
			return
		}
		defer unsubscribe()

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WARN] Progress websocket upgrade failed for job %s: %v", jobID, err)
			return
		}
		defer conn.Close()

		streamProgress(conn, updates)
	}
}

func streamProgress(conn *websocket.Conn, updates <-chan models.Job) {
	// The read side only services control frames and notices the client leaving
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case job, ok := <-updates:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "job finished"))
				return
			}

			msg := ProgressMessage{Type: "progress", Job: job}
			if job.IsTerminal() {
				msg.Type = string(job.Status)
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("[DEBUG] Progress websocket write failed for job %s: %v", job.ID, err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-closed:
			return
		}
	}
}
