package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/yourusername/aptitude-api/internal/service"
	"github.com/yourusername/aptitude-api/internal/service/dailyquiz"
)

// WSHandler стримит прогресс подготовки дневного набора по WebSocket,
// избавляя клиента от HTTP-поллинга /daily/status
type WSHandler struct {
	dailyService *service.DailyService
}

// NewWSHandler создает новый обработчик WebSocket
func NewWSHandler(dailyService *service.DailyService) *WSHandler {
	return &WSHandler{dailyService: dailyService}
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin пустой — не браузерный клиент (мобильное приложение, curl),
		// такие подключения разрешаем
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		// Список разрешенных origin (синхронизирован с CORS в main.go)
		allowedOrigins := []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}
		for _, allowed := range allowedOrigins {
			if origin == allowed {
				return true
			}
		}

		log.Printf("WebSocket: rejected unauthorized origin: %s", origin)
		return false
	},
}

const (
	statusPollInterval = 500 * time.Millisecond
	statusWriteWait    = 10 * time.Second
	statusStreamLimit  = 5 * time.Minute
)

// StreamDailyStatus апгрейдит соединение и шлет снимки прогресса, пока
// выдача не достигнет ready/error или клиент не отключится
func (h *WSHandler) StreamDailyStatus(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Ошибка апгрейда соединения для user=%d: %v", userID, err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(statusPollInterval)
	defer ticker.Stop()

	deadline := time.After(statusStreamLimit)
	var lastPhase string

	for {
		select {
		case <-deadline:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			status, err := h.dailyService.GetStatus(userID)
			if err != nil {
				log.Printf("[WS] Ошибка чтения прогресса для user=%d: %v", userID, err)
				continue
			}

			// Шлем только изменения фазы и прогресс генерации
			if status.Phase == lastPhase && status.Phase != dailyquiz.PhaseGenerating {
				continue
			}
			lastPhase = status.Phase

			conn.SetWriteDeadline(time.Now().Add(statusWriteWait))
			if err := conn.WriteJSON(status); err != nil {
				return
			}

			if status.Phase == dailyquiz.PhaseReady || status.Phase == dailyquiz.PhaseError {
				conn.SetWriteDeadline(time.Now().Add(statusWriteWait))
				conn.WriteMessage(gorillaws.CloseMessage,
					gorillaws.FormatCloseMessage(gorillaws.CloseNormalClosure, status.Phase))
				return
			}
		}
	}
}
