package alerts

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/service"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	defaultBufferSize = 16
)

// Alert is the message pushed to staff dashboards for an urgent symptom check
type Alert struct {
	SymptomCheckID     string    `json:"symptom_check_id"`
	PatientID          string    `json:"patient_id"`
	UrgencyScore       float64   `json:"urgency_score"`
	UrgencyDescription string    `json:"urgency_description"`
	TopCondition       string    `json:"top_condition"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewAlert builds the alert payload for a stored check
func NewAlert(check *domain.SymptomCheck) Alert {
	score := check.UrgencyScore()
	description := service.GetUrgencyDescription(score)
	if check.Result != nil && check.Result.UrgencyLevel.Description != "" {
		description = check.Result.UrgencyLevel.Description
	}
	return Alert{
		SymptomCheckID:     check.ID,
		PatientID:          check.PatientID,
		UrgencyScore:       score,
		UrgencyDescription: description,
		TopCondition:       check.Result.TopCondition(),
		CreatedAt:          check.CreatedAt,
	}
}

type client struct {
	id       string
	conn     *websocket.Conn
	messages chan []byte
	done     chan struct{}
	once     sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Hub fans urgent symptom checks out to connected websocket clients.
// A client whose queue is full is disconnected.
type Hub struct {
	logger     *logrus.Logger
	upgrader   websocket.Upgrader
	bufferSize int

	mu      sync.RWMutex
	clients map[string]*client
}

// NewHub creates a hub; bufferSize bounds each client's pending queue
func NewHub(bufferSize int, logger *logrus.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Hub{
		logger:     logger,
		bufferSize: bufferSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*client),
	}
}

// Publish implements domain.AlertPublisher
func (h *Hub) Publish(check *domain.SymptomCheck) {
	data, err := json.Marshal(NewAlert(check))
	if err != nil {
		h.logger.WithError(err).Error("Failed to encode alert")
		return
	}

	h.mu.RLock()
	var slow []*client
	for _, c := range h.clients {
		select {
		case c.messages <- data:
		default:
			slow = append(slow, c)
		}
	}
	delivered := len(h.clients) - len(slow)
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.WithField("client_id", c.id).Warn("Alert client too slow, disconnecting")
		h.unregister(c)
	}

	h.logger.WithFields(logrus.Fields{
		"symptom_check_id": check.ID,
		"urgency_score":    check.UrgencyScore(),
		"clients":          delivered,
	}).Debug("Alert published")
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

// Handler upgrades the request and streams alerts until the client goes away
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logger.WithError(err).Warn("Websocket upgrade failed")
			return
		}

		cl := &client{
			id:       uuid.New().String(),
			conn:     conn,
			messages: make(chan []byte, h.bufferSize),
			done:     make(chan struct{}),
		}
		h.register(cl)

		go h.readPump(cl)
		h.writePump(cl)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c.id] = c
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.WithFields(logrus.Fields{
		"client_id": c.id,
		"clients":   total,
	}).Info("Alert client connected")
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()

	c.close()
	if ok {
		h.logger.WithField("client_id", c.id).Info("Alert client disconnected")
	}
}

// readPump discards inbound frames and detects disconnects
func (h *Hub) readPump(c *client) {
	defer h.unregister(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.unregister(c)
	}()

	for {
		select {
		case <-c.done:
			return
		case message := <-c.messages:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
