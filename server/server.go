package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/pokerlabs/holdemd/domain"
	"github.com/pokerlabs/holdemd/server/connection"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// Server represents the WebSocket server
type Server struct {
	registry    *Registry
	coordinator *Coordinator
	connMgr     *connection.Manager
	cmdRouter   *CommandRouter
	logger      logrus.FieldLogger
}

// TableResponse represents a table in API responses
type TableResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	PlayerCount int      `json:"playerCount"`
	Players     []string `json:"players"`
	Phase       string   `json:"phase"`
	Pot         int      `json:"pot"`
}

// CreateTableRequest represents the request to create a new table
type CreateTableRequest struct {
	Name          string `json:"name"`
	StartingStack int    `json:"startingStack"`
	MaxPlayers    int    `json:"maxPlayers"`
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// NewServer creates a new poker WebSocket server
func NewServer(logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	registry := NewRegistry(logger)
	coordinator := NewCoordinator(registry, logger)
	connMgr := connection.NewManager()
	cmdRouter := NewCommandRouter(registry, coordinator, connMgr, logger)

	return &Server{
		registry:    registry,
		coordinator: coordinator,
		connMgr:     connMgr,
		cmdRouter:   cmdRouter,
		logger:      logger,
	}
}

// Start begins the server on the specified port
func (s *Server) Start(port string) error {
	go s.connMgr.Start()

	http.HandleFunc("/ws", s.handleWebSocket)
	http.HandleFunc("/api/tables", corsMiddleware(s.handleGetTables))
	http.HandleFunc("/api/tables/create", corsMiddleware(s.handleCreateTable))

	s.logger.WithField("port", port).Info("starting server")
	return http.ListenAndServe("0.0.0.0:"+port, nil)
}

// handleWebSocket handles incoming WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Error("error upgrading to websocket")
		return
	}

	clientID := uuid.NewString()
	s.logger.WithFields(logrus.Fields{
		"remote": r.RemoteAddr,
		"client": clientID,
	}).Info("new client connected")

	client := &connection.Client{
		ID:   clientID,
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	s.connMgr.Register <- client

	go s.readPump(client)
	go s.writePump(client)
}

// readPump reads messages from the WebSocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		// a dropped connection leaves its tables like any other departure
		s.cmdRouter.HandleDisconnect(client)
		s.connMgr.Unregister <- client
		client.Conn.Close()
	}()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.WithField("client", client.ID).WithError(err).Warn("websocket read failed")
			}
			break
		}

		if err := s.cmdRouter.HandleCommand(client, message); err != nil {
			s.logger.WithField("client", client.ID).WithError(err).Warn("error handling command")
		}
	}
}

// writePump sends messages to the WebSocket connection
func (s *Server) writePump(client *connection.Client) {
	defer func() {
		client.Conn.Close()
	}()

	for {
		message, ok := <-client.Send
		if !ok {
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			s.logger.WithField("client", client.ID).WithError(err).Warn("websocket write failed")
			return
		}
	}
}

// handleGetTables returns a list of all tables
func (s *Server) handleGetTables(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tables := s.registry.List()
	tableResponses := make([]TableResponse, 0, len(tables))

	for _, table := range tables {
		// Snapshot under the table's job queue so fields are consistent.
		var resp TableResponse
		err := s.coordinator.Do(table.ID, func(t *domain.Table) error {
			playerIDs := make([]string, 0, len(t.Players))
			for _, player := range t.Players {
				playerIDs = append(playerIDs, player.ID)
			}
			resp = TableResponse{
				ID:          t.ID,
				Name:        t.Name,
				PlayerCount: len(t.Players),
				Players:     playerIDs,
				Phase:       string(t.Phase),
				Pot:         t.Pot,
			}
			return nil
		})
		if err != nil {
			continue // removed concurrently
		}
		tableResponses = append(tableResponses, resp)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tableResponses)
}

// handleCreateTable creates a new table
func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var createReq CreateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if createReq.Name == "" {
		http.Error(w, "Table name is required", http.StatusBadRequest)
		return
	}

	rules := domain.DefaultTableRules()
	if createReq.StartingStack > 0 {
		rules.StartingStack = createReq.StartingStack
	}
	if createReq.MaxPlayers > 0 {
		rules.MaxPlayers = createReq.MaxPlayers
	}

	table := s.registry.CreateTable(createReq.Name, rules)

	response := TableResponse{
		ID:          table.ID,
		Name:        table.Name,
		PlayerCount: 0,
		Players:     []string{},
		Phase:       string(table.Phase),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}
