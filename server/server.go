package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lazharichir/queens/engine"
	"github.com/lazharichir/queens/lobby"
	"github.com/lazharichir/queens/server/connection"
	"github.com/lazharichir/queens/server/events"
	"github.com/lazharichir/queens/server/handlers"
	"github.com/lazharichir/queens/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// Server is the WebSocket and HTTP front of the engine
type Server struct {
	lobby      *lobby.Lobby
	store      store.Store
	connMgr    *connection.Manager
	cmdRouter  *handlers.CommandRouter
	dispatcher *events.Dispatcher
	log        *zap.Logger
}

// NewServer wires the transport to the pipeline. Committed states flow
// back out through the dispatcher, which is registered as a pipeline
// sink.
func NewServer(st store.Store, pipeline *engine.Pipeline, l *lobby.Lobby, log *zap.Logger) *Server {
	connMgr := connection.NewManager()
	dispatcher := events.NewDispatcher(connMgr, log)
	cmdRouter := handlers.NewCommandRouter(l, pipeline, st, connMgr, log)

	pipeline.AddSink(dispatcher.HandleCommit)

	return &Server{
		lobby:      l,
		store:      st,
		connMgr:    connMgr,
		cmdRouter:  cmdRouter,
		dispatcher: dispatcher,
		log:        log,
	}
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Start begins the server on the specified port
func (s *Server) Start(port string) error {
	router := mux.NewRouter()
	router.HandleFunc("/ws", s.handleWebSocket)
	router.HandleFunc("/api/games", s.handleListGames).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/games", s.handleCreateGame).Methods(http.MethodPost)
	router.Use(corsMiddleware)

	s.log.Info("starting server", zap.String("port", port))
	return http.ListenAndServe("0.0.0.0:"+port, router)
}

// handleWebSocket handles incoming WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("failed to upgrade to websocket", zap.Error(err))
		return
	}

	client := &connection.Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	s.log.Info("client connected", zap.String("client_id", client.ID), zap.String("remote", r.RemoteAddr))

	s.connMgr.Register(client)

	go s.readPump(client)
	go s.writePump(client)
}

// readPump reads messages from the WebSocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		playerID := client.PlayerID
		gameIDs := append([]string(nil), client.GameIDs...)

		s.connMgr.Unregister(client)
		client.Conn.Close()

		if playerID != "" {
			for _, gameID := range gameIDs {
				s.lobby.MarkConnected(gameID, playerID, false)
			}
		}
	}()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warn("websocket read error", zap.String("client_id", client.ID), zap.Error(err))
			}
			break
		}

		if err := s.cmdRouter.HandleCommand(client, message); err != nil {
			s.log.Warn("failed to handle command", zap.String("client_id", client.ID), zap.Error(err))
		}
	}
}

// writePump sends messages to the WebSocket connection
func (s *Server) writePump(client *connection.Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			s.log.Warn("websocket write error", zap.String("client_id", client.ID), zap.Error(err))
			return
		}
	}
	client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// handleListGames returns a summary of all games
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.lobby.ListGames()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

// handleCreateGame creates a new game and returns its ID and room code
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.lobby.CreateGame()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"id":       g.ID,
		"roomCode": g.RoomCode,
	})
}
