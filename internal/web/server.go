package web

import (
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	chipsnet "github.com/peterkuimelis/chipsmult/internal/net"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

//go:embed static
var staticFiles embed.FS

// Server is the chipsmult web UI server.
type Server struct {
	loadoutsFile string
	seed         uint64
	logger       zerolog.Logger
	mux          *http.ServeMux
}

// NewServer creates a new web server. Scoring events are written to logger.
func NewServer(loadoutsFile string, seed uint64, logger zerolog.Logger) (*Server, error) {
	if _, err := readLoadouts(loadoutsFile); err != nil {
		zlog.Warn().Err(err).Str("file", loadoutsFile).Msg("could not load loadouts")
	}
	s := &Server{
		loadoutsFile: loadoutsFile,
		seed:         seed,
		logger:       logger,
		mux:          http.NewServeMux(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/agents", s.handleAgents)
	s.mux.HandleFunc("GET /api/bosses", s.handleBosses)
	s.mux.HandleFunc("GET /api/loadouts", s.handleLoadouts)
	s.mux.HandleFunc("POST /api/evaluate", s.handleEvaluate)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, chipsnet.CatalogAgents())
}

func (s *Server) handleBosses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, chipsnet.BossViews())
}

func (s *Server) handleLoadouts(w http.ResponseWriter, r *http.Request) {
	all, err := readLoadouts(s.loadoutsFile)
	if err != nil {
		http.Error(w, "could not read loadouts file", http.StatusInternalServerError)
		return
	}
	infos := []LoadoutInfo{}
	for i, l := range all {
		infos = append(infos, LoadoutInfo{
			Number: i + 1,
			Name:   l.Name,
			Boss:   l.Boss,
			Agents: l.Agents,
			Levels: l.Levels,
		})
	}
	writeJSON(w, http.StatusOK, infos)
}

// evaluateRequest scores one hand on a fresh table.
type evaluateRequest struct {
	Loadout int     `json:"loadout"`
	Cards   string  `json:"cards"`
	Held    *string `json:"held,omitempty"`
	Seed    *uint64 `json:"seed,omitempty"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, chipsnet.ServerMessage{Type: chipsnet.MsgError, Code: chipsnet.CodeBadRequest, Error: err.Error()})
		return
	}
	l, err := s.loadout(req.Loadout)
	if err != nil {
		writeJSON(w, http.StatusNotFound, chipsnet.ServerMessage{Type: chipsnet.MsgError, Code: chipsnet.CodeBadRequest, Error: err.Error()})
		return
	}
	seed := s.seed
	if req.Seed != nil {
		seed = *req.Seed
	}
	t, err := chipsnet.NewTable(l, s.logger, seed)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, chipsnet.ServerMessage{Type: chipsnet.MsgError, Code: chipsnet.CodeBadRequest, Error: err.Error()})
		return
	}
	if req.Held != nil {
		if resp := t.Handle(chipsnet.ClientMessage{Type: chipsnet.MsgSetState, Held: req.Held}); resp.Type == chipsnet.MsgError {
			writeJSON(w, http.StatusUnprocessableEntity, resp)
			return
		}
	}
	resp := t.Handle(chipsnet.ClientMessage{Type: chipsnet.MsgEvaluate, Cards: req.Cards})
	status := http.StatusOK
	if resp.Type == chipsnet.MsgError {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

// handleWebSocket runs one table per connection. The client picks a loadout
// with ?loadout=N and then exchanges the same JSON messages as the TCP
// protocol, one per text frame.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	n := 0
	if v := r.URL.Query().Get("loadout"); v != "" {
		var err error
		if n, err = strconv.Atoi(v); err != nil {
			http.Error(w, "loadout must be a number", http.StatusBadRequest)
			return
		}
	}
	l, err := s.loadout(n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		zlog.Warn().Err(err).Msg("websocket accept")
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	t, err := chipsnet.NewTable(l, s.logger.With().Str("remote", r.RemoteAddr).Logger(), s.seed)
	if err != nil {
		wsConn.Close(websocket.StatusInternalError, "could not build table")
		return
	}
	if err := wsjson.Write(ctx, wsConn, chipsnet.ServerMessage{Type: chipsnet.MsgState, State: t.State()}); err != nil {
		return
	}

	for {
		var msg chipsnet.ClientMessage
		if err := wsjson.Read(ctx, wsConn, &msg); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && ctx.Err() == nil {
				zlog.Debug().Err(err).Msg("websocket read")
			}
			return
		}
		if err := wsjson.Write(ctx, wsConn, t.Handle(msg)); err != nil {
			zlog.Warn().Err(err).Msg("websocket write")
			return
		}
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
