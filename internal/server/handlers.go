package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/broadcast"
	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/db"
	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/events"
	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/game"
	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/rooms"
	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/wshub"
)

type Server struct {
	Rooms   *rooms.Store
	Hub     *wshub.Hub
	DB      *db.DB                  // nil if no database configured
	Archive chan db.FinishedSession // nil if no database configured
	Verbose bool
}

// handleWS owns one WebSocket connection for its whole lifetime: upgrade,
// identity assignment, the read/dispatch loop, and disconnect cleanup.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("[WS] Accept error: %v\n", err)
		return
	}

	identity := uuid.New().String()
	client := &wshub.Client{
		Identity: identity,
		Conn:     conn,
		Send:     make(chan []byte, 64),
	}
	s.Hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)

	defer func() {
		s.Rooms.DisconnectAll(identity)
		s.Hub.Unregister(identity)
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var req wshub.Request
		if err := json.Unmarshal(data, &req); err != nil {
			client.QueueError(0, fmt.Errorf("parsing request: %w", err))
			continue
		}
		s.dispatch(ctx, client, req)
	}
}

func (s *Server) dispatch(ctx context.Context, client *wshub.Client, req wshub.Request) {
	if s.Verbose {
		log.Printf("[WS] %s op=%s seq=%d\n", client.Identity, req.Op, req.Seq)
	}

	switch req.Op {
	case "createRoom":
		s.opCreateRoom(ctx, client, req)
	case "joinRoom":
		s.opJoinRoom(ctx, client, req)
	case "startGame":
		s.opStartGame(client, req)
	case "flashNews":
		s.opFlashNews(client, req)
	case "unlockSectors":
		s.opUnlockSectors(client, req)
	case "submitInvestment":
		s.opSubmitInvestment(client, req)
	case "sendTip":
		s.opSendTip(client, req)
	case "endGame":
		s.opEndGame(client, req)
	default:
		client.QueueError(req.Seq, fmt.Errorf("unknown op: %s", req.Op))
	}
}

// room resolves a client-supplied code against the registry.
func (s *Server) room(code string) (*rooms.Room, error) {
	room := s.Rooms.Get(strings.ToUpper(strings.TrimSpace(code)))
	if room == nil {
		return nil, game.ErrRoomNotFound
	}
	return room, nil
}

func (s *Server) opCreateRoom(ctx context.Context, client *wshub.Client, req wshub.Request) {
	var p struct {
		HostName string `json:"hostName"`
	}
	if err := json.Unmarshal(req.Data, &p); err != nil {
		client.QueueError(req.Seq, fmt.Errorf("parsing payload: %w", err))
		return
	}

	room, err := s.Rooms.Create(client.Identity, p.HostName)
	if err != nil {
		log.Printf("[Handle:CreateRoom] %v\n", err)
		client.QueueError(req.Seq, err)
		return
	}

	ch := room.Broadcaster.Subscribe(client.Identity)
	go client.Forward(ctx, ch)

	log.Printf("[Handle:CreateRoom] Created room %s\n", room.Code)
	client.QueueAck(req.Seq, map[string]string{"roomCode": room.Code})
}

func (s *Server) opJoinRoom(ctx context.Context, client *wshub.Client, req wshub.Request) {
	var p struct {
		RoomCode string `json:"roomCode"`
		Name     string `json:"name"`
		Avatar   string `json:"avatar"`
	}
	if err := json.Unmarshal(req.Data, &p); err != nil {
		client.QueueError(req.Seq, fmt.Errorf("parsing payload: %w", err))
		return
	}

	room, err := s.room(p.RoomCode)
	if err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	info, err := room.Game.Join(client.Identity, p.Name, p.Avatar)
	if err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	ch := room.Broadcaster.Subscribe(client.Identity)
	go client.Forward(ctx, ch)

	room.Broadcaster.Broadcast(broadcast.Event{
		Name: events.PlayersUpdate,
		Data: room.Game.Players.Roster(),
	})

	log.Printf("[Handle:JoinRoom] %s joined room %s\n", p.Name, room.Code)
	client.QueueAck(req.Seq, info)
}

func (s *Server) opStartGame(client *wshub.Client, req wshub.Request) {
	var p struct {
		RoomCode string `json:"roomCode"`
	}
	if err := json.Unmarshal(req.Data, &p); err != nil {
		client.QueueError(req.Seq, fmt.Errorf("parsing payload: %w", err))
		return
	}

	room, err := s.room(p.RoomCode)
	if err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	started, err := room.Game.Start(client.Identity)
	if err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	room.Broadcaster.Broadcast(broadcast.Event{
		Name: events.GameStarted,
		Data: events.GameStartedPayload{
			SectorsUnlocked: room.Game.SectorsUnlocked(),
			Players:         started,
		},
	})

	log.Printf("[Handle:StartGame] Room %s started with %d players\n", room.Code, len(started))
	client.QueueAck(req.Seq, nil)
}

func (s *Server) opFlashNews(client *wshub.Client, req wshub.Request) {
	var p struct {
		RoomCode string `json:"roomCode"`
		SectorID int    `json:"sectorId"`
		Positive bool   `json:"positive"`
	}
	if err := json.Unmarshal(req.Data, &p); err != nil {
		client.QueueError(req.Seq, fmt.Errorf("parsing payload: %w", err))
		return
	}

	room, err := s.room(p.RoomCode)
	if err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	news, err := room.Game.FlashNews(client.Identity, p.SectorID, p.Positive)
	if err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	room.Broadcaster.Broadcast(broadcast.Event{Name: events.News, Data: news})
	client.QueueAck(req.Seq, nil)
}

func (s *Server) opUnlockSectors(client *wshub.Client, req wshub.Request) {
	var p struct {
		RoomCode    string          `json:"roomCode"`
		TargetCount json.RawMessage `json:"targetCount"`
	}
	if err := json.Unmarshal(req.Data, &p); err != nil {
		client.QueueError(req.Seq, fmt.Errorf("parsing payload: %w", err))
		return
	}

	room, err := s.room(p.RoomCode)
	if err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	target, err := parseUnlockTarget(p.TargetCount)
	if err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	count, err := room.Game.Unlock(client.Identity, target)
	if err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	room.Broadcaster.Broadcast(broadcast.Event{
		Name: events.SectorsUnlocked,
		Data: map[string]int{"sectorsUnlocked": count},
	})
	client.QueueAck(req.Seq, nil)
}

// parseUnlockTarget accepts the literal string "all" or a sector count.
func parseUnlockTarget(raw json.RawMessage) (game.UnlockTarget, error) {
	var all string
	if err := json.Unmarshal(raw, &all); err == nil {
		if all != "all" {
			return game.UnlockTarget{}, fmt.Errorf("invalid unlock target: %q", all)
		}
		return game.UnlockTarget{All: true}, nil
	}
	var count int
	if err := json.Unmarshal(raw, &count); err != nil {
		return game.UnlockTarget{}, fmt.Errorf("invalid unlock target: %w", err)
	}
	return game.UnlockTarget{Count: count}, nil
}

func (s *Server) opSubmitInvestment(client *wshub.Client, req wshub.Request) {
	var p struct {
		RoomCode    string             `json:"roomCode"`
		Investments map[string]float64 `json:"investments"`
	}
	if err := json.Unmarshal(req.Data, &p); err != nil {
		client.QueueError(req.Seq, fmt.Errorf("parsing payload: %w", err))
		return
	}

	room, err := s.room(p.RoomCode)
	if err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	if err := room.Game.Submit(client.Identity, p.Investments); err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	room.Broadcaster.Broadcast(broadcast.Event{
		Name: events.PlayersUpdate,
		Data: room.Game.Players.Roster(),
	})
	client.QueueAck(req.Seq, nil)
}

func (s *Server) opSendTip(client *wshub.Client, req wshub.Request) {
	var p struct {
		RoomCode string `json:"roomCode"`
		TipID    int    `json:"tipId"`
		Target   string `json:"target"`
	}
	if err := json.Unmarshal(req.Data, &p); err != nil {
		client.QueueError(req.Seq, fmt.Errorf("parsing payload: %w", err))
		return
	}

	room, err := s.room(p.RoomCode)
	if err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	plan, err := room.Game.SendTip(client.Identity, p.TipID, p.Target)
	if err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	room.Broadcaster.Unicast(plan.HostIdentity, broadcast.Event{
		Name: events.TipSeen,
		Data: plan.HostCopy,
	})
	for _, d := range plan.Deliveries {
		room.Broadcaster.Unicast(d.Identity, broadcast.Event{
			Name: events.ReceiveTip,
			Data: d,
		})
	}
	client.QueueAck(req.Seq, nil)
}

func (s *Server) opEndGame(client *wshub.Client, req wshub.Request) {
	var p struct {
		RoomCode string `json:"roomCode"`
	}
	if err := json.Unmarshal(req.Data, &p); err != nil {
		client.QueueError(req.Seq, fmt.Errorf("parsing payload: %w", err))
		return
	}

	room, err := s.room(p.RoomCode)
	if err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	results, err := room.Game.End(client.Identity)
	if err != nil {
		client.QueueError(req.Seq, err)
		return
	}

	room.Broadcaster.Broadcast(broadcast.Event{Name: events.GameEnded, Data: results})

	if s.Archive != nil {
		select {
		case s.Archive <- finishedSession(room, results):
		default:
			log.Println("[DB] Archive buffer full, dropping session")
		}
	}

	log.Printf("[Handle:EndGame] Room %s ended\n", room.Code)
	client.QueueAck(req.Seq, nil)
}

// finishedSession flattens end-of-game results into an archive record.
// Investors arrive ranked; the adversary entry carries no total or rank.
func finishedSession(room *rooms.Room, results game.Results) db.FinishedSession {
	fs := db.FinishedSession{
		RoomCode: room.Code,
		HostName: room.HostName,
	}
	if results.Adversary != nil {
		name := results.Adversary.Name
		fs.AdversaryName = &name
	}

	rank := 0
	for _, entry := range results.Results {
		sp := db.SessionPlayer{
			PlayerName: entry.Name,
			Role:       string(entry.Role),
			FinalTotal: entry.Total,
		}
		if entry.Total != nil {
			rank++
			r := rank
			sp.Rank = &r
		}
		fs.Players = append(fs.Players, sp)
	}
	return fs
}

func (s *Server) handleRoomQR(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))
	if s.Rooms.Get(code) == nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	joinURL := fmt.Sprintf("%s://%s/?code=%s", scheme, r.Host, code)

	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		log.Printf("[Handle:RoomQR] Encode error: %v\n", err)
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		log.Println(err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			status = "db_error"
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"%s","error":"%s"}`, status, err.Error())
			return
		}
	}
	fmt.Fprintf(w, `{"status":"%s"}`, status)
}
