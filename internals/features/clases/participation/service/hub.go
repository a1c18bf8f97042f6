package service

import (
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Hub reparte snapshots de participación a los viewers conectados por
// websocket (la vista proyectada del profe, principalmente). Un room por
// código de sesión; los alumnos no necesitan socket, envían por POST.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*websocket.Conn]struct{}
}

// LiveHub es el único hub de la app.
var LiveHub = NewHub()

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*websocket.Conn]struct{})}
}

func (h *Hub) Join(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[code]
	if !ok {
		room = make(map[*websocket.Conn]struct{})
		h.rooms[code] = room
	}
	room[conn] = struct{}{}
	log.Printf("[INFO] viewer conectado a %s (%d en sala)", code, len(room))
}

func (h *Hub) Leave(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[code]; ok {
		delete(room, conn)
		if len(room) == 0 {
			delete(h.rooms, code)
		}
	}
}

// Broadcast manda el payload a todos los viewers del room. Un conn que falla
// se saca de la sala (el cliente reconecta solo).
func (h *Hub) Broadcast(code string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[code]
	if !ok {
		return
	}
	for conn := range room {
		if err := conn.WriteJSON(payload); err != nil {
			_ = conn.Close()
			delete(room, conn)
		}
	}
	if len(room) == 0 {
		delete(h.rooms, code)
	}
}

// Viewers devuelve cuántos sockets hay mirando una sesión.
func (h *Hub) Viewers(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[code])
}
