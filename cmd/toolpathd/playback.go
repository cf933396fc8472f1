package main

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/printforge/toolpath/coord"
)

// maxSegment is the longest move streamed as a single playback frame;
// longer moves are interpolated so clients animate them smoothly.
const maxSegment = 5.0

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

type playbackFrame struct {
	Layer int         `json:"layer"`
	Point coord.Point `json:"point"`
}

// playback replays the recorded points of a stored file over a websocket,
// one JSON frame per point, in layer order.
func (a *api) playback(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]

	_, res, ok := a.loadResult(w, name)
	if !ok {
		return
	}

	interval := 50 * time.Millisecond
	if s := req.FormValue("interval"); s != "" {
		ms, err := strconv.Atoi(s)
		if err != nil || ms <= 0 {
			http.Error(w, "invalid interval", http.StatusBadRequest)
			return
		}
		interval = time.Duration(ms) * time.Millisecond
	}

	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Println("ERROR: upgrade:", err)
		return
	}
	defer ws.Close()

	var last coord.Point
	var haveLast bool
	for _, n := range res.LayerNumbers() {
		for _, p := range res.Layers[n] {
			frames := []coord.Point{p}
			if dist := last.Distance(p); haveLast && dist > maxSegment {
				frames = last.Split(p, int(dist/maxSegment)+1)
			}
			for _, fp := range frames {
				if err = ws.WriteJSON(playbackFrame{Layer: n, Point: fp}); err != nil {
					log.Println("ERROR: send:", err)
					return
				}
				time.Sleep(interval)
			}
			last, haveLast = p, true
		}
	}
}
