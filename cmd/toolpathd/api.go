package main

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"

	"github.com/printforge/toolpath/gcode"
	"github.com/printforge/toolpath/printer"
)

type api struct {
	http.Handler
	conn    *printer.Conn
	dataDir string
	sse     *sse.Server
}

func newAPI(conn *printer.Conn, dir string) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		conn:    conn,
		dataDir: dir,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(ioutil.Discard, "", 0),
		}),
	}

	fs := http.FileServer(http.Dir(dir))
	r.PathPrefix("/data/").Handler(http.StripPrefix("/data", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case "GET":
			fs.ServeHTTP(w, req)
		case "PUT":
			a.putFile(w, req)
		case "DELETE":
			a.deleteFile(w, req)
		default:
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})))

	r.HandleFunc("/api/parse", a.parse).Methods("POST")
	r.HandleFunc("/api/jobs/{name}", a.runJob).Methods("POST")
	r.HandleFunc("/api/playback/{name}", a.playback).Methods("GET")
	r.PathPrefix("/events/").Handler(a.sse)

	return a
}

func safePath(base, name string) (bool, string) {
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		log.Println("invalid path '" + name + "'")
		return false, ""
	}
	dir := base
	if dir == "" {
		dir = "."
	}
	fullName := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))
	return true, fullName
}

type parseResponse struct {
	*gcode.Result
	LayerNumbers []int   `json:"layerNumbers"`
	NumPoints    int     `json:"numPoints"`
	Travel       float64 `json:"travelDistance"`
	Filament     float64 `json:"filamentUsed"`
}

func newParseResponse(res *gcode.Result) parseResponse {
	return parseResponse{
		Result:       res,
		LayerNumbers: res.LayerNumbers(),
		NumPoints:    res.NumPoints(),
		Travel:       res.TravelDistance(),
		Filament:     res.FilamentUsed(),
	}
}

func (a *api) parse(w http.ResponseWriter, req *http.Request) {
	data, err := ioutil.ReadAll(req.Body)
	if err != nil {
		return
	}

	res, err := gcode.Parse(string(data))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(newParseResponse(res))
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

type jobEvent struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Layers int    `json:"layers,omitempty"`
	Points int    `json:"points,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (a *api) jobEvent(ev jobEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		// shouldn't happen since we control everything that's sent out
		log.Panicln("ERROR: job event (marshal):", err)
		return
	}
	a.sse.SendMessage("/events/jobs", sse.SimpleMessage(string(data)))
}

// loadResult reads and interprets a stored g-code file by name.
func (a *api) loadResult(w http.ResponseWriter, name string) ([]byte, *gcode.Result, bool) {
	ok, fullName := safePath(a.dataDir, name)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return nil, nil, false
	}

	data, err := ioutil.ReadFile(fullName)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		} else {
			log.Printf("ERROR: read '%s': %+v", fullName, err)
			http.Error(w, err.Error(), 500)
		}
		return nil, nil, false
	}

	res, err := gcode.Parse(string(data))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}
	return data, res, true
}

func (a *api) runJob(w http.ResponseWriter, req *http.Request) {
	if a.conn == nil {
		http.Error(w, "no printer configured", http.StatusServiceUnavailable)
		return
	}
	name := mux.Vars(req)["name"]

	data, res, ok := a.loadResult(w, name)
	if !ok {
		return
	}

	a.jobEvent(jobEvent{Name: name, Status: "started", Layers: len(res.Layers), Points: res.NumPoints()})

	_, err := a.conn.ReadFrom(bytes.NewReader(data))
	if err != nil {
		log.Printf("ERROR: job '%s': %+v", name, err)
		a.jobEvent(jobEvent{Name: name, Status: "failed", Error: err.Error()})
		http.Error(w, err.Error(), 500)
		return
	}

	a.jobEvent(jobEvent{Name: name, Status: "done"})
}

func (a *api) putFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	os.MkdirAll(filepath.Dir(name), 0755)
	f, err := os.Create(name)
	if err != nil {
		log.Printf("ERROR: create '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	defer f.Close()
	_, err = io.Copy(f, req.Body)
	if err != nil {
		log.Printf("ERROR: write '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}

func (a *api) deleteFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := os.Remove(name)
	if err != nil {
		log.Printf("ERROR: delete '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}
