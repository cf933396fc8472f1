package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/printforge/toolpath/config"
	"github.com/printforge/toolpath/printer"
)

func main() {
	log.SetFlags(log.Lshortfile)

	addr := flag.String("addr", ":9092", "Address to bind the toolpath server to.")
	dir := flag.String("dir", "./data", "Data directory for uploaded g-code files.")
	device := flag.String("device", "", "Serial device of the printer. Empty disables job streaming.")
	baud := flag.Int("baud", 115200, "Baud rate for the printer serial port.")
	secrets := flag.String("secrets", "", "JSON side file with a 'printer' section (device, data_dir).")
	flag.Parse()

	if *secrets != "" {
		if *device == "" {
			val, err := config.Lookup(*secrets, "printer", "device")
			if err != nil {
				log.Fatal(err)
			}
			*device = val
		}
		if val, err := config.Lookup(*secrets, "printer", "data_dir"); err == nil {
			*dir = val
		}
	}

	var conn *printer.Conn
	if *device != "" {
		var err error
		conn, err = printer.Open(*device, *baud)
		if err != nil {
			log.Fatal(err)
		}
	}

	api := newAPI(conn, *dir)

	err := http.ListenAndServe(*addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
		api.ServeHTTP(w, req)
	}))
	if err != nil {
		log.Fatal(err)
	}
}
