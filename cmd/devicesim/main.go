// devicesim plays the role of edge hardware during development: it posts
// face and card decisions the way scanner firmware does, and can tail the
// live event feed over WebSocket.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

const defaultBase = "http://localhost:8080"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	base := os.Getenv("ACS_API_BASE")
	if base == "" {
		base = defaultBase
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "face":
		face(base, args)
	case "card":
		card(base, args)
	case "watch":
		watch(base, args)
	case "logs":
		get(base + "/api/access/logs")
	case "health":
		get(base + "/healthz")
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`Usage: devicesim <command> [options]

Commands:
  face   -user 42 [-granted=false] [-device faceScanner01]     POST /api/access/face
  card   -card CARD123 [-granted=false] [-device cardReader01] POST /api/access/card
  watch  [-device cardReader01]                                tail /api/ws
  logs                                                         GET /api/access/logs
  health                                                       GET /healthz

Environment:
  ACS_API_BASE   override default http://localhost:8080
  ACS_API_KEY    X-API-Key header for /api routes
`)
}

func face(base string, args []string) {
	fs := flag.NewFlagSet("face", flag.ExitOnError)
	userID := fs.Int64("user", 0, "user id the scanner matched")
	granted := fs.Bool("granted", true, "decision outcome")
	device := fs.String("device", "", "device id (server defaults to faceScanner01)")
	fs.Parse(args)

	body := map[string]interface{}{
		"userId":        *userID,
		"accessGranted": *granted,
	}
	if *device != "" {
		body["deviceId"] = *device
	}
	postJSON(base+"/api/access/face", body)
}

func card(base string, args []string) {
	fs := flag.NewFlagSet("card", flag.ExitOnError)
	cardNo := fs.String("card", "", "card number presented to the reader")
	granted := fs.Bool("granted", true, "decision outcome")
	device := fs.String("device", "", "device id (server defaults to cardReader01)")
	fs.Parse(args)

	if *cardNo == "" {
		fmt.Fprintln(os.Stderr, "card: -card is required")
		os.Exit(1)
	}

	body := map[string]interface{}{
		"cardNumber":    *cardNo,
		"accessGranted": *granted,
	}
	if *device != "" {
		body["deviceId"] = *device
	}
	postJSON(base+"/api/access/card", body)
}

func watch(base string, args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	device := fs.String("device", "", "only events from this device id")
	fs.Parse(args)

	wsURL := strings.Replace(base, "http", "ws", 1) + "/api/ws"
	if *device != "" {
		wsURL += "?device_id=" + url.QueryEscape(*device)
	}

	header := http.Header{}
	if key := os.Getenv("ACS_API_KEY"); key != "" {
		header.Set("X-API-Key", key)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial %s: %v\n", wsURL, err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Println("watching", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			fmt.Fprintln(os.Stderr, "read:", err)
			return
		}
		fmt.Println(string(msg))
	}
}

func postJSON(target string, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshal:", err)
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodPost, target, bytes.NewReader(data))
	if err != nil {
		fmt.Fprintln(os.Stderr, "req:", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if key := os.Getenv("ACS_API_KEY"); key != "" {
		req.Header.Set("X-API-Key", key)
	}
	do(req)
}

func get(target string) {
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "req:", err)
		os.Exit(1)
	}
	if key := os.Getenv("ACS_API_KEY"); key != "" {
		req.Header.Set("X-API-Key", key)
	}
	do(req)
}

func do(req *http.Request) {
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "do:", err)
		os.Exit(1)
	}
	defer res.Body.Close()

	fmt.Printf("→ %s %s\n", req.Method, req.URL)
	fmt.Printf("← %d %s\n\n", res.StatusCode, http.StatusText(res.StatusCode))
	io.Copy(os.Stdout, res.Body)
	fmt.Println()
}
