// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.bug.st/serial"
	"golang.org/x/term"

	"github.com/Thermoquad/gwts/pkg/config"
)

// passwordEnv names the variable checked before prompting
const passwordEnv = "GWTS_PASSWORD"

// Sink is where a rendered show table is delivered
type Sink interface {
	io.Writer
	io.Closer
}

// SerialSink wraps a serial port
type SerialSink struct {
	port serial.Port
}

func (s *SerialSink) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

func (s *SerialSink) Close() error {
	// Let the UART finish transmitting before the port goes away
	if err := s.port.Drain(); err != nil {
		s.port.Close()
		return err
	}
	return s.port.Close()
}

// WebSocketSink sends each Write as one WebSocket message
type WebSocketSink struct {
	conn        *websocket.Conn
	messageType int
}

func (w *WebSocketSink) Write(p []byte) (int, error) {
	err := w.conn.WriteMessage(w.messageType, p)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *WebSocketSink) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return w.conn.Close()
}

// OpenSerialSink opens a serial port for writing
func OpenSerialSink(portName string, baudRate int) (*SerialSink, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	return &SerialSink{port: port}, nil
}

// OpenWebSocketSink dials a WebSocket endpoint with optional HTTP Basic auth.
// Binary selects binary frames instead of text frames.
func OpenWebSocketSink(wsURL, username, password string, skipSSLVerify, binary bool) (*WebSocketSink, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	switch u.Scheme {
	case "ws", "wss":
		// OK
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: skipSSLVerify,
		}
	}

	headers := http.Header{}
	if username != "" && password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		headers.Set("Authorization", "Basic "+credentials)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %w", err)
	}

	messageType := websocket.TextMessage
	if binary {
		messageType = websocket.BinaryMessage
	}

	return &WebSocketSink{conn: conn, messageType: messageType}, nil
}

// GetPassword retrieves password from environment or prompts user
func GetPassword() (string, error) {
	if pw := os.Getenv(passwordEnv); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Not a terminal, read a plain line instead
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(os.Stderr)
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr)
	return string(passwordBytes), nil
}

// OpenSink opens the configured serial or WebSocket sink, falling back to
// creating the file at path. The returned string describes the destination.
func OpenSink(sink config.SinkConfig, path string, binary bool) (Sink, string, error) {
	if sink.URL != "" {
		password := ""
		if sink.Username != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, "", err
			}
		}

		conn, err := OpenWebSocketSink(sink.URL, sink.Username, password, sink.Insecure, binary)
		if err != nil {
			return nil, "", err
		}

		return conn, fmt.Sprintf("WebSocket: %s", sink.URL), nil
	}

	if sink.Port != "" {
		conn, err := OpenSerialSink(sink.Port, sink.Baud)
		if err != nil {
			return nil, "", err
		}

		return conn, fmt.Sprintf("Serial: %s @ %d baud", sink.Port, sink.Baud), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	return f, fmt.Sprintf("File: %s", path), nil
}
