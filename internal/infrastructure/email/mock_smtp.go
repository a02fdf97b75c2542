// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package email

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// MockSMTPServer provides a simple scripted SMTP server for testing
type MockSMTPServer struct {
	listener  net.Listener
	addr      string
	responses []string
}

// NewMockSMTPServer creates a mock SMTP server that replies with the given
// scripted responses, then "250 OK" for any extra commands.
func NewMockSMTPServer(t *testing.T, responses []string) *MockSMTPServer {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := &MockSMTPServer{
		listener:  listener,
		addr:      listener.Addr().String(),
		responses: responses,
	}

	go server.serve()
	return server
}

// Host returns the host part of the server address
func (s *MockSMTPServer) Host() (string, error) {
	host, _, err := net.SplitHostPort(s.addr)
	return host, err
}

// Port returns the port part of the server address
func (s *MockSMTPServer) Port() (int, error) {
	_, portStr, err := net.SplitHostPort(s.addr)
	if err != nil {
		return 0, err
	}

	var port int
	_, err = fmt.Sscanf(portStr, "%d", &port)
	return port, err
}

// Close shuts down the mock server
func (s *MockSMTPServer) Close() error {
	return s.listener.Close()
}

func (s *MockSMTPServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return // Server closed
		}
		go s.handleConnection(conn)
	}
}

func (s *MockSMTPServer) handleConnection(conn net.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	reader := bufio.NewReader(conn)
	_, _ = conn.Write([]byte("220 localhost SMTP ready\r\n"))

	responseIndex := 0
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(line)), "QUIT") {
			_, _ = conn.Write([]byte("221 Bye\r\n"))
			return
		}

		if responseIndex < len(s.responses) {
			_, _ = conn.Write([]byte(s.responses[responseIndex] + "\r\n"))
			responseIndex++
		} else {
			_, _ = conn.Write([]byte("250 OK\r\n"))
		}
	}
}

// SuccessfulSMTPResponses returns a script for a successful SMTP session
func SuccessfulSMTPResponses() []string {
	return []string{
		"250 Hello",            // HELO/EHLO response
		"250 OK",               // MAIL FROM response
		"250 OK",               // RCPT TO response
		"354 Start mail input", // DATA response
		"250 OK",               // End of data response
	}
}

// FailureSMTPResponses returns a script for a failed SMTP session
func FailureSMTPResponses() []string {
	return []string{
		"250 Hello",               // HELO/EHLO response
		"550 Mailbox unavailable", // MAIL FROM error
	}
}
