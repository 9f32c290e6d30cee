// Copyright 2026 fanjia1024
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	mu   sync.Mutex
	reqs []chatRequest
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","model":"qwen2.5:latest"}`))
	})
	mux.HandleFunc("/api/ai/chat", func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.reqs = append(f.reqs, req)
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if req.Message == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"Message is required"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(chatReply{Message: "echo: " + req.Message, Model: "qwen2.5:latest"})
	})
	return mux
}

func TestRunHealth(t *testing.T) {
	srv := httptest.NewServer((&fakeServer{}).handler())
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	code := runHealth(newClient(srv.URL), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "model=qwen2.5:latest\nstatus=ok\n", stdout.String())
}

func TestPostChat_Error(t *testing.T) {
	srv := httptest.NewServer((&fakeServer{}).handler())
	defer srv.Close()

	_, err := postChat(newClient(srv.URL), "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Message is required")
}

func TestRunChatOnce(t *testing.T) {
	srv := httptest.NewServer((&fakeServer{}).handler())
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	code := runChatOnce(newClient(srv.URL), "hello", &stdout, &stderr)
	require.Equal(t, 0, code)
	assert.Equal(t, "echo: hello\n", stdout.String())
}

func TestRunREPL_CarriesHistory(t *testing.T) {
	fs := &fakeServer{}
	srv := httptest.NewServer(fs.handler())
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	runREPL(newClient(srv.URL), strings.NewReader("first\n\nsecond\nquit\n"), &stdout, &stderr)

	fs.mu.Lock()
	defer fs.mu.Unlock()
	require.Len(t, fs.reqs, 2)
	assert.Empty(t, fs.reqs[0].History)
	assert.Equal(t, []turn{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "echo: first"},
	}, fs.reqs[1].History)
	assert.Contains(t, stdout.String(), "echo: second")
	assert.Empty(t, stderr.String())
}

func TestAPIErrorMessage(t *testing.T) {
	assert.Equal(t, "a", apiError{Detail: "a", Error: "b"}.message())
	assert.Equal(t, "b", apiError{Error: "b"}.message())
}
