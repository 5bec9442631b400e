package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tyler-cli/internal/model"
	"tyler-cli/internal/toast"
)

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(sev toast.Severity, msg string) {
	r.messages = append(r.messages, string(sev)+": "+msg)
}

func newTestClient(t *testing.T, handler http.Handler, n Notifier) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, WithNotifier(n))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestRefreshRetry_Success(t *testing.T) {
	var taskCalls, refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		taskCalls++
		for _, c := range r.Cookies() {
			if c.Name == "session" && c.Value == "fresh" {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[{"id":1,"name":"a","dueDate":"2024-01-08","deadline":"2024-01-08"}]`))
				return
			}
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":401,"detail":"expired"}`))
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "fresh", Path: "/"})
		w.WriteHeader(http.StatusNoContent)
	})

	n := &recordingNotifier{}
	c := newTestClient(t, mux, n)

	tasks, err := c.Tasks(context.Background())
	if err != nil {
		t.Fatalf("Tasks after refresh: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != 1 {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if taskCalls != 2 {
		t.Fatalf("expected exactly one retry (2 calls), got %d", taskCalls)
	}
	if refreshCalls != 1 {
		t.Fatalf("expected exactly one refresh, got %d", refreshCalls)
	}
	if len(n.messages) != 0 {
		t.Fatalf("transparent recovery must not notify: %v", n.messages)
	}
}

func TestRefreshRetry_RefreshFails(t *testing.T) {
	var taskCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		taskCalls++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":401,"detail":"expired"}`))
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":401,"detail":"no refresh token"}`))
	})

	n := &recordingNotifier{}
	c := newTestClient(t, mux, n)

	_, err := c.Tasks(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	// The original call's failure stays discoverable in the chain.
	if StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("original 401 lost from chain: %v", err)
	}
	if taskCalls != 1 {
		t.Fatalf("original call must not be retried after failed refresh, got %d calls", taskCalls)
	}
	if len(n.messages) != 1 || n.messages[0] != "error: "+SessionExpiredMessage {
		t.Fatalf("expected one session-expired notification, got %v", n.messages)
	}
}

func TestServerError_ForwardedToNotifier(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":500,"detail":"database is down"}`))
	})

	n := &recordingNotifier{}
	c := newTestClient(t, mux, n)

	_, err := c.Tasks(context.Background())
	var ae *APIError
	if !errors.As(err, &ae) || ae.Status != 500 || ae.Detail != "database is down" {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.messages) != 1 || n.messages[0] != "error: 500: database is down" {
		t.Fatalf("expected status:detail notification, got %v", n.messages)
	}
}

func TestUnstructuredError_Synthesized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "", http.StatusBadGateway)
	})
	c := newTestClient(t, mux, &recordingNotifier{})

	_, err := c.Tasks(context.Background())
	var ae *APIError
	if !errors.As(err, &ae) || ae.Status != http.StatusBadGateway {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogin_401NotRefreshedNotToasted(t *testing.T) {
	var refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":401,"detail":"bad credentials"}`))
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		w.WriteHeader(http.StatusNoContent)
	})

	n := &recordingNotifier{}
	c := newTestClient(t, mux, n)

	err := c.Login(context.Background(), model.Credentials{Username: "u", Password: "p"})
	if StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("login 401 must propagate for inline mapping, got %v", err)
	}
	if refreshCalls != 0 {
		t.Fatalf("wrong password must not trigger a session refresh")
	}
	if len(n.messages) != 0 {
		t.Fatalf("auth errors are inline, not toasts: %v", n.messages)
	}
}

func TestDayOff_WireShapes(t *testing.T) {
	var postBody string
	var deleteQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me/day-off", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			b := make([]byte, 64)
			n, _ := r.Body.Read(b)
			postBody = string(b[:n])
		case http.MethodDelete:
			deleteQuery = r.URL.RawQuery
		}
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestClient(t, mux, &recordingNotifier{})

	if err := c.AddDayOff(context.Background(), "2024-01-08"); err != nil {
		t.Fatalf("AddDayOff: %v", err)
	}
	if postBody != `"2024-01-08"` {
		t.Fatalf("day-off body must be a bare date string, got %q", postBody)
	}
	if err := c.RemoveDayOff(context.Background(), "2024-01-08"); err != nil {
		t.Fatalf("RemoveDayOff: %v", err)
	}
	if deleteQuery != "date=2024-01-08" {
		t.Fatalf("unexpected delete query: %q", deleteQuery)
	}

	// The body is JSON-encoded, not concatenated, so a hostile date cannot
	// break out of the string.
	if err := c.AddDayOff(context.Background(), `2024"-01-08`); err != nil {
		t.Fatalf("AddDayOff: %v", err)
	}
	if postBody != `"2024\"-01-08"` {
		t.Fatalf("quote in date must be escaped, got %q", postBody)
	}
}

func TestNoNotifier_DoesNotPanic(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"status":409,"detail":"conflict"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Tasks(context.Background()); StatusOf(err) != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}
