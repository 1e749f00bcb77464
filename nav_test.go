package rustywords

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
)

func dialNav(t *testing.T, app *App) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + NavPath
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v (resp %v)", err, resp)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip[T any](t *testing.T, conn *websocket.Conn, frame NavFrame) T {
	t.Helper()
	if err := conn.WriteJSON(frame); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var v T
	if err := conn.ReadJSON(&v); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return v
}

func TestNavSocketScenarios(t *testing.T) {
	conn := dialNav(t, newTestApp(t, Config{}))

	tests := []struct {
		frame NavFrame
		want  NavReply
	}{
		{
			NavFrame{Type: FrameNavigate, Path: "/word/42"},
			NavReply{Path: "/word/42", View: "WordDetails", Props: map[string]string{"wordId": "42"}, Title: "Word Details | Rusty Words"},
		},
		{
			NavFrame{Type: FrameNavigate, Path: "/bogus/path"},
			NavReply{Path: "/", View: "WordList", Props: map[string]string{}, Title: "Rusty Words", RedirectedFrom: "/bogus/path"},
		},
		{
			NavFrame{Type: FrameNavigate, Path: "/edit/17"},
			NavReply{Path: "/edit/17", View: "EditWord", Props: map[string]string{"wordId": "17"}, Title: "Edit Word | Rusty Words"},
		},
		{
			NavFrame{Type: FrameBack},
			NavReply{Path: "/", View: "WordList", Props: map[string]string{}, Title: "Rusty Words"},
		},
		{
			NavFrame{Type: FrameBack},
			NavReply{Path: "/word/42", View: "WordDetails", Props: map[string]string{"wordId": "42"}, Title: "Word Details | Rusty Words"},
		},
		{
			NavFrame{Type: FrameForward},
			NavReply{Path: "/", View: "WordList", Props: map[string]string{}, Title: "Rusty Words"},
		},
		{
			NavFrame{Type: FrameNavigate, Path: "/add", Replace: true},
			NavReply{Path: "/add", View: "AddWord", Props: map[string]string{}, Title: "Add Word | Rusty Words"},
		},
	}

	for i, tt := range tests {
		got := roundTrip[NavReply](t, conn, tt.frame)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("frame %d %+v (-want +got):\n%s", i, tt.frame, diff)
		}
	}
}

func TestNavSocketScrollIsAlwaysTop(t *testing.T) {
	conn := dialNav(t, newTestApp(t, Config{}))

	roundTrip[NavReply](t, conn, NavFrame{Type: FrameNavigate, Path: "/word/1"})
	if err := conn.WriteJSON(NavFrame{Type: FrameScroll, Top: 640}); err != nil {
		t.Fatal(err)
	}
	roundTrip[NavReply](t, conn, NavFrame{Type: FrameNavigate, Path: "/add"})

	got := roundTrip[NavReply](t, conn, NavFrame{Type: FrameBack})
	if got.Path != "/word/1" {
		t.Fatalf("Back path = %q", got.Path)
	}
	if got.Scroll.Top != 0 {
		t.Errorf("Scroll.Top = %d, want 0", got.Scroll.Top)
	}
}

func TestNavSocketErrors(t *testing.T) {
	conn := dialNav(t, newTestApp(t, Config{}))

	tests := []struct {
		name  string
		frame NavFrame
		want  string
	}{
		{"back without history", NavFrame{Type: FrameBack}, "E210"},
		{"forward without history", NavFrame{Type: FrameForward}, "E210"},
		{"unknown type", NavFrame{Type: "reload"}, "unknown frame type reload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundTrip[NavError](t, conn, tt.frame)
			if !strings.Contains(got.Error, tt.want) {
				t.Errorf("error = %q, want it to contain %q", got.Error, tt.want)
			}
		})
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	var got NavError
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatal(err)
	}
	if got.Error != "invalid frame" {
		t.Errorf("error = %q, want %q", got.Error, "invalid frame")
	}
}

func TestNavSocketRejectsCrossOrigin(t *testing.T) {
	srv := httptest.NewServer(newTestApp(t, Config{}))
	defer srv.Close()

	header := http.Header{}
	header.Set("Origin", "http://evil.example")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + NavPath
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		t.Fatal("expected cross-origin dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("response = %v, want 403", resp)
	}
}
