package rustywords

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/oversys/Rusty-Words/pkg/router"
)

// Navigation frame types sent by the client on /_nav.
const (
	FrameNavigate = "navigate"
	FrameBack     = "back"
	FrameForward  = "forward"
	FrameScroll   = "scroll"
)

// NavFrame is a client navigation request.
type NavFrame struct {
	Type    string `json:"type"`
	Path    string `json:"path,omitempty"`
	Replace bool   `json:"replace,omitempty"`

	// Top is the viewport offset to remember for the current entry
	// (FrameScroll only).
	Top int `json:"top,omitempty"`
}

// NavReply is the server answer to a navigate, back or forward frame.
type NavReply struct {
	Path           string                `json:"path"`
	View           router.ViewID         `json:"view"`
	Props          map[string]string     `json:"props"`
	Title          string                `json:"title"`
	Scroll         router.ScrollPosition `json:"scroll"`
	RedirectedFrom string                `json:"redirectedFrom,omitempty"`
}

// NavError is sent when a frame cannot be processed.
type NavError struct {
	Error string `json:"error"`
}

// handleNav upgrades to a websocket and serves navigations for one client.
// Frames are processed one at a time against a per-connection Navigator.
func (a *App) handleNav(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(a.config.Nav.MaxMessageSize)

	title := &router.DocumentTitle{}
	nav := a.NewNavigator(title)
	ctx := r.Context()

	for {
		conn.SetReadDeadline(time.Now().Add(a.config.Nav.ReadTimeout))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				a.logger.Error("nav read error", "error", err)
			}
			return
		}

		var frame NavFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			if !a.writeNav(conn, NavError{Error: "invalid frame"}) {
				return
			}
			continue
		}

		reply, ok := a.dispatchNav(ctx, nav, title, frame)
		if !ok {
			continue
		}
		if !a.writeNav(conn, reply) {
			return
		}
	}
}

// dispatchNav runs one frame. It reports false when the frame needs no
// reply.
func (a *App) dispatchNav(ctx context.Context, nav *router.Navigator, title *router.DocumentTitle, frame NavFrame) (any, bool) {
	var (
		n   *router.Navigation
		err error
	)

	switch frame.Type {
	case FrameNavigate:
		var opts []router.NavigateOption
		if frame.Replace {
			opts = append(opts, router.WithReplace())
		}
		n, err = nav.Navigate(ctx, frame.Path, opts...)
	case FrameBack:
		n, err = nav.Back(ctx)
	case FrameForward:
		n, err = nav.Forward(ctx)
	case FrameScroll:
		nav.SaveScroll(router.ScrollPosition{Top: frame.Top})
		return nil, false
	default:
		return NavError{Error: "unknown frame type " + frame.Type}, true
	}

	if err != nil {
		return NavError{Error: err.Error()}, true
	}

	props := n.Props
	if props == nil {
		props = map[string]string{}
	}
	return NavReply{
		Path:           n.URL(),
		View:           n.Route.View,
		Props:          props,
		Title:          title.Title(),
		Scroll:         n.Scroll,
		RedirectedFrom: n.RedirectedFrom,
	}, true
}

func (a *App) writeNav(conn *websocket.Conn, v any) bool {
	if err := conn.WriteJSON(v); err != nil {
		a.logger.Warn("nav write failed", "error", err)
		return false
	}
	return true
}
