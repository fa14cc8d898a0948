package server

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/mielsense/nowplaying/internal/nowplaying"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<main>
<h1>{{.Title}}</h1>
<section id="now-playing">
{{- with .Result.Track}}
<a href="{{.URL}}" class="now-playing">
{{- with .Image "medium"}}<img src="{{.}}" alt="" width="64" height="64">{{end}}
<span class="label">Now playing</span>
<span class="title">{{.Name}}</span>
<span class="artist">{{.Artist}}</span>
{{- if .Album}}<span class="album">{{.Album}}</span>{{end}}
</a>
{{- end}}
</section>
</main>
<script>
(function () {
  var section = document.getElementById("now-playing");
  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(scheme + location.host + "/ws");
  ws.onmessage = function (event) {
    var data = JSON.parse(event.data);
    if (!data.track) { section.innerHTML = ""; return; }
    var artist = data.track.artist || {};
    section.textContent = "";
    var link = document.createElement("a");
    link.className = "now-playing";
    link.href = data.track.url || "#";
    link.textContent = "Now playing " + data.track.name + " " + (artist["#text"] || artist.name || "");
    section.appendChild(link);
  };
})();
</script>
</body>
</html>
`))

type indexData struct {
	Title  string
	Result nowplaying.Result
}

// handleIndex renders the page. The now-playing widget is only
// present when a track is playing.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	result := s.loader.Load(r.Context())

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, indexData{Title: s.config.Title, Result: result}); err != nil {
		s.logger.Error().Err(err).Msg("Failed to render index")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// handleNowPlaying returns the lookup result as JSON. It always answers
// 200; failures show up as {"track":null}.
func (s *Server) handleNowPlaying(w http.ResponseWriter, r *http.Request) {
	result := s.loader.Load(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to write now playing response")
	}
}

// handleWebsocket upgrades the connection, sends a fresh lookup and
// then streams changes found by the poller.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		s.logger.Debug().Err(err).Msg("Websocket upgrade failed")
		return
	}

	c := newClient(s.hub, conn)

	if payload, err := json.Marshal(s.loader.Load(r.Context())); err == nil {
		c.send <- payload
	}

	if !s.hub.register(c) {
		_ = conn.Close()
		return
	}

	go c.writePump()
	c.readPump()
}

// handleHealth responds to container health checks.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
