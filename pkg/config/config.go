package config

import (
	"strings"
	"time"
)

type CoordinatorConfig struct {
	Coordinator Coordinator `fig:"coordinator"`
	Webrtc      Webrtc      `fig:"webrtc"`
}

type Coordinator struct {
	Debug bool `fig:"debug"`
	// JSON logs instead of the human-readable ones
	Json bool `fig:"json"`
	// allowed websocket origins, empty means any
	Origin     []string   `fig:"origin"`
	Server     Server     `fig:"server"`
	Monitoring Monitoring `fig:"monitoring"`
	Websocket  Websocket  `fig:"websocket"`
}

type Server struct {
	Address string `fig:"address" default:":8000"`
	Https   bool   `fig:"https"`
	Tls     struct {
		Address   string `fig:"address" default:":443"`
		Domain    string `fig:"domain"`
		HttpsKey  string `fig:"httpsKey"`
		HttpsCert string `fig:"httpsCert"`
		CertCache string `fig:"certCache" default:"assets/cache"`
	} `fig:"tls"`
}

func (s *Server) GetAddr() string {
	if s.Https {
		return s.Tls.Address
	}
	return s.Address
}

type Monitoring struct {
	Port             int    `fig:"port" default:"6601"`
	URLPrefix        string `fig:"urlPrefix"`
	MetricEnabled    bool   `fig:"metricEnabled"`
	ProfilingEnabled bool   `fig:"profilingEnabled"`
}

func (c *Monitoring) IsEnabled() bool { return c.MetricEnabled || c.ProfilingEnabled }

type Websocket struct {
	MaxMessageSize int64         `fig:"maxMessageSize" default:"1048576"`
	SendQueue      int           `fig:"sendQueue" default:"256"`
	PingInterval   time.Duration `fig:"pingInterval" default:"54s"`
}

type Webrtc struct {
	IceServers []IceServer `fig:"iceServers"`
}

type IceServer struct {
	Urls       string `fig:"urls" json:"urls,omitempty"`
	Username   string `fig:"username" json:"username,omitempty"`
	Credential string `fig:"credential" json:"credential,omitempty"`
}

var DefaultIceServers = []IceServer{{Urls: "stun:stun.l.google.com:19302"}}

// GetIceServers returns the configured ICE servers or the public STUN
// server when nothing is set.
func (w *Webrtc) GetIceServers() []IceServer {
	if len(w.IceServers) == 0 {
		return DefaultIceServers
	}
	return w.IceServers
}

// Origins splits comma-separated values, env vars can't hold lists.
func (c *Coordinator) Origins() []string {
	var out []string
	for _, o := range c.Origin {
		for _, v := range strings.Split(o, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
