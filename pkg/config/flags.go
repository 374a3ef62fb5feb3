package config

import "github.com/spf13/pflag"

// AddFlags binds the command line flags over the loaded values.
func (c *CoordinatorConfig) AddFlags(fs *pflag.FlagSet) *CoordinatorConfig {
	co := &c.Coordinator
	fs.String("conf", "", "Set custom configuration file directory")
	fs.BoolVarP(&co.Debug, "debug", "d", co.Debug, "Enable debug logs")
	fs.BoolVar(&co.Json, "json", co.Json, "JSON logs instead of the human-readable ones")
	fs.StringSliceVar(&co.Origin, "origin", co.Origin, "Allowed websocket origins (comma separated), empty means any")
	co.Server.WithFlags(fs)
	fs.IntVar(&co.Monitoring.Port, "monitoring.port", co.Monitoring.Port, "Monitoring server port")
	fs.BoolVarP(&co.Monitoring.MetricEnabled, "monitoring.metric", "m", co.Monitoring.MetricEnabled, "Enable prometheus metric for server")
	fs.BoolVarP(&co.Monitoring.ProfilingEnabled, "monitoring.pprof", "p", co.Monitoring.ProfilingEnabled, "Enable golang pprof for server")
	fs.Int64Var(&co.Websocket.MaxMessageSize, "ws.maxMessageSize", co.Websocket.MaxMessageSize, "Max inbound websocket message size in bytes")
	fs.IntVar(&co.Websocket.SendQueue, "ws.sendQueue", co.Websocket.SendQueue, "Outbound queue size per connection")
	return c
}

func (s *Server) WithFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.Address, "address", s.Address, "HTTP server address (host:port)")
	fs.BoolVar(&s.Https, "https", s.Https, "Serve HTTPS")
	fs.StringVar(&s.Tls.Address, "httpsAddress", s.Tls.Address, "HTTPS server address (host:port)")
	fs.StringVar(&s.Tls.Domain, "httpsDomain", s.Tls.Domain, "Domain for the automatic certificate")
	fs.StringVar(&s.Tls.HttpsKey, "httpsKey", s.Tls.HttpsKey, "HTTPS key")
	fs.StringVar(&s.Tls.HttpsCert, "httpsCert", s.Tls.HttpsCert, "HTTPS chain")
}
