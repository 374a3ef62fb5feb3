package coordinator

import (
	"context"

	"github.com/cocode-dev/cocode/pkg/config"
	"github.com/cocode-dev/cocode/pkg/logger"
	"github.com/cocode-dev/cocode/pkg/monitoring"
	"github.com/cocode-dev/cocode/pkg/room"
	"github.com/cocode-dev/cocode/pkg/service"
)

type Coordinator struct {
	conf     config.CoordinatorConfig
	hub      *Hub
	services service.Group
	log      *logger.Logger
}

func New(conf config.CoordinatorConfig, log *logger.Logger) (*Coordinator, error) {
	c := &Coordinator{conf: conf, log: log}
	c.hub = NewHub(conf, room.NewStore(), log)
	h, err := NewHTTPServer(conf, log, c.hub)
	if err != nil {
		log.Error().Err(err).Msg("http init fail")
		return nil, err
	}
	c.services.Add(c.hub, h)
	if conf.Coordinator.Monitoring.IsEnabled() {
		mon, err := monitoring.New(conf.Coordinator.Monitoring, "c", log)
		if err != nil {
			log.Error().Err(err).Msg("monitoring init fail")
			_ = h.Shutdown(context.Background())
			return nil, err
		}
		c.services.Add(mon)
	}
	return c, nil
}

func (c *Coordinator) Start() { c.services.Start() }

func (c *Coordinator) Shutdown(ctx context.Context) error { return c.services.Shutdown(ctx) }
