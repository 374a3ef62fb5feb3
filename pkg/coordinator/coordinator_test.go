package coordinator

import (
	"context"
	"testing"

	"github.com/cocode-dev/cocode/pkg/config"
	"github.com/cocode-dev/cocode/pkg/logger"
)

func TestCoordinatorLifecycle(t *testing.T) {
	var conf config.CoordinatorConfig
	conf.Coordinator.Server.Address = "127.0.0.1:0"
	conf.Coordinator.Monitoring = config.Monitoring{Port: 0, MetricEnabled: true}

	c, err := New(conf, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	c.Start()
	if err := c.Shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}
