package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/dairydesk/dairydesk/internal/clock"
	"github.com/dairydesk/dairydesk/internal/config"
	"github.com/dairydesk/dairydesk/internal/logger"
	"github.com/dairydesk/dairydesk/internal/migration"
	"github.com/dairydesk/dairydesk/internal/server"
	"github.com/dairydesk/dairydesk/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
