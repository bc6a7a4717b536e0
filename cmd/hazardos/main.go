package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/markahope-aag/hazardos-sub007/internal/config"
	"github.com/markahope-aag/hazardos-sub007/internal/migration"
	"github.com/markahope-aag/hazardos-sub007/internal/observability"
	"github.com/markahope-aag/hazardos-sub007/internal/server"
	"github.com/markahope-aag/hazardos-sub007/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
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
