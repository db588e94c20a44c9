package main

import (
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/lazharichir/queens/engine"
	"github.com/lazharichir/queens/lobby"
	"github.com/lazharichir/queens/server"
	"github.com/lazharichir/queens/store"
)

func main() {
	port := flag.String("port", "7777", "port to listen on")
	dbPath := flag.String("db", "", "sqlite database path (empty for in-memory store)")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	defer log.Sync()

	var st store.Store
	if *dbPath != "" {
		st, err = store.NewSqliteStore(*dbPath)
		if err != nil {
			log.Fatal("failed to open sqlite store", zap.String("path", *dbPath), zap.Error(err))
		}
		log.Info("using sqlite store", zap.String("path", *dbPath))
	} else {
		st = store.NewMemoryStore()
		log.Info("using in-memory store")
	}
	defer st.Close()

	eng := engine.New(engine.DefaultConfig())
	defense := engine.NewDefenseController(log)

	pipeline := engine.NewPipeline(st, eng, log)
	pipeline.AddSink(defense.Observe)
	defense.Bind(pipeline)
	defer defense.Stop()

	l := lobby.NewLobby(st, pipeline, log)

	s := server.NewServer(st, pipeline, l, log)
	if err := s.Start(*port); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
