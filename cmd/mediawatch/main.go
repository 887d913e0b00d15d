package main

import (
	"mediawatch/cmd/handlers"
	"mediawatch/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
