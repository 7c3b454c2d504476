package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/arcana-network/keygen/cmd/root"
)

func main() {
	err := root.GetRootCmd().Execute()
	if err != nil {
		log.Fatalf("keygen: %s", err.Error())
	}
}
