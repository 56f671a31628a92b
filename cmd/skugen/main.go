// skugen gera SKUs na linha de comando com as mesmas regras do serviço HTTP.
//
// Uso:
//
//	skugen generate --oem 21707132 --duty HD --fabricante DONALDSON
//	skugen batch --input codes.csv --format text
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		log.Error().Err(err).Msg("skugen failed")
		os.Exit(1)
	}
}
