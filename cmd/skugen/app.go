package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"sku-gateway/sku"
	"sku-gateway/sku/application"
	"sku-gateway/sku/domain"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const (
	formatJSON = "json"
	formatText = "text"

	exitInvalid = 2
)

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	gen := application.Generator{}

	formatFlag := &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   formatJSON,
		Usage:   "Output format: json, text",
		EnvVars: []string{"SKUGEN_FORMAT"},
	}

	return &cli.App{
		Name:      "skugen",
		Usage:     "Generate SKUs from OEM part codes",
		Version:   sku.DefaultVersion,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate one SKU",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "oem", Aliases: []string{"o"}, Usage: "OEM part code", Required: true},
					&cli.StringFlag{Name: "duty", Aliases: []string{"d"}, Usage: "HD, LD, DIESEL, GASOLINA, HEAVY DUTY, LIGHT DUTY"},
					&cli.StringFlag{Name: "fabricante", Aliases: []string{"manufacturer", "m"}, Usage: "Manufacturer (DONALDSON, FRAM, ...)"},
					formatFlag,
				},
				Action: func(c *cli.Context) error {
					req := domain.NewRequest(c.String("oem"), optional(c, "duty"), optional(c, "fabricante"))
					res, err := gen.Generate(req)
					if err != nil {
						return cli.Exit(err.Error(), exitInvalid)
					}
					return writeResult(c.App.Writer, c.String("format"), res)
				},
			},
			{
				Name:  "batch",
				Usage: "Generate SKUs from CSV lines: oem_code[,duty[,fabricante]]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "CSV file (default stdin)"},
					formatFlag,
				},
				Action: func(c *cli.Context) error {
					in := c.App.Reader
					if path := c.String("input"); path != "" {
						f, err := os.Open(path)
						if err != nil {
							return err
						}
						defer f.Close()
						in = f
					}

					invalid, err := runBatch(gen, in, c.App.Writer, c.String("format"))
					if err != nil {
						return err
					}
					if invalid > 0 {
						return cli.Exit(fmt.Sprintf("%d invalid row(s)", invalid), exitInvalid)
					}
					return nil
				},
			},
		},
	}
}

func optional(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}

// runBatch processa o CSV linha a linha e devolve quantas linhas eram inválidas.
// Células vazias de duty/fabricante recebem o default.
func runBatch(gen application.Generator, in io.Reader, out io.Writer, format string) (int, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'

	invalid := 0
	for row := 1; ; row++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return invalid, nil
		}
		if err != nil {
			return invalid, err
		}
		if row == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "oem_code") {
			continue
		}

		req := domain.NewRequest(strings.TrimSpace(cell(rec, 0)), optionalCell(rec, 1), optionalCell(rec, 2))
		res, err := gen.Generate(req)
		if err != nil {
			invalid++
			log.Warn().Int("row", row).Err(err).Msg("invalid row")
			if werr := writeError(out, format, row, err); werr != nil {
				return invalid, werr
			}
			continue
		}
		if err := writeResult(out, format, res); err != nil {
			return invalid, err
		}
	}
}

func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}

func optionalCell(rec []string, i int) *string {
	v := strings.TrimSpace(cell(rec, i))
	if v == "" {
		return nil
	}
	return &v
}

func writeResult(w io.Writer, format string, res domain.Result) error {
	if format == formatText {
		_, err := fmt.Fprintln(w, res.SKU)
		return err
	}
	return json.NewEncoder(w).Encode(sku.NewSKUResponse(res))
}

func writeError(w io.Writer, format string, row int, err error) error {
	msg := fmt.Sprintf("row %d: %s", row, err)
	if format == formatText {
		_, werr := fmt.Fprintln(w, "ERROR "+msg)
		return werr
	}
	return json.NewEncoder(w).Encode(sku.NewErrorResponse(msg))
}
