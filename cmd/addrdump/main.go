package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bsm/addrlib"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

// version of addrdump
const VERSION = "0.1.0"

var log = logrus.WithFields(logrus.Fields{"app": "addrdump"})

func main() {
	app := cli.NewApp()
	app.Name = "addrdump"
	app.Version = VERSION
	app.Usage = "dump an address library file as a sorted text listing"
	app.ArgsUsage = "FILE"
	app.Action = func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("expected only 1 argument (the file path): got %d", c.NArg())
		}
		return dump(c.Args().First())
	}

	if err := app.Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func dump(path string) error {
	data, release, err := mapFile(path)
	if err != nil {
		return err
	}
	defer release()

	r, err := addrlib.NewReader(data)
	if err != nil {
		return err
	}

	h := r.Header()
	log.Debugf("format %d, version %d.%d.%d.%d, pointer size %d, %d addresses",
		h.Format, h.Version[0], h.Version[1], h.Version[2], h.Version[3],
		h.PointerSize, h.AddressCount)

	mappings, err := r.ReadAll()
	if err != nil {
		return err
	}
	addrlib.Sort(mappings)

	return writeReportFile(outputPath(path), mappings)
}

func writeReportFile(path string, mappings []addrlib.Mapping) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := addrlib.WriteReport(w, mappings); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// outputPath replaces the input extension with .txt.
func outputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".txt"
}
