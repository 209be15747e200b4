package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/tagsoup/parser"
	"github.com/heathj/tagsoup/parser/spec"
)

func loadConfig(path string) (*parser.Config, error) {
	if path == "" {
		return parser.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config")
	}
	defer f.Close()
	return parser.LoadConfig(f)
}

type options struct {
	configPath string
	inPath     string
	find       string
	debug      bool
	dump       bool
}

func render(n *spec.Node, dump bool) string {
	if dump {
		return n.String()
	}
	return parser.SerializeHTML(n)
}

func run(opts options, out io.Writer) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.debug {
		cfg.Debug = true
	}

	in := io.Reader(os.Stdin)
	if opts.inPath != "" && opts.inPath != "-" {
		f, err := os.Open(opts.inPath)
		if err != nil {
			return errors.Wrap(err, "failed to open input")
		}
		defer f.Close()
		in = f
	}

	doc, err := parser.NewParser(in, cfg).Start()
	if err != nil {
		return err
	}
	if opts.find == "" {
		_, err = fmt.Fprintln(out, render(doc, opts.dump))
		return errors.Wrap(err, "failed to write output")
	}

	it := spec.NewNodeIterator(doc, spec.NameCondition{Name: opts.find})
	for n := it.NextNode(); n != nil; n = it.NextNode() {
		if _, err := fmt.Fprintln(out, render(n, opts.dump)); err != nil {
			return errors.Wrap(err, "failed to write output")
		}
	}
	return nil
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to a YAML cleaning config")
	flag.StringVar(&opts.find, "find", "", "only print elements with this tag name")
	flag.BoolVar(&opts.debug, "debug", false, "log every repair the tree constructor makes")
	flag.BoolVar(&opts.dump, "dump", false, "print the tree dump instead of HTML")
	flag.Parse()
	opts.inPath = flag.Arg(0)

	if err := run(opts, os.Stdout); err != nil {
		logrus.WithError(err).Fatal("tagsoup failed")
	}
}
