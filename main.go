package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/pagegrab/go-pagegrab/internal/app"
	"unknwon.dev/clog/v2"
)

func main() {
	args := app.ArgsList{}
	flag.StringVar(&args.URL,
		"url", "",
		"page URL to discover links on (*required)")
	flag.StringVar(&args.Output,
		"output", "",
		"downloads root folder, defaults to the platform Downloads directory")
	flag.StringVar(&args.Pattern,
		"pattern", "",
		"select links whose URL matches the regular expression instead of the PDF default")
	flag.BoolVar(&args.All,
		"all", false,
		"select every discovered link")
	flag.BoolVar(&args.List,
		"list", false,
		"list discovered links without downloading")
	flag.BoolVar(&args.Manifest,
		"manifest", false,
		"write manifest.csv into the destination folder after the run")
	flag.BoolVar(&args.Verbose,
		"verbose", false,
		"verbose output trace log")
	flag.Parse()

	if args.Verbose {
		_ = clog.NewConsole(0, clog.ConsoleConfig{
			Level: clog.LevelTrace,
		})
	} else {
		_ = clog.NewConsole(0, clog.ConsoleConfig{
			Level: clog.LevelInfo,
		})
	}
	defer clog.Stop()

	opt, err := app.ParseOption(args)
	if err != nil {
		fmt.Println("--------------------------------------------")
		fmt.Printf("Error: %s\n", err)
		fmt.Println("--------------------------------------------")
		fmt.Println("Usage:")
		flag.PrintDefaults()
		return
	}

	// Ctrl-C stops the run between items; the in-flight transfer is
	// allowed to finish.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.NewApp(opt).Execute(ctx); err != nil {
		fmt.Printf("Error: %s\n", err)
	}
}
