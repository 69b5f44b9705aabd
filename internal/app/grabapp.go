package app

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"

	"github.com/pagegrab/go-pagegrab/api/page"
	"github.com/pagegrab/go-pagegrab/api/page/downloader"
	"github.com/pagegrab/go-pagegrab/internal/export/csv"
	"github.com/pagegrab/go-pagegrab/internal/misc"
	"github.com/pagegrab/go-pagegrab/internal/platform"
)

var log = misc.NewLogger("App", 2)

type ArgsList struct {
	Verbose  bool
	List     bool
	All      bool
	Manifest bool
	URL      string
	Output   string
	Pattern  string
}

// AppOption grab options
type AppOption struct {
	PageURL  string
	Root     string
	List     bool
	All      bool
	Manifest bool
	Pattern  *regexp.Regexp
}

// ParseOption parse input command line
func ParseOption(args ArgsList) (*AppOption, error) {
	opt := &AppOption{
		List:     args.List,
		All:      args.All,
		Manifest: args.Manifest,
	}

	u, err := url.Parse(args.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("invalid url parameter [%s]", args.URL)
	}
	opt.PageURL = u.String()

	if args.Pattern != "" {
		if opt.Pattern, err = regexp.Compile(args.Pattern); err != nil {
			return nil, fmt.Errorf("invalid pattern parameter: %v", err)
		}
	}

	if args.Output != "" {
		if opt.Root, err = filepath.Abs(args.Output); err != nil {
			return nil, fmt.Errorf("invalid output folder")
		}
	} else if opt.Root, err = platform.DownloadsDir(); err != nil {
		return nil, fmt.Errorf("resolve downloads folder failed: %v", err)
	}

	return opt, nil
}

// GrabApp drives discover -> select -> download for the command line.
// It stands in for the interactive selection a UI host would offer.
type GrabApp struct {
	option     *AppOption
	discoverer *page.Discoverer
}

func NewApp(opt *AppOption) *GrabApp {
	return &GrabApp{
		option:     opt,
		discoverer: page.NewDiscoverer(),
	}
}

func (a GrabApp) Execute(ctx context.Context) error {
	links, err := a.discoverer.Discover(a.option.PageURL)
	if err != nil {
		return err
	}
	log.Info("Discovered %d links on %s.", len(links), a.option.PageURL)

	a.applySelection(links)
	selected := page.Selected(links)

	if a.option.List {
		for _, l := range links {
			marker := " "
			if l.IsSelected() {
				marker = "*"
			}
			fmt.Printf(" [%s] %s\n", marker, l.URL())
		}
		return nil
	}

	if len(selected) == 0 {
		log.Info("Nothing selected, nothing to download.")
		return nil
	}

	batch := downloader.New(a.option.Root)
	run, err := batch.DownloadAll(ctx, selected, a.option.PageURL, progressListener)
	if err != nil {
		return err
	}

	if a.option.Manifest {
		fpath, merr := csv.WriteManifest(run)
		if merr != nil {
			log.Error("Write manifest failed: %v.", merr)
		} else {
			log.Info("Manifest written to %s.", fpath)
		}
	}

	log.Info("Saved %d of %d files to %s.", run.Completed, run.Total, run.Dir)
	fmt.Println(run.Dir)
	return nil
}

func progressListener(link *page.Link, result downloader.ItemResult, completed, total int) {
	if result.Failed() {
		log.Warn("[%d/%d] %s failed.", completed, total, link.URL())
		return
	}
	log.Info("[%d/%d] %s", completed, total, filepath.Base(result.Path))
}

// applySelection overrides the default PDF pre-selection when -all or
// -pattern is given.
func (a GrabApp) applySelection(links []*page.Link) {
	for _, l := range links {
		switch {
		case a.option.All:
			l.Select(true)
		case a.option.Pattern != nil:
			l.Select(a.option.Pattern.MatchString(l.URL()))
		}
	}
}
