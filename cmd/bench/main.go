package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/robworks/opsdocs/internal/config"
	"github.com/robworks/opsdocs/internal/content"
	"github.com/robworks/opsdocs/internal/render"
	"github.com/robworks/opsdocs/internal/site"
)

func main() {
	var (
		mode        = flag.String("mode", "render", "Benchmark mode: render (fragments) or build (full site)")
		pages       = flag.Int("pages", 200, "Number of generated corpus pages")
		requests    = flag.Int("requests", 5000, "Total renders (render mode) or builds (build mode)")
		concurrency = flag.Int("concurrency", 8, "Number of concurrent render workers (render mode)")
		workers     = flag.Int("workers", 0, "Builder worker count (build mode, 0 = NumCPU)")
		keep        = flag.Bool("keep", false, "Keep the generated corpus directory")
	)
	flag.Parse()

	dir, err := os.MkdirTemp("", "opsdocs-bench-*")
	if err != nil {
		panic(err)
	}
	if *keep {
		fmt.Printf("corpus=%s\n", dir)
	} else {
		defer os.RemoveAll(dir)
	}
	if err := writeCorpus(dir, *pages); err != nil {
		panic(err)
	}

	var lat []float64
	var elapsed float64
	switch *mode {
	case "render":
		lat, elapsed = benchRender(dir, *requests, *concurrency)
	case "build":
		lat, elapsed = benchBuild(dir, *requests, *workers)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}

	if len(lat) == 0 {
		fmt.Printf("no successful iterations\n")
		return
	}
	sort.Float64s(lat)
	p50 := percentile(lat, 50)
	p95 := percentile(lat, 95)
	p99 := percentile(lat, 99)
	rate := float64(len(lat)) / elapsed

	fmt.Printf("mode=%s pages=%d iterations=%d concurrency=%d\n", *mode, *pages, len(lat), *concurrency)
	fmt.Printf("elapsed_s=%.3f per_s=%.1f\n", elapsed, rate)
	fmt.Printf("latency_ms p50=%.3f p95=%.3f p99=%.3f min=%.3f max=%.3f\n", p50, p95, p99, lat[0], lat[len(lat)-1])
}

func benchRender(dir string, requests, concurrency int) ([]float64, float64) {
	loaded, err := content.LoadDir(dir, false)
	if err != nil {
		panic(err)
	}
	if len(loaded) == 0 {
		panic("empty corpus")
	}

	r := render.New(render.Options{})
	conc := concurrency
	if conc < 1 {
		conc = 1
	}
	total := requests
	if total < 1 {
		total = 1
	}
	per := total / conc
	rem := total % conc

	lat := make([]float64, 0, total)
	var latMu sync.Mutex

	t0 := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < conc; i++ {
		n := per
		if i < rem {
			n++
		}
		if n <= 0 {
			continue
		}
		wg.Add(1)
		go func(off, num int) {
			defer wg.Done()
			for j := 0; j < num; j++ {
				pg := loaded[(off+j)%len(loaded)]
				start := time.Now()
				if _, err := r.RenderFragment(pg); err != nil {
					continue
				}
				ms := float64(time.Since(start).Microseconds()) / 1000.0
				latMu.Lock()
				lat = append(lat, ms)
				latMu.Unlock()
			}
		}(i*per, n)
	}
	wg.Wait()
	return lat, time.Since(t0).Seconds()
}

func benchBuild(dir string, builds, workers int) ([]float64, float64) {
	out, err := os.MkdirTemp("", "opsdocs-bench-out-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(out)

	cfg := config.SiteConfig{
		Name:       "bench",
		ContentDir: dir,
		OutputDir:  out,
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	b := site.NewBuilder(cfg, workers, logger)

	if builds < 1 {
		builds = 1
	}
	lat := make([]float64, 0, builds)
	t0 := time.Now()
	for i := 0; i < builds; i++ {
		start := time.Now()
		res, err := b.Build(context.Background())
		if err != nil {
			continue
		}
		if len(res.Errors) > 0 {
			panic(res.Errors[0])
		}
		lat = append(lat, float64(time.Since(start).Microseconds())/1000.0)
	}
	return lat, time.Since(t0).Seconds()
}

// writeCorpus generates pages that exercise the expensive paths: widget
// fences, highlighted code blocks and enough prose for the search text.
func writeCorpus(dir string, pages int) error {
	if pages < 1 {
		pages = 1
	}
	sections := []string{"shell", "filesystems", "networking", "dns"}
	for i := 0; i < pages; i++ {
		sec := sections[i%len(sections)]
		body := fmt.Sprintf(`---
title: Generated Page %d
weight: %d
---

# Generated Page %d

Paragraph of prose describing a command-line tool, repeated enough to
resemble a real tutorial page. The permissions example uses chmod 640
which decodes to rw-r-----.

## Worked example

`+"```bash"+`
tar -czf backup-%d.tar.gz /etc
ls -l backup-%d.tar.gz
`+"```"+`

## Check yourself

`+"```quiz"+`
question: Which flag makes tar operate on gzip archives?
type: single
options:
  - text: "-z"
    correct: true
    feedback: gzip compression.
  - text: "-j"
    feedback: That selects bzip2.
`+"```"+`

`+"```terminal"+`
title: Inspecting the archive
steps:
  - command: tar -tzf backup-%d.tar.gz
    output: etc/hostname
    narration: List without extracting.
`+"```"+`
`, i, i, i, i, i, i)
		path := filepath.Join(dir, sec, fmt.Sprintf("page-%03d.md", i))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted))*float64(p)/100.0) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
