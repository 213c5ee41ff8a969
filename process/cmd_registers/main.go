package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"milkreg/pkg/export"
	"milkreg/pkg/ledger"
	"milkreg/pkg/ocr"
)

// global flags (parsed in main)
var (
	verbose bool
	dryRun  bool
)

type job struct {
	name  string
	dir   string
	out   string
	vocab ledger.Vocabulary
	input ledger.BillingInput
}

// Main: scans a directory of register photos, OCRs each one, builds the bill
// and writes CSV + PDF artifacts; optional watch mode for new photos.
func main() {
	dirFlag := flag.String("dir", "registers", "directory to scan for register photos")
	outFlag := flag.String("out", "bills", "directory to write bill artifacts to")
	rate := flag.Int64("rate", 70, "rate per litre")
	extra := flag.Int64("extra", 0, "extra charges")
	vocabPath := flag.String("vocab", "", "vocabulary JSON file (default built-in table)")
	watch := flag.Bool("watch", false, "watch directory for new files")
	workers := flag.Int("workers", 0, "worker pool size (default NumCPU)")
	flag.BoolVar(&verbose, "verbose", false, "verbose per-file logging")
	flag.BoolVar(&dryRun, "dry-run", false, "OCR and parse but write nothing")
	flag.Parse()

	vocab := ledger.DefaultVocabulary()
	if *vocabPath != "" {
		v, err := ledger.Load(*vocabPath)
		if err != nil {
			log.Fatalf("vocabulary: %v", err)
		}
		vocab = v
	}
	if err := vocab.Validate(); err != nil {
		log.Fatalf("vocabulary self-check failed: %v", err)
	}
	if !dryRun {
		if err := os.MkdirAll(*outFlag, 0755); err != nil {
			log.Fatalf("mkdir %s: %v", *outFlag, err)
		}
	}
	input := ledger.BillingInput{RatePerLitre: *rate, ExtraCharges: *extra}

	files := listImageFiles(*dirFlag)
	log.Printf("Found %d candidate files in %s", len(files), *dirFlag)

	n := *workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	jobs := make(chan job, 256)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				processFile(j)
			}
		}()
	}

	for _, f := range files {
		jobs <- job{name: f, dir: *dirFlag, out: *outFlag, vocab: vocab, input: input}
	}

	if *watch {
		if err := watchDirectory(*dirFlag, *outFlag, vocab, input, jobs); err != nil {
			log.Fatalf("watch: %v", err)
		}
	}
	close(jobs)
	wg.Wait()
}

func processFile(j job) {
	path := filepath.Join(j.dir, j.name)
	text, err := ocr.ExtractText(path)
	if err != nil {
		log.Printf("%s: ocr failed, skipping: %v", j.name, err)
		return
	}
	bill := ledger.BuildReport(text, j.vocab, j.input)
	if verbose || dryRun {
		log.Printf("%s: liters=%.1f amount=%d method=%s recognized=%v fallback=%v",
			j.name, bill.Quantity, bill.Amount, bill.Method, bill.Recognized, bill.Fallback)
	}
	if dryRun {
		return
	}
	base := strings.TrimSuffix(j.name, filepath.Ext(j.name))
	meta := export.Meta{Month: time.Now().Format("January 2006")}
	if data, err := export.CSV(bill); err == nil {
		writeArtifact(filepath.Join(j.out, base+".csv"), data)
	}
	if data, err := export.PDF(bill, meta); err == nil {
		writeArtifact(filepath.Join(j.out, base+".pdf"), data)
	}
}

func writeArtifact(path string, data []byte) {
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("write %s: %v", path, err)
	}
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	}
	return false
}

func watchDirectory(dir, out string, vocab ledger.Vocabulary, input ledger.BillingInput, jobs chan<- job) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	// debounce: uploads arrive in bursts of partial writes
	pending := map[string]time.Time{}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				name := filepath.Base(ev.Name)
				if isSupportedExt(name) {
					pending[name] = time.Now()
				}
			}
		case <-ticker.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) > 300*time.Millisecond { // stable
					jobs <- job{name: name, dir: dir, out: out, vocab: vocab, input: input}
					delete(pending, name)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
