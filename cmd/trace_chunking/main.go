// Command trace_chunking runs a local lecture file through extraction,
// normalization and chunking and prints the resulting passage boundaries.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"quiz-generation-be/internal/config"
	"quiz-generation-be/pkg/extractor"
	"quiz-generation-be/pkg/textclean"
	"quiz-generation-be/pkg/utils"

	"github.com/fatih/color"
)

func main() {
	preview := flag.Int("preview", 80, "characters to show from each end of a passage")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: trace_chunking [-preview N] <file.pdf|file.txt|file.md>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg := config.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	header := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)
	warn := color.New(color.FgYellow)

	raw, err := extractor.ExtractText(filepath.Base(path), data)
	if err != nil {
		color.Red("Extraction failed: %v", err)
		os.Exit(1)
	}
	cleaned := textclean.NewNormalizer(cfg.Ingest.HeaderMarker, cfg.Ingest.FooterMarker).Normalize(raw)

	header.Println("--- EXTRACTION ---")
	fmt.Printf("Raw: %d chars, normalized: %d chars\n", len([]rune(raw)), len([]rune(cleaned)))
	if cleaned == "" {
		warn.Println("Nothing left after normalization; upload would be rejected.")
		return
	}

	chunks := utils.SplitText(cleaned, cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
	header.Printf("--- CHUNKS (size %d, overlap %d) ---\n", cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)

	covered := 0
	for i, chunk := range chunks {
		runes := []rune(chunk)
		color.Green("[Passage %d] %d chars", i, len(runes))
		fmt.Printf("  start: %s\n", dim.Sprint(head(runes, *preview)))
		fmt.Printf("  end:   %s\n", dim.Sprint(tail(runes, *preview)))
		fmt.Printf("  keywords: %s\n", strings.Join(textclean.ExtractKeywords(chunk, cfg.Ingest.KeywordCount), ", "))
		if strings.Contains(cleaned, chunk) {
			covered++
		}
	}

	header.Println("--- COVERAGE ---")
	if covered == len(chunks) {
		color.Green("All %d passages are verbatim spans of the normalized text", len(chunks))
	} else {
		warn.Printf("%d of %d passages are not verbatim spans\n", len(chunks)-covered, len(chunks))
	}
}

func head(r []rune, n int) string {
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "..."
}

func tail(r []rune, n int) string {
	if len(r) <= n {
		return string(r)
	}
	return "..." + string(r[len(r)-n:])
}
