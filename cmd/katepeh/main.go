package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nengock/katepeh/internal/codec"
	"github.com/Nengock/katepeh/internal/extract"
	"github.com/Nengock/katepeh/internal/layout"
	"github.com/Nengock/katepeh/internal/preprocess"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func init() {
	zerolog.TimeFieldFormat = time.StampMilli
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("katepeh %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		in      = flag.String("in", "", "input image path (png/jpg/gif/webp)")
		out     = flag.String("out", "out.png", "output image path; extension picks the format")
		width   = flag.Int("width", 0, "target card width in pixels (default 800)")
		height  = flag.Int("height", 0, "target card height in pixels (default 500)")
		minArea = flag.Int("min-area", 0, "minimum candidate contour area (default 5000)")
		bypass  = flag.Bool("bypass", false, "lenient mode: never fail, skip denoise and perspective correction")
		quality = flag.Int("quality", 92, "output quality for jpg/webp")
		read    = flag.Bool("read", false, "run OCR on the normalized card and print the fields as JSON")
		lang    = flag.String("lang", "ind", "tesseract language for -read")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.StampMilli})

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := preprocess.DefaultConfig()
	if *width > 0 {
		cfg.TargetWidth = *width
	}
	if *height > 0 {
		cfg.TargetHeight = *height
	}
	if *minArea > 0 {
		cfg.MinArea = *minArea
	}
	cfg.Bypass = *bypass

	img, format, err := codec.DecodeFile(*in)
	if err != nil {
		log.Fatal().Err(err).Str("path", *in).Msg("could not decode input")
	}
	log.Debug().Str("format", format).
		Int("width", img.Bounds().Dx()).Int("height", img.Bounds().Dy()).
		Msg("input decoded")

	proc := preprocess.New(cfg)
	normalized, err := proc.Process(img)
	if err != nil {
		log.Fatal().Err(err).Msg("preprocessing failed")
	}

	if err := codec.EncodeFile(*out, normalized, *quality); err != nil {
		log.Fatal().Err(err).Str("path", *out).Msg("could not write output")
	}
	log.Info().Str("path", *out).Msg("normalized card written")

	if *read {
		if err := readCard(normalized, *lang); err != nil {
			log.Fatal().Err(err).Msg("card reading failed")
		}
	}
}

// readCard recognizes the text on the normalized card, checks its layout,
// and prints the assembled fields as JSON on stdout.
func readCard(img image.Image, lang string) error {
	if !extract.Available() {
		return fmt.Errorf("OCR engine not available in this build")
	}

	rec := extract.NewTesseract(lang)
	res, err := rec.Recognize(img)
	if err != nil {
		return fmt.Errorf("recognize: %w", err)
	}

	bounds := img.Bounds()
	report := layout.Analyze(res.Regions, bounds.Dx(), bounds.Dy(), contentScore(res.Regions), layout.DefaultConfig())
	log.Info().
		Bool("is_card", report.IsCard).
		Float64("confidence", report.Confidence).
		Int("areas", len(report.Regions)).
		Msg("layout analyzed")

	data := extract.Assemble(res.Regions)
	if err := data.Validate(true); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// contentScore is the fraction of recognized words that look like card
// content: a 16-digit NIK counts double.
func contentScore(regions []extract.TextRegion) float64 {
	if len(regions) == 0 {
		return 0
	}
	hits := 0.0
	for _, r := range regions {
		if len(extract.FieldCandidates([]extract.TextRegion{r}, "nik")) > 0 {
			hits += 2
		} else if r.Confidence >= 0.5 {
			hits++
		}
	}
	score := hits / float64(len(regions))
	if score > 1 {
		score = 1
	}
	return score
}
