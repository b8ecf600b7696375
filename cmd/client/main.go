package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrianliechti/portrait/pkg/client"
	"github.com/adrianliechti/portrait/pkg/session"

	"github.com/samber/lo"
)

type downloader struct {
	client *client.Client
}

func (d downloader) Download(ctx context.Context, url string, w io.Writer) error {
	return d.client.Portraits.Download(ctx, url, w)
}

func main() {
	urlFlag := flag.String("url", "http://localhost:8080", "server url")
	tokenFlag := flag.String("token", "", "server token")
	imageFlag := flag.String("image", "", "face image")
	outputFlag := flag.String("output", "", "output file")
	presetFlag := flag.Bool("preset", false, "print the generation preset and exit")

	flag.Parse()

	ctx := context.Background()

	options := []client.RequestOption{}

	if *tokenFlag != "" {
		options = append(options, client.WithToken(*tokenFlag))
	}

	c := client.New(*urlFlag, options...)

	if *presetFlag {
		preset := lo.Must(c.Portraits.Preset(ctx))

		fmt.Println("model:   ", preset.Model)
		fmt.Println("lora:    ", preset.LoRA)
		fmt.Println("ratio:   ", preset.AspectRatio)
		fmt.Println("format:  ", preset.Format)
		fmt.Println("steps:   ", preset.Steps)
		fmt.Println("guidance:", preset.Guidance)
		fmt.Println("prompt:  ", preset.Prompt)

		return
	}

	s := session.New(session.GeneratorFunc(func(ctx context.Context, faceImage string) (string, error) {
		return c.Portraits.New(ctx, faceImage)
	}))

	if *imageFlag != "" {
		data, err := os.ReadFile(*imageFlag)

		if err != nil {
			fail(err)
		}

		if err := s.Select(filepath.Base(*imageFlag), "", data); err != nil {
			fail(err)
		}
	}

	fmt.Fprintln(os.Stderr, "generating portrait...")

	if err := s.Generate(ctx); err != nil {
		fail(errors.New(s.View().Error))
	}

	fmt.Println(s.View().Result)

	output := lo.Ternary(*outputFlag != "", *outputFlag, s.DownloadName())

	f, err := os.Create(output)

	if err != nil {
		fail(err)
	}

	defer f.Close()

	if err := s.Download(ctx, downloader{c}, f); err != nil {
		fail(err)
	}

	fmt.Fprintln(os.Stderr, "saved", output)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
