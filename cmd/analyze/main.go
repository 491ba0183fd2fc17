// Command analyze posts local photos to a running analysis server.
//
//	analyze -url http://localhost:8083 -category borsa -brand Gucci front.jpg label.jpg
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"fakecheckapi/models"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	baseURL := flag.String("url", "http://localhost:8083", "analysis server base URL")
	category := flag.String("category", "", "object category (tipologia)")
	brand := flag.String("brand", "", "declared brand (marca)")
	timeout := flag.Duration("timeout", 90*time.Second, "request timeout")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: analyze [-url URL] [-category C] [-brand B] photo [photo ...]")
		os.Exit(2)
	}

	req, err := buildRequest(*category, *brand, flag.Args())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read photos")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	result, err := newClient(*baseURL).Analyze(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("analysis failed")
		os.Exit(1)
	}

	if err := printResult(os.Stdout, result); err != nil {
		log.Error().Err(err).Msg("failed to print result")
		os.Exit(1)
	}
}

func printResult(w io.Writer, result *models.AnalysisResult) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func buildRequest(category, brand string, paths []string) (models.ObjectAnalysisIn, error) {
	req := models.ObjectAnalysisIn{Category: category, Brand: brand}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return req, err
		}
		req.Images = append(req.Images, base64.StdEncoding.EncodeToString(data))
	}
	return req, nil
}

type client struct {
	http *resty.Client
}

func newClient(baseURL string) *client {
	return &client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json"),
	}
}

func (c *client) Analyze(ctx context.Context, req models.ObjectAnalysisIn) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	var failure models.ErrorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&failure).
		Post("/analizza-oggetto")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode(), failure.Detail)
	}
	return &result, nil
}
