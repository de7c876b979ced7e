// Package banklist scrapes the "largest banks" ranking table out of a
// wiki-style HTML page.
package banklist

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	"bankcap-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/banklist")

// Record is one extracted row of the ranking table. MarketCapUSD is nil
// when the source cell could not be coerced to a number.
type Record struct {
	Name         string
	MarketCapUSD *float64
}

func NewClient() *resty.Client {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err == nil {
		client.SetCookieJar(jar)
	}
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/banklist/http")

	return client
}

// FetchDocument GETs the page and parses it. A transport failure or a
// non-2xx status aborts the run.
func FetchDocument(ctx context.Context, client *resty.Client, url string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "FetchDocument")
	defer span.End()

	res, err := client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch page")
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.IsError() {
		err := fmt.Errorf("fetch %s: unexpected status %s", url, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}
