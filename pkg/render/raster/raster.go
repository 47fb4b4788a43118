// Package raster converts SVG documents to raster images using a headless
// browser. The SVG is loaded through a base64 data URI so no temporary file
// is written.
package raster

import (
	"context"
	"encoding/base64"

	"github.com/chromedp/chromedp"

	"github.com/chartkit/chartkit/pkg/errors"
)

// Options controls the raster output.
type Options struct {
	// Width and Height set the browser viewport. Zero values keep the
	// browser default and the screenshot is clipped to the svg element
	// either way.
	Width  int
	Height int
}

// ToPNG renders an SVG document to a PNG screenshot of its root element.
func ToPNG(ctx context.Context, svgDoc []byte, opts Options) ([]byte, error) {
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svgDoc)

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless)
	if opts.Width > 0 && opts.Height > 0 {
		allocOpts = append(allocOpts, chromedp.WindowSize(opts.Width, opts.Height))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var shot []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &shot, chromedp.ByQuery),
	}
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "rasterize svg")
	}
	if len(shot) == 0 {
		return nil, errors.New(errors.ErrCodeRender, "empty screenshot")
	}
	return shot, nil
}
