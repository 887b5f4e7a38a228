package main

import (
	"context"
	"flag"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/pawansuthar6813/url-shortener/internal/model"
	"github.com/pawansuthar6813/url-shortener/internal/page"
)

func (a *app) cmdShorten(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("shorten", flag.ExitOnError)
	original := fs.String("url", "", "original URL")
	code := fs.String("code", "", "custom short code (optional)")
	title := fs.String("title", "", "title (optional)")
	desc := fs.String("desc", "", "description (optional)")
	_ = fs.Parse(args)
	need(fs, "url", *original)

	a.requireSession(ctx)
	out, err := a.urls.Create(ctx, model.CreateURLRequest{
		OriginalURL: *original,
		CustomCode:  *code,
		Title:       *title,
		Description: *desc,
	})
	finish(out, err)
}

func (a *app) cmdURLs(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("urls", flag.ExitOnError)
	pg := fs.Int("page", 0, "page number")
	size := fs.Int("size", page.DefaultSize, "page size")
	all := fs.Bool("all", false, "walk every page")
	_ = fs.Parse(args)

	a.requireSession(ctx)

	ctl := page.NewController(
		func(ctx context.Context, p, s int) (model.Page[model.URL], error) {
			return a.urls.MyURLsPaginated(ctx, p, s)
		},
		page.WithInitialPage(*pg),
		page.WithPageSize(*size),
	)

	if err := ctl.FetchData(ctx); err != nil {
		fail(err)
	}
	rows := ctl.State().Data
	if *all {
		for {
			st := ctl.State()
			if st.CurrentPage >= st.TotalPages-1 {
				break
			}
			if err := ctl.NextPage(ctx); err != nil {
				fail(err)
			}
			rows = append(rows, ctl.State().Data...)
		}
	}

	st := ctl.State()
	printJSON(map[string]any{
		"urls":          rows,
		"page":          st.CurrentPage,
		"totalPages":    st.TotalPages,
		"totalElements": st.TotalElements,
	})
}

func (a *app) cmdURLGet(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("url", flag.ExitOnError)
	id := fs.String("id", "", "url id")
	_ = fs.Parse(args)
	need(fs, "id", *id)

	a.requireSession(ctx)
	out, err := a.urls.Get(ctx, *id)
	finish(out, err)
}

func (a *app) cmdURLRm(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	id := fs.String("id", "", "url id")
	_ = fs.Parse(args)
	need(fs, "id", *id)

	a.requireSession(ctx)
	if err := a.urls.Delete(ctx, *id); err != nil {
		fail(err)
	}
	fmt.Println("deleted")
}

func (a *app) cmdURLToggle(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("toggle", flag.ExitOnError)
	id := fs.String("id", "", "url id")
	_ = fs.Parse(args)
	need(fs, "id", *id)

	a.requireSession(ctx)
	out, err := a.urls.ToggleStatus(ctx, *id)
	finish(out, err)
}

func (a *app) cmdClicks(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("clicks", flag.ExitOnError)
	id := fs.String("id", "", "url id")
	pg := fs.Int("page", 0, "page number")
	size := fs.Int("size", page.DefaultSize, "page size")
	_ = fs.Parse(args)
	need(fs, "id", *id)

	a.requireSession(ctx)

	ctl := page.NewController(
		func(ctx context.Context, p, s int) (model.Page[model.Click], error) {
			return a.urls.AnalyticsPaginated(ctx, *id, p, s)
		},
		page.WithInitialPage(*pg),
		page.WithPageSize(*size),
	)
	if err := ctl.FetchData(ctx); err != nil {
		fail(err)
	}
	st := ctl.State()
	printJSON(map[string]any{
		"clicks":        st.Data,
		"page":          st.CurrentPage,
		"totalPages":    st.TotalPages,
		"totalElements": st.TotalElements,
	})
}

// cmdQR renders a short link as a QR PNG. Pure local operation.
func (a *app) cmdQR(args []string) {
	fs := flag.NewFlagSet("qr", flag.ExitOnError)
	code := fs.String("code", "", "short code")
	out := fs.String("out", "", "output file (default <code>.png)")
	size := fs.Int("size", 256, "image size in pixels")
	_ = fs.Parse(args)
	need(fs, "code", *code)

	target := shortLink(a.addr, *code)
	file := *out
	if file == "" {
		file = *code + ".png"
	}
	if err := qrcode.WriteFile(target, qrcode.Medium, *size, file); err != nil {
		fail(err)
	}
	fmt.Printf("%s -> %s\n", target, file)
}

// shortLink derives the public redirect URL from the API base
// (strip the /api suffix, append /s/<code>).
func shortLink(base, code string) string {
	root := base
	if n := len(root); n >= 4 && root[n-4:] == "/api" {
		root = root[:n-4]
	}
	return root + "/s/" + code
}
