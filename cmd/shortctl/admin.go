package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pawansuthar6813/url-shortener/internal/api"
	"github.com/pawansuthar6813/url-shortener/internal/errs"
	"github.com/pawansuthar6813/url-shortener/internal/model"
	"github.com/pawansuthar6813/url-shortener/internal/page"
)

// cmdAdmin dispatches admin-console subcommands. The backend is the
// authority on the admin role; the local check only saves a round-trip.
func (a *app) cmdAdmin(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "need admin subcommand")
		usage()
	}
	sub, rest := args[0], args[1:]

	a.requireSession(ctx)
	if !a.sess.State().IsAdmin {
		fail(errs.ErrForbidden)
	}

	switch sub {
	case "dashboard":
		out, err := a.admin.Dashboard(ctx)
		finish(out, err)

	case "users":
		fs := flag.NewFlagSet("admin users", flag.ExitOnError)
		pg := fs.Int("page", 0, "page number")
		size := fs.Int("size", page.DefaultSize, "page size")
		_ = fs.Parse(rest)

		ctl := page.NewController(
			func(ctx context.Context, p, s int) (model.Page[model.UserProfile], error) {
				return a.admin.UsersPaginated(ctx, p, s)
			},
			page.WithInitialPage(*pg),
			page.WithPageSize(*size),
		)
		if err := ctl.FetchData(ctx); err != nil {
			fail(err)
		}
		st := ctl.State()
		printJSON(map[string]any{
			"users":         st.Data,
			"page":          st.CurrentPage,
			"totalPages":    st.TotalPages,
			"totalElements": st.TotalElements,
		})

	case "user-toggle":
		out, err := a.admin.ToggleUserStatus(ctx, requireID(rest))
		finish(out, err)
	case "user-role":
		out, err := a.admin.ToggleUserRole(ctx, requireID(rest))
		finish(out, err)
	case "user-rm":
		if err := a.admin.DeleteUser(ctx, requireID(rest)); err != nil {
			fail(err)
		}
		fmt.Println("deleted")

	case "urls":
		fs := flag.NewFlagSet("admin urls", flag.ExitOnError)
		pg := fs.Int("page", 0, "page number")
		size := fs.Int("size", page.DefaultSize, "page size")
		_ = fs.Parse(rest)

		out, err := a.admin.URLs(ctx, *pg, *size)
		finish(out, err)

	case "url-toggle":
		out, err := a.admin.ToggleURLStatus(ctx, requireID(rest))
		finish(out, err)
	case "url-rm":
		if err := a.admin.DeleteURL(ctx, requireID(rest)); err != nil {
			fail(err)
		}
		fmt.Println("deleted")

	case "stats":
		out, err := a.admin.SystemStats(ctx)
		finish(out, err)

	case "analytics":
		fs := flag.NewFlagSet("admin analytics", flag.ExitOnError)
		days := fs.Int("days", 30, "lookback window in days")
		_ = fs.Parse(rest)
		out, err := a.admin.Analytics(ctx, *days)
		finish(out, err)

	case "activity":
		fs := flag.NewFlagSet("admin activity", flag.ExitOnError)
		pg := fs.Int("page", 0, "page number")
		size := fs.Int("size", 50, "page size")
		_ = fs.Parse(rest)
		out, err := a.admin.ActivityLog(ctx, *pg, *size)
		finish(out, err)

	case "cleanup":
		n, err := a.admin.CleanupExpiredURLs(ctx)
		if err != nil {
			fail(err)
		}
		fmt.Printf("cleaned up %d expired urls\n", n)

	case "health":
		// The one place the retry helper is wired in: a health probe is
		// safe to repeat.
		var out map[string]any
		err := api.Retry(ctx, 3, time.Second, func(ctx context.Context) error {
			var herr error
			out, herr = a.admin.Health(ctx)
			return herr
		})
		finish(out, err)

	default:
		fmt.Fprintf(os.Stderr, "unknown admin subcommand: %s\n", sub)
		usage()
	}
}

func requireID(args []string) string {
	fs := flag.NewFlagSet("admin", flag.ExitOnError)
	id := fs.String("id", "", "entity id")
	_ = fs.Parse(args)
	need(fs, "id", *id)
	return *id
}
