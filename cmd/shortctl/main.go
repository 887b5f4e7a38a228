// Command shortctl is a CLI client for the url-shortener service.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pawansuthar6813/url-shortener/internal/api"
	"github.com/pawansuthar6813/url-shortener/internal/errs"
	"github.com/pawansuthar6813/url-shortener/internal/service"
	"github.com/pawansuthar6813/url-shortener/internal/session"
	"github.com/pawansuthar6813/url-shortener/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// app bundles the wired client stack. Everything is constructed once in
// main and passed down; no package-level state.
type app struct {
	sess  *session.Store
	urls  service.URLService
	users service.UserService
	admin service.AdminService

	addr string
}

func usage() {
	fmt.Fprintf(os.Stderr, `shortctl
Usage:
  shortctl [-addr URL] [-timeout dur] [-v] <cmd> [args]

Commands:
  version
  register   -u <username> -e <email> -p <password> [-first -last]
  login      -u <username|email> -p <password>          (saves credentials)
  logout
  whoami
  profile    [-u -e -first -last]                       (update profile)
  passwd     -current <pwd> -new <pwd>
  dashboard
  stats
  analytics  [-days 30]
  shorten    -url <original> [-code -title -desc]
  urls       [-page 0] [-size 10] [-all]
  url        -id <id>
  rm         -id <id>
  toggle     -id <id>
  clicks     -id <id> [-page 0] [-size 10]
  qr         -code <shortCode> [-out file.png] [-size 256]
  admin      <users|urls|user-toggle|user-role|user-rm|url-toggle|url-rm|
              dashboard|stats|analytics|activity|cleanup|health> [args]
`)
	os.Exit(2)
}

func main() {
	addr := flag.String("addr", defaultAddr(), "API base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "operation timeout")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	store := token.NewStore()
	client := api.New(*addr, store,
		api.WithLogger(logger),
		api.WithUnauthorizedHook(func() {
			fmt.Fprintln(os.Stderr, "session expired, please login again")
		}),
	)
	authSvc := service.NewAuthService(client, store, logger)

	a := &app{
		sess:  session.New(authSvc, store, session.WithLogger(logger)),
		urls:  service.NewURLService(client),
		users: service.NewUserService(client),
		admin: service.NewAdminService(client),
		addr:  *addr,
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch cmd {
	case "version":
		fmt.Printf("shortctl %s (%s)\n", version, buildDate)

	case "register":
		a.cmdRegister(ctx, args)
	case "login":
		a.cmdLogin(ctx, args)
	case "logout":
		a.sess.Logout(ctx)
		fmt.Println("ok")
	case "whoami":
		a.cmdWhoami(ctx)
	case "profile":
		a.cmdProfile(ctx, args)
	case "passwd":
		a.cmdPasswd(ctx, args)
	case "dashboard":
		a.requireSession(ctx)
		out, err := a.users.Dashboard(ctx)
		finish(out, err)
	case "stats":
		a.requireSession(ctx)
		out, err := a.users.Stats(ctx)
		finish(out, err)
	case "analytics":
		a.cmdAnalytics(ctx, args)

	case "shorten":
		a.cmdShorten(ctx, args)
	case "urls":
		a.cmdURLs(ctx, args)
	case "url":
		a.cmdURLGet(ctx, args)
	case "rm":
		a.cmdURLRm(ctx, args)
	case "toggle":
		a.cmdURLToggle(ctx, args)
	case "clicks":
		a.cmdClicks(ctx, args)
	case "qr":
		a.cmdQR(args)

	case "admin":
		a.cmdAdmin(ctx, args)

	default:
		usage()
	}
}

func defaultAddr() string {
	if v := os.Getenv("SHORTCTL_ADDR"); v != "" {
		return v
	}
	return "http://localhost:8080/api"
}

// requireSession rehydrates the session and exits unless authenticated.
func (a *app) requireSession(ctx context.Context) {
	if err := a.sess.Initialize(ctx); err != nil {
		fail(err)
	}
	if !a.sess.State().IsAuthenticated {
		fail(errs.ErrNoSession)
	}
}

// ---- output helpers ----

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func finish(v any, err error) {
	if err != nil {
		fail(err)
	}
	printJSON(v)
}

func fail(err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintln(os.Stderr, apiErr.Message)
		for field, msg := range apiErr.Fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func need(fs *flag.FlagSet, pairs ...string) {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			missing = append(missing, "-"+pairs[i])
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "need %s\n", strings.Join(missing, " "))
		fs.Usage()
		os.Exit(1)
	}
}
