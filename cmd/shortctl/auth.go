package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pawansuthar6813/url-shortener/internal/model"
)

func (a *app) cmdRegister(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	u := fs.String("u", "", "username")
	e := fs.String("e", "", "email")
	p := fs.String("p", "", "password")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	_ = fs.Parse(args)
	need(fs, "u", *u, "e", *e, "p", *p)

	payload, err := a.sess.Register(ctx, model.SignupRequest{
		Username:  *u,
		Email:     *e,
		Password:  *p,
		FirstName: *first,
		LastName:  *last,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("registered and logged in as %s\n", payload.Username)
}

func (a *app) cmdLogin(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	u := fs.String("u", "", "username or email")
	p := fs.String("p", "", "password")
	_ = fs.Parse(args)
	need(fs, "u", *u, "p", *p)

	payload, err := a.sess.Login(ctx, model.LoginRequest{UsernameOrEmail: *u, Password: *p})
	if err != nil {
		fail(err)
	}
	fmt.Printf("logged in as %s\n", payload.Username)
}

func (a *app) cmdWhoami(ctx context.Context) {
	if err := a.sess.Initialize(ctx); err != nil {
		fail(err)
	}
	st := a.sess.State()
	if !st.IsAuthenticated {
		fmt.Println("not logged in")
		os.Exit(1)
	}
	printJSON(map[string]any{
		"user":    st.User,
		"isAdmin": st.IsAdmin,
	})
}

func (a *app) cmdProfile(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	u := fs.String("u", "", "new username")
	e := fs.String("e", "", "new email")
	first := fs.String("first", "", "new first name")
	last := fs.String("last", "", "new last name")
	_ = fs.Parse(args)

	a.requireSession(ctx)

	if *u == "" && *e == "" && *first == "" && *last == "" {
		// no changes requested, just show the profile
		out, err := a.users.Profile(ctx)
		finish(out, err)
		return
	}

	updated, err := a.users.UpdateProfile(ctx, model.UpdateProfileRequest{
		Username:  *u,
		Email:     *e,
		FirstName: *first,
		LastName:  *last,
	})
	if err != nil {
		fail(err)
	}
	// The backend confirmed the update; merge it into the cached session.
	if err := a.sess.UpdateUser(updated); err != nil {
		fail(err)
	}
	printJSON(updated)
}

func (a *app) cmdPasswd(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("passwd", flag.ExitOnError)
	cur := fs.String("current", "", "current password")
	nw := fs.String("new", "", "new password")
	_ = fs.Parse(args)
	need(fs, "current", *cur, "new", *nw)

	a.requireSession(ctx)
	if err := a.users.ChangePassword(ctx, model.ChangePasswordRequest{
		CurrentPassword: *cur,
		NewPassword:     *nw,
	}); err != nil {
		fail(err)
	}
	fmt.Println("password changed")
}

func (a *app) cmdAnalytics(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("analytics", flag.ExitOnError)
	days := fs.Int("days", 30, "lookback window in days")
	_ = fs.Parse(args)

	a.requireSession(ctx)
	out, err := a.users.Analytics(ctx, *days)
	finish(out, err)
}
