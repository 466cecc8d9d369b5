package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// callbackResult carries the query parameters the backend appends when it
// redirects back after authentication.
type callbackResult struct {
	accessToken  string
	refreshToken string
	user         string
	err          string
}

// cmdLogin starts a one-shot local listener, points the user's browser at
// the backend auth redirect, and stores the tokens delivered on the way
// back.
func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	user := fs.String("user", "", "username hint forwarded to the auth endpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}

	callbackURL := fmt.Sprintf("http://127.0.0.1:%d/callback", a.cfg.CallbackPort)

	results := make(chan callbackResult, 1)
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.GET("/callback", func(c *gin.Context) {
		res := callbackResult{
			accessToken:  c.Query("access_token"),
			refreshToken: c.Query("refresh_token"),
			user:         c.Query("user"),
			err:          c.Query("error"),
		}
		if res.err != "" || res.accessToken == "" || res.refreshToken == "" {
			c.String(http.StatusBadRequest, "Authentication failed. You can close this tab.")
		} else {
			c.String(http.StatusOK, "Signed in. You can close this tab.")
		}
		results <- res
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", a.cfg.CallbackPort),
		Handler: router,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("callback listener", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := a.cfg.APIBaseURL + "/auth/discord?redirect_uri=" + url.QueryEscape(callbackURL)
	if *user != "" {
		authURL += "&username=" + url.QueryEscape(*user)
	}
	fmt.Println("Open this URL in your browser to sign in:")
	fmt.Println("  " + authURL)

	select {
	case res := <-results:
		if res.err != "" {
			return fmt.Errorf("authentication failed: %s", res.err)
		}
		if res.accessToken == "" || res.refreshToken == "" {
			return errors.New("missing authentication data in callback")
		}
		if err := a.sess.SetTokens(res.accessToken, res.refreshToken); err != nil {
			return err
		}
	case <-ctx.Done():
		return errors.New("timed out waiting for the login callback")
	}

	me, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s\n", me.Username)
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.sess.Clear(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	me, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (id %s)\n", me.Username, me.ID)
	if me.Email != nil {
		fmt.Printf("email: %s\n", *me.Email)
	}
	return nil
}
