package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

type startResponse struct {
	Token string `json:"token"`
	View  any    `json:"session"`
}

func newOnboardCmd(opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Drive an onboarding session on the API",
	}

	client := &http.Client{Timeout: 15 * time.Second}

	post := func(path string, payload any) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			token, err := readToken(opts.tokenPath)
			if err != nil {
				return fmt.Errorf("no session, run `goalboom onboard start`: %w", err)
			}
			var out any
			if err := doJSON(cmd.Context(), client, http.MethodPost, opts.baseURL+path, token, payload, &out); err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), out)
			return nil
		}
	}
	get := func(path string) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			token, err := readToken(opts.tokenPath)
			if err != nil {
				return fmt.Errorf("no session, run `goalboom onboard start`: %w", err)
			}
			var out any
			if err := doJSON(cmd.Context(), client, http.MethodGet, opts.baseURL+path, token, nil, &out); err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), out)
			return nil
		}
	}

	start := &cobra.Command{
		Use:   "start",
		Short: "Open a new session and save its token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp startResponse
			if err := doJSON(cmd.Context(), client, http.MethodPost, opts.baseURL+"/onboarding", "", nil, &resp); err != nil {
				return err
			}
			if err := saveToken(opts.tokenPath, resp.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			printJSON(cmd.OutOrStdout(), resp.View)
			return nil
		},
	}

	status := &cobra.Command{Use: "status", Short: "Show the current step", RunE: get("/onboarding")}
	results := &cobra.Command{Use: "results", Short: "Show matching heroes", RunE: get("/onboarding/results")}
	next := &cobra.Command{Use: "next", Short: "Next intro slide", RunE: post("/onboarding/slides/next", nil)}
	prev := &cobra.Command{Use: "prev", Short: "Previous intro slide", RunE: post("/onboarding/slides/back", nil)}
	first := &cobra.Command{Use: "first", Short: "First intro slide", RunE: post("/onboarding/slides/first", nil)}
	done := &cobra.Command{Use: "done", Short: "Leave the intro", RunE: post("/onboarding/intro/done", nil)}
	back := &cobra.Command{Use: "back", Short: "Go back one step", RunE: post("/onboarding/back", nil)}
	restart := &cobra.Command{Use: "restart", Short: "Start over", RunE: post("/onboarding/restart", nil)}

	region := &cobra.Command{
		Use:   "region <region> <country>",
		Short: "Pick a country",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return post("/onboarding/region", map[string]string{"region": args[0], "country": args[1]})(cmd, nil)
		},
	}
	gender := &cobra.Command{
		Use:   "gender <woman|man|unspecified>",
		Short: "Pick a gender",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return post("/onboarding/gender", map[string]string{"gender": args[0]})(cmd, nil)
		},
	}
	occupation := &cobra.Command{
		Use:   "occupation <label>",
		Short: "Pick an occupation and see results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return post("/onboarding/occupation", map[string]string{"occupation": args[0]})(cmd, nil)
		},
	}
	hero := &cobra.Command{
		Use:   "hero <name>",
		Short: "Open a hero from the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return post("/onboarding/heroes/"+url.PathEscape(args[0]), nil)(cmd, nil)
		},
	}
	logout := &cobra.Command{
		Use:   "forget",
		Short: "Delete the saved session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := clearToken(opts.tokenPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ session token removed")
			return nil
		},
	}

	cmd.AddCommand(start, status, first, next, prev, done, region, gender, occupation, results, hero, back, restart, logout)
	return cmd
}

func newWatchCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream onboarding step events from the API websocket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			wsURL, err := websocketURL(opts.baseURL, "/ws")
			if err != nil {
				return err
			}
			return runWebSocket(cmd.Context(), wsURL, func(msg []byte) {
				fmt.Fprintln(cmd.OutOrStdout(), string(msg))
			})
		},
	}
}

func runWebSocket(ctx context.Context, wsURL string, onMessage func([]byte)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		onMessage(msg)
	}
}
