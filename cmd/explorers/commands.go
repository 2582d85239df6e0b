package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hayawalid/smartexplorers/internal/adapter/api"
	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/dashboard"
	"github.com/hayawalid/smartexplorers/internal/domain"
	"github.com/hayawalid/smartexplorers/internal/logging"
	"github.com/hayawalid/smartexplorers/internal/policy"
	"github.com/hayawalid/smartexplorers/internal/screen"
	"github.com/hayawalid/smartexplorers/internal/session"
	"github.com/hayawalid/smartexplorers/internal/wizard"
)

var errCredentials = errors.New("this command needs --user and --password")

// app holds what every command shares. Sessions live only for one
// invocation, so commands that need an identity log in first.
type app struct {
	in  io.Reader
	out io.Writer

	apiURL   string
	offline  bool
	username string
	password string

	cfg     *config.Config
	logger  *slog.Logger
	sess    *session.Store
	clients *api.Clients
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:           "explorers",
		Short:         "Terminal client for the SmartExplorers travel platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setup()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.clients != nil {
				a.clients.Close()
			}
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.apiURL, "api", "", "Backend base URL (defaults to API_BASE_URL)")
	flags.BoolVar(&a.offline, "offline", false, "Use the built-in demo accounts instead of the backend")
	flags.StringVarP(&a.username, "user", "u", os.Getenv("EXPLORERS_USER"), "Username or email to log in with")
	flags.StringVarP(&a.password, "password", "p", os.Getenv("EXPLORERS_PASSWORD"), "Password to log in with")

	root.AddCommand(
		a.loginCmd(),
		a.signupCmd(),
		a.whoamiCmd(),
		a.chatCmd(),
		a.planCmd(),
		a.adminCmd(),
		a.listingsCmd(),
		a.guardCmd(),
	)
	return root
}

func (a *app) setup() {
	a.cfg = config.Load()
	if a.apiURL != "" {
		a.cfg.BaseURL = strings.TrimSuffix(a.apiURL, "/")
	}
	if a.offline {
		a.cfg.OfflineMode = true
	}
	a.logger = logging.New(os.Stderr, a.cfg.LogLevel)
	a.sess = session.New()
	a.clients = api.New(a.cfg, a.sess, api.WithLogger(a.logger))
}

func (a *app) login(ctx context.Context) (*domain.AuthResponse, error) {
	if a.username == "" || a.password == "" {
		return nil, errCredentials
	}
	return a.clients.Auth.Login(ctx, domain.LoginRequest{Username: a.username, Password: a.password})
}

// loginIfPossible logs in when credentials were given and stays anonymous
// otherwise.
func (a *app) loginIfPossible(ctx context.Context) error {
	if a.username == "" {
		return nil
	}
	_, err := a.login(ctx)
	return err
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check credentials and show where the account lands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s (%s), home: %s\n", resp.Username, resp.AccountType, domain.HomeRoute(resp.AccountType))
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the given credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.login(cmd.Context()); err != nil {
				return err
			}
			if a.cfg.OfflineMode {
				snap := a.sess.Snapshot()
				return a.printJSON(map[string]any{
					"user_id":      snap.UserID,
					"username":     snap.Username,
					"account_type": snap.AccountType,
				})
			}
			user, err := a.clients.Auth.Me(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(user)
		},
	}
}

func (a *app) signupCmd() *cobra.Command {
	var (
		email, username, password, fullName, phone string
		serviceType, bio, location                 string
		languages, interests                       []string
		dateOfBirth, gender                        string
		acceptTerms                                bool
	)

	signup := &cobra.Command{
		Use:   "signup",
		Short: "Create an account by walking through the signup steps",
	}
	pf := signup.PersistentFlags()
	pf.StringVar(&email, "email", "", "Email address")
	pf.StringVar(&username, "username", "", "Username")
	pf.StringVar(&password, "new-password", "", "Password for the new account")
	pf.StringVar(&fullName, "full-name", "", "Full name")

	provider := &cobra.Command{
		Use:   "provider",
		Short: "Sign up as a service provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := wizard.NewProviderSignup(a.clients.Auth, a.clients.Profile)
			w.Account.Email = email
			w.Account.Username = username
			w.Account.Password = password
			w.Account.FullName = fullName
			w.Account.Phone = phone
			w.Service.ServiceType = serviceType
			w.Service.Bio = bio
			w.Service.Location = location
			w.Service.Languages = languages
			w.Review.AcceptedTerms = acceptTerms

			steps := []func() error{
				w.Next,
				w.Next,
				func() error {
					if err := w.CaptureID(); err != nil {
						return err
					}
					fmt.Fprintln(a.out, "ID captured")
					if err := w.CompleteSelfie(); err != nil {
						return err
					}
					fmt.Fprintln(a.out, "Selfie verified")
					return w.Next()
				},
			}
			return a.runWizard(cmd.Context(), w.Wizard, steps, w.Submit)
		},
	}
	provider.Flags().StringVar(&phone, "phone", "", "Phone number")
	provider.Flags().StringVar(&serviceType, "service-type", "", "guide, driver, host, photographer or translator")
	provider.Flags().StringVar(&bio, "bio", "", "Short bio")
	provider.Flags().StringVar(&location, "location", "", "Where you operate")
	provider.Flags().StringSliceVar(&languages, "languages", nil, "Languages you speak")
	provider.Flags().BoolVar(&acceptTerms, "accept-terms", false, "Accept the terms of service")

	traveler := &cobra.Command{
		Use:   "traveler",
		Short: "Sign up as a traveler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := wizard.NewTravelerSignup(a.clients.Auth, a.clients.Profile)
			w.Account.Email = email
			w.Account.Username = username
			w.Account.Password = password
			w.Account.FullName = fullName
			for _, i := range interests {
				w.ToggleInterest(i)
			}
			w.Preferences.Gender = gender
			if dateOfBirth != "" {
				dob, err := time.Parse("2006-01-02", dateOfBirth)
				if err != nil {
					return fmt.Errorf("invalid --date-of-birth: %w", err)
				}
				w.Preferences.DateOfBirth = dob
			}
			return a.runWizard(cmd.Context(), w.Wizard, []func() error{w.Next}, w.Submit)
		},
	}
	traveler.Flags().StringSliceVar(&interests, "interests", nil, "At least three interests")
	traveler.Flags().StringVar(&dateOfBirth, "date-of-birth", "", "Date of birth (YYYY-MM-DD)")
	traveler.Flags().StringVar(&gender, "gender", "", "male, female, other or prefer_not_to_say")

	signup.AddCommand(traveler, provider)
	return signup
}

// runWizard advances through steps, reporting the first step that is not
// complete, then submits.
func (a *app) runWizard(ctx context.Context, w *wizard.Wizard, steps []func() error, submit func(context.Context) (string, error)) error {
	for _, step := range steps {
		name := w.StepName()
		if err := step(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(a.out, "Step %q complete\n", name)
	}
	route, err := submit(ctx)
	if err != nil {
		return err
	}
	snap := a.sess.Snapshot()
	fmt.Fprintf(a.out, "Welcome %s! Account %s created, home: %s\n", snap.Username, snap.UserID, route)
	return nil
}

func (a *app) chatCmd() *cobra.Command {
	var resume string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the travel assistant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.loginIfPossible(ctx); err != nil {
				return err
			}

			var conv *api.Conversation
			if resume != "" {
				conv = a.clients.Chat.ResumeConversation(resume)
			} else {
				conv = a.clients.Chat.NewConversation(nil)
			}

			fmt.Fprintln(a.out, "Type a message and press Enter. /quit to exit.")
			scanner := bufio.NewScanner(a.in)
			for {
				fmt.Fprint(a.out, "> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				input := strings.TrimSpace(scanner.Text())
				if input == "" {
					continue
				}
				if input == "/quit" {
					fmt.Fprintln(a.out, "Bye!")
					return nil
				}

				resp, err := conv.Send(ctx, input)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					fmt.Fprintf(a.out, "! %v\n", err)
					continue
				}
				fmt.Fprintln(a.out, resp.Message)
				for _, s := range resp.Suggestions {
					fmt.Fprintf(a.out, "  - %s\n", s)
				}
			}
		},
	}
	cmd.Flags().StringVar(&resume, "resume", "", "Continue an existing conversation id")
	return cmd
}

func (a *app) planCmd() *cobra.Command {
	var (
		destination string
		save        bool
	)
	cmd := &cobra.Command{
		Use:   "plan [message]",
		Short: "Ask the trip planner for an itinerary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.login(ctx); err != nil {
				return err
			}

			req := domain.PlannerChatRequest{Message: strings.Join(args, " ")}
			if destination != "" {
				req.Preferences = domain.Payload{"destination": destination}
			}
			resp, err := a.clients.Planner.Chat(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, resp.Reply)
			if resp.Itinerary == nil {
				return nil
			}
			if err := a.printJSON(resp.Itinerary); err != nil {
				return err
			}
			if save {
				if _, err := a.clients.Planner.Save(ctx, resp.Itinerary); err != nil {
					return err
				}
				fmt.Fprintln(a.out, "Itinerary saved")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&destination, "destination", "", "Where the trip goes")
	cmd.Flags().BoolVar(&save, "save", false, "Save the itinerary")
	return cmd
}

func (a *app) adminCmd() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Moderate providers and reports",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setup()
			if _, err := a.login(cmd.Context()); err != nil {
				return err
			}
			guard, err := policy.NewGuard(cmd.Context(), a.sess)
			if err != nil {
				return err
			}
			res, err := guard.Check(cmd.Context(), domain.RouteAdmin)
			if err != nil {
				return err
			}
			if !res.Allowed {
				return fmt.Errorf("admin area requires an admin account (%s)", res.Decision)
			}
			return nil
		},
	}

	dash := &cobra.Command{
		Use:   "dashboard",
		Short: "Load stats, pending providers and open reports at once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := screen.New(cmd.Context())
			defer scope.Dispose()

			board := dashboard.NewAdmin(a.clients.Admin, scope)
			if err := board.Load(scope.Context()); err != nil {
				return err
			}
			st := board.State()
			return a.printJSON(map[string]any{
				"stats":             st.Stats,
				"provider_requests": st.ProviderRequests,
				"reports":           st.Reports,
			})
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show platform counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.clients.Admin.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(s)
		},
	}

	var status string
	requests := &cobra.Command{
		Use:   "requests",
		Short: "List provider applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.clients.Admin.ProviderRequests(cmd.Context(), domain.ProviderRequestStatus(status))
			if err != nil {
				return err
			}
			return a.printJSON(list)
		},
	}
	requests.Flags().StringVar(&status, "status", string(domain.ProviderRequestPending), "pending, approved, rejected or empty for all")

	approve := &cobra.Command{
		Use:   "approve <request-id>",
		Short: "Approve a provider application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.clients.Admin.ApproveProvider(cmd.Context(), args[0])
			return a.report(ok, err, "approved", args[0])
		},
	}

	var reason string
	reject := &cobra.Command{
		Use:   "reject <request-id>",
		Short: "Reject a provider application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.clients.Admin.RejectProvider(cmd.Context(), args[0], reason)
			return a.report(ok, err, "rejected", args[0])
		},
	}
	reject.Flags().StringVar(&reason, "reason", "", "Why the application was rejected")

	reports := &cobra.Command{
		Use:   "reports",
		Short: "List open reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.clients.Admin.Reports(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(list)
		},
	}

	resolve := &cobra.Command{
		Use:   "resolve <report-id>",
		Short: "Resolve a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.clients.Admin.ResolveReport(cmd.Context(), args[0])
			return a.report(ok, err, "resolved", args[0])
		},
	}

	suspend := &cobra.Command{
		Use:   "suspend <user-id>",
		Short: "Suspend an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.clients.Admin.SuspendUser(cmd.Context(), args[0])
			return a.report(ok, err, "suspended", args[0])
		},
	}

	admin.AddCommand(dash, stats, requests, approve, reject, reports, resolve, suspend)
	return admin
}

func (a *app) report(ok bool, err error, verb, id string) error {
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s could not be %s", id, verb)
	}
	fmt.Fprintf(a.out, "%s %s\n", id, verb)
	return nil
}

func (a *app) listingsCmd() *cobra.Command {
	var filter api.ListingFilter
	cmd := &cobra.Command{
		Use:   "listings",
		Short: "Browse marketplace listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.clients.Marketplace.ListListings(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return a.printJSON(list)
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&filter.Location, "location", "", "Filter by location")
	cmd.Flags().StringVar(&filter.ProviderID, "provider", "", "Filter by provider id")
	return cmd
}

func (a *app) guardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guard <route>",
		Short: "Show whether the current identity may open a route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.loginIfPossible(ctx); err != nil {
				return err
			}
			guard, err := policy.NewGuard(ctx, a.sess)
			if err != nil {
				return err
			}
			res, err := guard.Check(ctx, args[0])
			if err != nil {
				return err
			}
			if res.Allowed {
				fmt.Fprintf(a.out, "%s: allowed\n", args[0])
				return nil
			}
			fmt.Fprintf(a.out, "%s: %s, redirect to %s\n", args[0], res.Decision, res.Redirect)
			return nil
		},
	}
}
